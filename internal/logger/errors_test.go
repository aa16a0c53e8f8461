package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestErrorHandler(t *testing.T) {
	var out bytes.Buffer

	prev := errorOutput
	errorOutput = &out

	t.Cleanup(func() { errorOutput = prev })

	before := testutil.ToFloat64(writeErrors)

	ErrorHandler(errors.New("disk full"))

	assert.Equal(t, "zerolog: could not write event: disk full\n", out.String())
	assert.InDelta(t, before+1, testutil.ToFloat64(writeErrors), 0)
}
