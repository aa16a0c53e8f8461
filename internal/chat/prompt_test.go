package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/unilabvision/myuni/internal/i18n"
)

func TestBuildPrompt(t *testing.T) {
	lesson := &LessonContext{
		ID:          "go-101",
		Title:       "Variables",
		Description: strings.Repeat("d", 500),
		Type:        "video",
		Duration:    12,
	}
	history := []Turn{
		{Role: "user", Content: "first question"},
		{Role: "assistant", Content: strings.Repeat("x", 200)},
		{Role: "user", Content: "third question"},
	}

	prompt := BuildPrompt(i18n.EN, lesson, history, "What is a variable?")

	assert.True(t, strings.HasPrefix(prompt, systemInstruction[i18n.EN]))
	assert.Contains(t, prompt, "Title: Variables\n")
	assert.Contains(t, prompt, "Duration: 12 minutes\n")
	assert.Contains(t, prompt, "Description: "+strings.Repeat("d", MaxLessonDescription)+"\n")
	assert.NotContains(t, prompt, strings.Repeat("d", MaxLessonDescription+1))
	assert.NotContains(t, prompt, "first question")
	assert.Contains(t, prompt, "Assistant: "+strings.Repeat("x", MaxHistoryTurn)+"\n")
	assert.NotContains(t, prompt, strings.Repeat("x", MaxHistoryTurn+1))
	assert.Contains(t, prompt, "Student: third question\n")
	assert.True(t, strings.HasSuffix(prompt, "Student: What is a variable?\nAssistant:"))
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	a := BuildPrompt(i18n.TR, nil, nil, "Değişken nedir?")
	b := BuildPrompt(i18n.TR, nil, nil, "Değişken nedir?")

	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, systemInstruction[i18n.TR]))
	assert.NotContains(t, a, "Ders bilgisi")
	assert.NotContains(t, a, "Önceki mesajlar")
	assert.True(t, strings.HasSuffix(a, "Öğrenci: Değişken nedir?\nAsistan:"))
}

func TestBuildPrompt_UnknownLangFallsBackToTurkish(t *testing.T) {
	prompt := BuildPrompt(i18n.Lang("de"), nil, nil, "x")
	assert.True(t, strings.HasPrefix(prompt, systemInstruction[i18n.TR]))
}
