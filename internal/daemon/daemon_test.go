package daemon

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unilabvision/myuni/internal/captcha"
	"github.com/unilabvision/myuni/internal/config"
	"github.com/unilabvision/myuni/internal/db/controller/profile"
	"github.com/unilabvision/myuni/internal/db/dbtest"
	"github.com/unilabvision/myuni/internal/db/models"
	"github.com/unilabvision/myuni/internal/mail"
	"github.com/unilabvision/myuni/internal/ratelimit"
)

func testConfig() *config.Config {
	return &config.Config{
		Title:     "MyUNI",
		Webserver: config.Webserver{URL: "http://localhost", Port: 8080},
		Auth: config.Auth{Local: config.LocalAuth{
			Enabled:       true,
			AdminEmail:    "Admin@Example.com",
			AdminPassword: "seed-pass",
		}},
		Mail:      config.Mail{Transport: "smtp", From: "info@example.com"},
		RateLimit: config.RateLimit{Backend: "memory", Limit: 2, Window: time.Minute},
	}
}

func TestSeed(t *testing.T) {
	db := dbtest.New(t)
	cfg := testConfig()

	require.NoError(t, seed(cfg, db))
	require.NoError(t, seed(cfg, db))

	count, err := profile.CountAdmins(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	p, err := profile.GetLocalByEmail(db, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, p.Role)
	assert.NotEqual(t, "seed-pass", p.Password)
}

func TestSeed_Skipped(t *testing.T) {
	db := dbtest.New(t)

	cfg := testConfig()
	cfg.Auth.Local.AdminPassword = ""
	require.NoError(t, seed(cfg, db))

	count, err := profile.CountAdmins(db)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSeed_EmailTakenByUser(t *testing.T) {
	db := dbtest.New(t)

	_, err := profile.CreateLocal(db, "admin@example.com", "other-pass", "Ada", "L", models.RoleUser)
	require.NoError(t, err)

	require.NoError(t, seed(testConfig(), db))

	count, err := profile.CountAdmins(db)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNewNotifier(t *testing.T) {
	cfg := testConfig()

	n, err := newNotifier(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &mail.Mailer{}, n)

	cfg.Mail.Transport = "carrier-pigeon"
	_, err = newNotifier(context.Background(), cfg)
	require.ErrorIs(t, err, config.ErrUnknownMailTransport)
}

func TestNewLimiter(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()

	l := newLimiter(ctx, cfg)
	assert.IsType(t, &ratelimit.Memory{}, l)

	mr := miniredis.RunT(t)
	cfg.RateLimit.Backend = "redis"
	cfg.RateLimit.Redis.Addr = mr.Addr()

	l = newLimiter(ctx, cfg)
	require.IsType(t, &ratelimit.Redis{}, l)

	for _, want := range []bool{true, true, false} {
		ok, err := l.TryConsume(ctx, "203.0.113.7")
		require.NoError(t, err)
		assert.Equal(t, want, ok)
	}
}

func TestNewCaptcha(t *testing.T) {
	cfg := testConfig()
	assert.Equal(t, captcha.Disabled{}, newCaptcha(cfg))

	cfg.Captcha = config.Captcha{Enabled: true, Secret: "s", VerifyURL: "https://hcaptcha.example.com"}
	assert.IsType(t, &captcha.HCaptcha{}, newCaptcha(cfg))
}

func TestOptionalDepsDisabled(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	db := dbtest.New(t)

	files, err := newFileStore(ctx, cfg)
	require.NoError(t, err)
	assert.Nil(t, files)

	replier, err := newChat(ctx, cfg, db)
	require.NoError(t, err)
	assert.Nil(t, replier)

	provider, err := newOIDC(ctx, cfg, db)
	require.NoError(t, err)
	assert.Nil(t, provider)
}

func TestNew_NilConfig(t *testing.T) {
	_, err := New(context.Background(), nil)
	require.ErrorIs(t, err, ErrConfigNil)
}
