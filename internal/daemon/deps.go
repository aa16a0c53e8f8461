package daemon

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/unilabvision/myuni/internal/auth"
	"github.com/unilabvision/myuni/internal/captcha"
	"github.com/unilabvision/myuni/internal/chat"
	"github.com/unilabvision/myuni/internal/chat/gemini"
	"github.com/unilabvision/myuni/internal/config"
	"github.com/unilabvision/myuni/internal/db/controller/lesson"
	"github.com/unilabvision/myuni/internal/filestore"
	redislog "github.com/unilabvision/myuni/internal/logger/adapter/redis"
	"github.com/unilabvision/myuni/internal/mail"
	"github.com/unilabvision/myuni/internal/ratelimit"
	"github.com/unilabvision/myuni/internal/web"
	"github.com/unilabvision/myuni/internal/web/handler/aichat"
	oidchandler "github.com/unilabvision/myuni/internal/web/handler/auth/oidc"
)

const (
	transportSES = "ses"
	backendRedis = "redis"
)

// newDeps builds the handler collaborators. Optional features that are not
// configured stay nil.
func newDeps(ctx context.Context, cfg *config.Config, db *gorm.DB) (web.Deps, error) {
	var (
		deps web.Deps
		err  error
	)

	if deps.Notifier, err = newNotifier(ctx, cfg); err != nil {
		return deps, err
	}

	deps.Limiter = newLimiter(ctx, cfg)
	deps.Captcha = newCaptcha(cfg)

	if deps.Files, err = newFileStore(ctx, cfg); err != nil {
		return deps, err
	}

	if deps.Chat, err = newChat(ctx, cfg, db); err != nil {
		return deps, err
	}

	if deps.OIDC, err = newOIDC(ctx, cfg, db); err != nil {
		return deps, err
	}

	return deps, nil
}

func newNotifier(ctx context.Context, cfg *config.Config) (mail.Notifier, error) {
	var sender mail.Sender

	switch cfg.Mail.Transport {
	case transportSES:
		ses, err := mail.NewSESSender(ctx, mail.SESConfig{
			Region:    cfg.Mail.SES.Region,
			AccessKey: cfg.Mail.SES.AccessKey,
			SecretKey: cfg.Mail.SES.SecretKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create SES sender: %w", err)
		}

		sender = ses
	case "", "smtp":
		sender = mail.NewSMTPSender(mail.SMTPConfig{
			Host:     cfg.Mail.SMTP.Host,
			Port:     cfg.Mail.SMTP.Port,
			User:     cfg.Mail.SMTP.User,
			Password: cfg.Mail.SMTP.Password,
		})
	default:
		return nil, config.ErrUnknownMailTransport
	}

	log.Info().Str("transport", cfg.Mail.Transport).Msg("mail transport")

	return mail.NewMailer(sender, mail.NewTemplates(cfg.Webserver.URL, cfg.Title), mail.Options{
		From:            cfg.Mail.From,
		FromName:        cfg.Mail.FromName,
		AdminRecipients: cfg.Mail.AdminRecipients,
		Timeout:         cfg.Mail.Timeout,
	}), nil
}

// newLimiter returns the shared rate limiter. An unreachable redis only logs,
// the limiter lets requests through while the backend fails.
func newLimiter(ctx context.Context, cfg *config.Config) ratelimit.RateLimiter {
	rl := cfg.RateLimit

	if rl.Backend != backendRedis {
		return ratelimit.NewMemory(rl.Limit, rl.Window)
	}

	redis.SetLogger(redislog.NewGlobal())

	client := redis.NewClient(&redis.Options{
		Addr:     rl.Redis.Addr,
		Password: rl.Redis.Password,
		DB:       rl.Redis.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", rl.Redis.Addr).Msg("redis rate limit backend unreachable")
	}

	return ratelimit.NewRedis(client, rl.Limit, rl.Window)
}

func newCaptcha(cfg *config.Config) captcha.Verifier {
	if !cfg.Captcha.Enabled {
		return captcha.Disabled{}
	}

	return captcha.NewHCaptcha(cfg.Captcha.Secret, cfg.Captcha.VerifyURL, nil)
}

func newFileStore(ctx context.Context, cfg *config.Config) (filestore.Store, error) {
	if !cfg.Storage.Enabled {
		log.Info().Msg("form file uploads are disabled")
		return nil, nil //nolint:nilnil // uploads are optional
	}

	store, err := filestore.NewS3(ctx, filestore.Config{
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		Prefix:    cfg.Storage.Prefix,
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		PublicURL: cfg.Storage.PublicURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create file store: %w", err)
	}

	return store, nil
}

func newChat(ctx context.Context, cfg *config.Config, db *gorm.DB) (aichat.Replier, error) {
	if cfg.AI.APIKey == "" {
		log.Warn().Msg("no AI API key configured, chat is unavailable")
		return nil, nil //nolint:nilnil // chat is optional
	}

	client, err := gemini.New(ctx, gemini.Config{
		APIKey:      cfg.AI.APIKey,
		Model:       cfg.AI.Model,
		Temperature: cfg.AI.Temperature,
		MaxTokens:   cfg.AI.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	return chat.New(client, lesson.Finder{DB: db}, chat.Options{
		MaxAttempts: cfg.AI.MaxAttempts,
		Timeout:     cfg.AI.Timeout,
	}), nil
}

func newOIDC(ctx context.Context, cfg *config.Config, db *gorm.DB) (oidchandler.Provider, error) {
	o := cfg.Auth.OIDC
	if !o.Enabled {
		return nil, nil //nolint:nilnil // sign in through OIDC is optional
	}

	provider, err := auth.NewOIDCProvider(ctx, &auth.OIDCConfig{
		Enabled:      o.Enabled,
		ProviderURL:  o.ProviderURL,
		ClientID:     o.ClientID,
		ClientSecret: o.ClientSecret,
		RedirectURL:  o.RedirectURL,
		Scopes:       o.Scopes,
		AdminClaim:   o.AdminClaim,
	}, db)
	if err != nil {
		return nil, err
	}

	return provider, nil
}
