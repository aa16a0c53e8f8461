package config

import (
	"time"

	"github.com/unilabvision/myuni/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
	CookieName string
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Auth      Auth
	AI        AI
	Mail      Mail
	Captcha   Captcha
	RateLimit RateLimit
	Storage   Storage
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool    // disable recover middleware
	Domain         string  // domain name for the webserver
	Port           int     // listening port for the webserver
	ShutDownTime   int     // wait time for shutdown
	URL            string  // base url for the webserver
	BodyLimit      int     // max request body size in bytes
	Session        Session // session settings
}

// Auth holds identity provider settings.
type Auth struct {
	OIDC  OIDCAuth
	Local LocalAuth
}

// OIDCAuth configures sign-in through the external identity provider.
type OIDCAuth struct {
	Enabled      bool
	ProviderURL  string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
	AdminClaim   string // boolean claim or group name granting the admin role
}

// LocalAuth configures password login for local admin accounts.
type LocalAuth struct {
	Enabled       bool
	AdminEmail    string // seeded on first start when no admin exists
	AdminPassword string
}

// AI holds the completion service settings used by the chat pipeline.
type AI struct {
	APIKey      string
	Model       string
	MaxAttempts int
	Timeout     time.Duration
	Temperature float32
	MaxTokens   int32
}

// Mail holds the outbound email settings.
type Mail struct {
	Transport       string // smtp or ses
	From            string
	FromName        string
	AdminRecipients []string
	Timeout         time.Duration
	SMTP            SMTP
	SES             SES
}

// SMTP relay settings.
type SMTP struct {
	Host     string
	Port     int
	User     string
	Password string
}

// SES settings for the AWS SES v2 transport.
type SES struct {
	Region    string
	AccessKey string
	SecretKey string
}

// Captcha holds hCaptcha verification settings.
type Captcha struct {
	Enabled   bool
	Secret    string
	VerifyURL string
}

// RateLimit configures the newsletter rate limiter.
type RateLimit struct {
	Backend string // memory or redis
	Limit   int
	Window  time.Duration
	Redis   Redis
}

// Redis connection settings.
type Redis struct {
	Addr     string
	Password string
	DB       int
}

// Storage configures object storage for uploaded form files.
type Storage struct {
	Enabled   bool
	Bucket    string
	Region    string
	Prefix    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PublicURL string
}
