// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvConfigJSON is the environment variable holding a JSON document merged over the file config.
const EnvConfigJSON = "MYUNI_CONFIG_JSON"

// DefaultBodyLimit fits a form carrying the maximum of five 5 MB files as base64.
const DefaultBodyLimit = 40 << 20

const (
	defaultShutDownTime = 5
	defaultAIAttempts   = 3
	defaultAITimeout    = 30 * time.Second
	defaultAIModel      = "gemini-2.0-flash"
	defaultMailTimeout  = 15 * time.Second
	defaultRateLimit    = 5
	defaultRateWindow   = time.Hour
	defaultCookieName   = "session"
	defaultSessionTTL   = 24 * time.Hour
	defaultCaptchaURL   = "https://api.hcaptcha.com/siteverify"
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	v := viper.New()
	v.SetConfigFile(path + "main.toml")
	v.SetConfigType("toml")

	if err = v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	if err = v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv(EnvConfigJSON)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	if err = validate(&c); err != nil {
		return Config{}, err
	}

	return c, nil
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read json config from env")
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate checks the settings the service can not start without
// and fills in defaults for the optional ones.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	switch c.DB.GormEngine {
	case "", "mysql", "postgres":
	default:
		return errors.Wrap(ErrUnknownGormEngine, invalidErrMessage)
	}

	switch c.Mail.Transport {
	case "", "smtp", "ses":
	default:
		return errors.Wrap(ErrUnknownMailTransport, invalidErrMessage)
	}

	switch c.RateLimit.Backend {
	case "", "memory", "redis":
	default:
		return errors.Wrap(ErrUnknownRateLimitBackend, invalidErrMessage)
	}

	setDefaults(c)

	return nil
}

func setDefaults(c *Config) { //nolint:cyclop
	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.Webserver.BodyLimit == 0 {
		c.Webserver.BodyLimit = DefaultBodyLimit
	}

	if c.Webserver.Session.CookieName == "" {
		c.Webserver.Session.CookieName = defaultCookieName
	}

	if c.Webserver.Session.ExpiryTime == 0 {
		c.Webserver.Session.ExpiryTime = defaultSessionTTL
	}

	if c.DB.GormEngine == "" {
		c.DB.GormEngine = "mysql"
	}

	if c.AI.MaxAttempts == 0 {
		c.AI.MaxAttempts = defaultAIAttempts
	}

	if c.AI.Timeout == 0 {
		c.AI.Timeout = defaultAITimeout
	}

	if c.AI.Model == "" {
		c.AI.Model = defaultAIModel
	}

	if c.Mail.Transport == "" {
		c.Mail.Transport = "smtp"
	}

	if c.Mail.Timeout == 0 {
		c.Mail.Timeout = defaultMailTimeout
	}

	if c.RateLimit.Backend == "" {
		c.RateLimit.Backend = "memory"
	}

	if c.RateLimit.Limit == 0 {
		c.RateLimit.Limit = defaultRateLimit
	}

	if c.RateLimit.Window == 0 {
		c.RateLimit.Window = defaultRateWindow
	}

	if c.Captcha.VerifyURL == "" {
		c.Captcha.VerifyURL = defaultCaptchaURL
	}
}
