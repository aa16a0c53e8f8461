package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unilabvision/myuni/internal/config"
)

const redactedValue = "******"

func init() { //nolint: gochecknoinits
	configCmd.Flags().BoolVar(&dumpJSON, "json", false, "Print the configuration as JSON")
	configCmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "Print passwords and keys unmasked")

	rootCmd.AddCommand(configCmd)
}

var (
	dumpJSON    bool
	showSecrets bool

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := config.ReadConfig(configPath)
			if err != nil {
				return err
			}

			if !showSecrets {
				redact(&c)
			}

			out, err := dump(&c, dumpJSON)
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), out)

			return err
		},
	}
)

func dump(c *config.Config, asJSON bool) (string, error) {
	if asJSON {
		return config.DumpConfigJSON(c)
	}

	return config.DumpConfig(c)
}

// redact masks every configured secret.
func redact(c *config.Config) {
	for _, s := range []*string{
		&c.DB.Password,
		&c.Auth.OIDC.ClientSecret,
		&c.Auth.Local.AdminPassword,
		&c.AI.APIKey,
		&c.Mail.SMTP.Password,
		&c.Mail.SES.SecretKey,
		&c.Captcha.Secret,
		&c.RateLimit.Redis.Password,
		&c.Storage.SecretKey,
	} {
		if *s != "" {
			*s = redactedValue
		}
	}
}
