// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "myuni",
	Short: "MyUNI is the API and blog server of the MyUNI learning platform",
	Long: `MyUNI serves the bilingual (Turkish/English) JSON API of the MyUNI
learning platform: AI chat, blog comments, forms, newsletter, internship
applications, discount codes and certificate emails, plus the blog pages.`,
	Args: cobra.OnlyValidArgs,
}

var configPath string // Path to the configuration directory

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./etc/", "Directory holding main.toml")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
