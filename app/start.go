package app

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/unilabvision/myuni/internal/config"
	"github.com/unilabvision/myuni/internal/daemon"
	"github.com/unilabvision/myuni/internal/logger"
)

func init() { //nolint: gochecknoinits
	startCmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode")

	rootCmd.AddCommand(startCmd)
}

var (
	cfg     config.Config
	devMode bool

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the MyUNI web service",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			var err error
			if cfg, err = config.ReadConfig(configPath); err != nil {
				return err
			}

			if devMode {
				cfg.DevMode = true
			}

			return logger.Init(cfg.Log)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := daemon.New(context.Background(), &cfg)
			if err != nil {
				return err
			}

			cmd.SilenceUsage = true

			return d.Start()
		},
	}
)
