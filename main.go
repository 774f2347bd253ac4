package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/soocke/glasses-studio/app"
	"github.com/soocke/glasses-studio/config"
)

func main() {
	// .env is optional; real environment variables take precedence.
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string
	v := config.NewViper()
	cmd := &cobra.Command{
		Use:          "glasses-studio [photo]",
		Short:        "Outline glasses on a photo and extract them as a transparent PNG",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, cfgPath)
			logger := NewLogger(cfg.Level())
			if err != nil {
				logger.Warn("config", "path", cfgPath, "error", err)
			}
			var initial string
			if len(args) == 1 {
				initial = args[0]
			}
			application, err := app.NewApp("Glasses Studio", cfg, logger)
			if err != nil {
				return err
			}
			application.Start(initial)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&cfgPath, "config", "glasses-studio.json", "config file (JSON or YAML)")
	f.String("service", "", "extraction service base URL")
	f.Bool("debug", false, "debug logging and runtime samplers")
	_ = v.BindPFlag("service_url", f.Lookup("service"))
	_ = v.BindPFlag("debug", f.Lookup("debug"))
	return cmd
}
