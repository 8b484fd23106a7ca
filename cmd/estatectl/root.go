package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"estate_listing_v1/internal/config"
	"estate_listing_v1/pkg/client"
	"estate_listing_v1/pkg/logger"
)

// app 命令共享的状态
type app struct {
	apiURL   string
	token    string
	logLevel string

	log    *zap.Logger
	client *client.Client
}

func newRootCmd() *cobra.Command {
	a := &app{}
	defaults := config.LoadClient()

	root := &cobra.Command{
		Use:   "estatectl",
		Short: "Browse and submit estate listings",
		Long: `estatectl talks to the estate listing API.

Available commands:
  list    - Render the agency, agent or project listing grid
  show    - Render a single listing
  submit  - Validate, upload assets and submit a listing payload
  verify  - Change the verification status of a listing`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.New(a.logLevel, "console")
			if err != nil {
				return err
			}
			a.log = log
			a.client = client.New(client.Config{
				BaseURL: a.apiURL,
				Timeout: defaults.Timeout,
				Token:   a.token,
			}, log)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.apiURL, "api", defaults.BaseURL, "API base URL (env API_BASE_URL)")
	root.PersistentFlags().StringVar(&a.token, "token", defaults.Token, "session bearer token (env API_TOKEN)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	root.AddCommand(
		newListCmd(a),
		newShowCmd(a),
		newSubmitCmd(a),
		newVerifyCmd(a),
	)
	return root
}
