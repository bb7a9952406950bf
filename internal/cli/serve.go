package cli

import (
	"github.com/spf13/cobra"

	"github.com/quizpractice/backend/internal/api"
	"github.com/quizpractice/backend/internal/app"

	_ "github.com/quizpractice/backend/docs" // swagger docs
)

func newServeCmd(opts *options) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the practice API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.ServerAddress = addr
			}
			logger := app.NewLogger(cfg.Log, cmd.ErrOrStderr())

			a, err := app.New(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			handler := api.NewHandler(a.Sessions, a.Scores, a.Questions, logger)
			return api.Serve(cmd.Context(), cfg.ServerAddress, api.NewRouter(handler, logger), cfg.ShutdownTimeout, logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides SERVER_ADDRESS)")
	return cmd
}
