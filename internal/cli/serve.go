package cli

import (
	"os/signal"
	"syscall"

	"github.com/danmuck/romanapi/internal/config"
	"github.com/danmuck/romanapi/internal/logging"
	"github.com/danmuck/romanapi/internal/roman"
	"github.com/danmuck/romanapi/internal/server"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the conversion HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			installLogger(cfg)

			srv, err := server.New(cfg, roman.NewConverter())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			log.Info().Str("node", cfg.ID).Str("addr", cfg.Addr).Msg("romanctl serve starting")
			return srv.ListenAndServe(ctx)
		},
	}
}

// installLogger applies the [log] table; ROMANAPI_LOG_* env still wins.
func installLogger(cfg config.Config) {
	lc := logging.DefaultConfig(logging.ProfileRuntime)
	if lvl, ok := logging.ParseLevel(cfg.Log.Level); ok {
		lc.Level = lvl
	}
	lc.Timestamp = cfg.Log.Timestamp
	lc.NoColor = cfg.Log.NoColor
	logging.ApplyEnv(&lc)
	logging.Install(lc, cfg.ID)
}
