package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"tourism-engine/internal/engine"
	"tourism-engine/internal/handler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the estimate HTTP server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		h := handler.New(engine.New(newBaselineRegistry()))
		srv := &fasthttp.Server{
			Handler:      h.ServeHTTP,
			Name:         "tourism-engine",
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		}

		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		log := zap.L().With(zap.String("command", "serve"))

		errCh := make(chan error, 1)
		go func() {
			log.Info("tourism engine starting", zap.String("addr", addr))
			errCh <- srv.ListenAndServe(addr)
		}()

		select {
		case err := <-errCh:
			return eris.Wrap(err, "serve: listen")
		case <-ctx.Done():
			log.Info("shutting down")
			if err := srv.Shutdown(); err != nil {
				return eris.Wrap(err, "serve: shutdown")
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
