package cli

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/qkart/storefront/internal/storefront/mockapi"
	logx "github.com/qkart/storefront/pkg/logger"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func (rt *runtime) mockServerCmd() *cobra.Command {
	var users []string
	cmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Serve an in-memory QKart backend for local development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend := mockapi.New(nil)
			for _, u := range users {
				name, pass, ok := strings.Cut(u, ":")
				if !ok || name == "" {
					logx.Warn().Str("user", u).Msg("ignoring malformed --user, want name:password")
					continue
				}
				backend.AddUser(name, pass)
			}
			return serve(cmd.Context(), rt.cfg.MockServer.Addr, mockRouter(rt.cfg.MockServer.BasePath, backend))
		},
	}
	cmd.Flags().StringSliceVar(&users, "user", nil, "seed an account as name:password (repeatable)")
	return cmd
}

func mockRouter(basePath string, backend *mockapi.Server) http.Handler {
	r := chi.NewRouter()
	r.Mount(basePath, backend.Handler())
	return r
}

// serve runs the HTTP server until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logx.Info().Str("addr", addr).Msg("mock QKart backend listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logx.Info().Msg("shutting down mock backend")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
