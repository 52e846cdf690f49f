package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	errx "github.com/qkart/storefront/internal/core/error"
	"github.com/qkart/storefront/internal/storefront/api"
	"github.com/qkart/storefront/internal/storefront/app"
	"github.com/qkart/storefront/internal/storefront/model"
	"github.com/qkart/storefront/internal/storefront/notify"
	"github.com/qkart/storefront/internal/storefront/repo"
	pkgredis "github.com/qkart/storefront/pkg/redis"
	"github.com/spf13/cobra"
)

// Config is everything the commands need, already resolved from the environment.
type Config struct {
	API        model.APIConfig
	Search     model.SearchConfig
	Session    model.SessionConfig
	Redis      pkgredis.Config
	MockServer model.MockServerConfig
}

type runtime struct {
	cfg Config
	out io.Writer
	err io.Writer
}

// NewRootCommand builds the qkart command tree.
func NewRootCommand(cfg Config) *cobra.Command {
	rt := &runtime{cfg: cfg, out: os.Stdout, err: os.Stderr}

	root := &cobra.Command{
		Use:   "qkart",
		Short: "QKart storefront client",
		Long: `qkart browses the QKart catalog, manages your cart and session against a
QKart REST backend (QKART_ENDPOINT).

Run "qkart browse" for the interactive view with search-as-you-type.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			rt.out = cmd.OutOrStdout()
			rt.err = cmd.ErrOrStderr()
		},
	}
	root.PersistentFlags().StringVar(&rt.cfg.API.Endpoint, "endpoint", cfg.API.Endpoint, "QKart API base URL")
	root.PersistentFlags().StringVar(&rt.cfg.Session.Profile, "profile", cfg.Session.Profile, "session profile name")

	root.AddCommand(
		rt.productsCmd(),
		rt.searchCmd(),
		rt.cartCmd(),
		rt.addCmd(),
		rt.qtyCmd(),
		rt.incCmd(),
		rt.decCmd(),
		rt.loginCmd(),
		rt.registerCmd(),
		rt.logoutCmd(),
		rt.whoamiCmd(),
		rt.checkoutCmd(),
		rt.browseCmd(),
		rt.mockServerCmd(),
	)
	return root
}

// Execute runs the command tree and returns the process exit code. Storefront
// failures were already shown by the notifier; anything else is printed here.
func Execute(ctx context.Context, cfg Config) int {
	root := NewRootCommand(cfg)
	if err := root.ExecuteContext(ctx); err != nil {
		var e *errx.Error
		if !errors.As(err, &e) {
			fmt.Fprintln(root.ErrOrStderr(), renderNotification(notify.Error, err.Error()))
		}
		return 1
	}
	return 0
}

// build wires a Store to the configured backend without loading anything. The
// returned func releases it.
func (rt *runtime) build(ctx context.Context, notifier notify.Notifier) (*app.Store, func(), error) {
	sessions, closeRepo, err := repo.NewSessionRepository(ctx, rt.cfg.Session, rt.cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	if notifier == nil {
		notifier = rt.notifier()
	}

	store := app.NewWithClient(api.New(rt.cfg.API), sessions, notifier, rt.cfg.Search.Debounce)
	release := func() {
		store.Close()
		_ = closeRepo()
	}
	return store, release, nil
}

// open is build followed by Mount.
func (rt *runtime) open(ctx context.Context, notifier notify.Notifier) (*app.Store, func(), error) {
	store, release, err := rt.build(ctx, notifier)
	if err != nil {
		return nil, nil, err
	}
	// Failures are already shown by the notifier; keep going with what loaded.
	_ = store.Mount(ctx)
	return store, release, nil
}

func (rt *runtime) notifier() notify.Notifier {
	return notify.Func(func(v notify.Variant, msg string) {
		fmt.Fprintln(rt.err, renderNotification(v, msg))
	})
}
