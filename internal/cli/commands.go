package cli

import (
	"fmt"
	"strconv"

	"github.com/qkart/storefront/internal/storefront/app"
	"github.com/qkart/storefront/internal/storefront/model"
	"github.com/spf13/cobra"
)

// withStore opens a mounted store for the command and closes it afterwards.
func (rt *runtime) withStore(fn func(cmd *cobra.Command, store *app.Store, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		store, release, err := rt.open(cmd.Context(), nil)
		if err != nil {
			return err
		}
		defer release()
		return fn(cmd, store, args)
	}
}

func (rt *runtime) productsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List the catalog",
		Args:  cobra.NoArgs,
		RunE: rt.withStore(func(cmd *cobra.Command, store *app.Store, args []string) error {
			fmt.Fprintln(rt.out, renderProducts(store.Snapshot().Filtered))
			return nil
		}),
	}
}

func (rt *runtime) searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search TEXT",
		Short: "Search products by name or category",
		Args:  cobra.ExactArgs(1),
		RunE: rt.withStore(func(cmd *cobra.Command, store *app.Store, args []string) error {
			_ = store.Search(cmd.Context(), args[0])
			fmt.Fprintln(rt.out, renderProducts(store.Snapshot().Filtered))
			return nil
		}),
	}
}

func (rt *runtime) cartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cart",
		Short: "Show your cart",
		Args:  cobra.NoArgs,
		RunE: rt.withStore(func(cmd *cobra.Command, store *app.Store, args []string) error {
			fmt.Fprintln(rt.out, renderCart(store.Snapshot()))
			return nil
		}),
	}
}

func (rt *runtime) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add PRODUCT_ID",
		Short: "Add one unit of a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: rt.withStore(func(cmd *cobra.Command, store *app.Store, args []string) error {
			if err := store.AddToCart(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(rt.out, renderCart(store.Snapshot()))
			return nil
		}),
	}
}

func (rt *runtime) qtyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "qty PRODUCT_ID QUANTITY",
		Short: "Set the quantity of a cart item; 0 removes it",
		Args:  cobra.ExactArgs(2),
		RunE: rt.withStore(func(cmd *cobra.Command, store *app.Store, args []string) error {
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantity %q is not a number", args[1])
			}
			if err := store.SetQuantity(cmd.Context(), args[0], qty); err != nil {
				return err
			}
			fmt.Fprintln(rt.out, renderCart(store.Snapshot()))
			return nil
		}),
	}
}

func (rt *runtime) incCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inc PRODUCT_ID",
		Short: "Increase a cart item's quantity by one",
		Args:  cobra.ExactArgs(1),
		RunE: rt.withStore(func(cmd *cobra.Command, store *app.Store, args []string) error {
			if err := store.Increment(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(rt.out, renderCart(store.Snapshot()))
			return nil
		}),
	}
}

func (rt *runtime) decCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dec PRODUCT_ID",
		Short: "Decrease a cart item's quantity by one",
		Args:  cobra.ExactArgs(1),
		RunE: rt.withStore(func(cmd *cobra.Command, store *app.Store, args []string) error {
			if err := store.Decrement(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(rt.out, renderCart(store.Snapshot()))
			return nil
		}),
	}
}

func (rt *runtime) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login USERNAME PASSWORD",
		Short: "Log in and remember the session",
		Args:  cobra.ExactArgs(2),
		RunE: rt.withStore(func(cmd *cobra.Command, store *app.Store, args []string) error {
			return store.Login(cmd.Context(), model.Credentials{Username: args[0], Password: args[1]})
		}),
	}
}

func (rt *runtime) registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register USERNAME PASSWORD CONFIRM_PASSWORD",
		Short: "Create an account",
		Args:  cobra.ExactArgs(3),
		RunE: rt.withStore(func(cmd *cobra.Command, store *app.Store, args []string) error {
			return store.Register(cmd.Context(), model.Registration{
				Username:        args[0],
				Password:        args[1],
				ConfirmPassword: args[2],
			})
		}),
	}
}

func (rt *runtime) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: rt.withStore(func(cmd *cobra.Command, store *app.Store, args []string) error {
			return store.Logout(cmd.Context())
		}),
	}
}

func (rt *runtime) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user and wallet balance",
		Args:  cobra.NoArgs,
		RunE: rt.withStore(func(cmd *cobra.Command, store *app.Store, args []string) error {
			fmt.Fprintln(rt.out, renderSession(store.Snapshot().Session))
			fmt.Fprintln(rt.out, styles.Muted.Render("backend "+rt.cfg.API.Endpoint))
			return nil
		}),
	}
}

func (rt *runtime) checkoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Show the order summary for the current cart",
		Args:  cobra.NoArgs,
		RunE: rt.withStore(func(cmd *cobra.Command, store *app.Store, args []string) error {
			summary, err := store.Checkout(cmd.Context())
			if err != nil {
				return err
			}
			st := store.Snapshot()
			fmt.Fprintln(rt.out, renderCart(st))
			fmt.Fprintln(rt.out, renderSummary(summary, st.Session))
			return nil
		}),
	}
}
