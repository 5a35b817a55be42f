package main

import (
	"strconv"

	"github.com/spf13/cobra"

	apperrors "github.com/kbukum/storefront/errors"
	"github.com/kbukum/storefront/httpclient"
	"github.com/kbukum/storefront/model"
	"github.com/kbukum/storefront/store"
)

func newCartCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the shopping cart",
		Long: "Manage the shopping cart. The cart is kept in local storage; " +
			"--remote sends changes to the server cart and refreshes the local copy from it.",
	}

	var remote bool
	remoteFlag := func(cmd *cobra.Command) {
		cmd.Flags().BoolVar(&remote, "remote", false, "change the server cart")
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the cart",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return c.renderCart(c.app.Cart.Get())
		},
	}

	add := &cobra.Command{
		Use:   "add <product-id> [quantity]",
		Short: "Add a product",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty := 1
			if len(args) == 2 {
				var err error
				if qty, err = parseQuantity(args[1]); err != nil {
					return err
				}
			}
			if remote {
				return c.remoteCart(c.app.Service.AddToCart(cmd.Context(), args[0], qty))
			}
			if err := c.app.AddToCart(cmd.Context(), args[0], qty); err != nil {
				return err
			}
			return c.renderCart(c.app.Cart.Get())
		},
	}
	remoteFlag(add)

	update := &cobra.Command{
		Use:   "update <product-id> <quantity>",
		Short: "Set the quantity of a product",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := parseQuantity(args[1])
			if err != nil {
				return err
			}
			if remote {
				return c.remoteCart(c.app.Service.UpdateCartItem(cmd.Context(), args[0], qty))
			}
			if err := c.app.Cart.UpdateQuantity(args[0], qty); err != nil {
				return apperrors.Storage("save cart", err)
			}
			return c.renderCart(c.app.Cart.Get())
		},
	}
	remoteFlag(update)

	remove := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if remote {
				if err := checkEmpty(c.app.Service.RemoveFromCart(cmd.Context(), args[0])); err != nil {
					return err
				}
				return c.syncAndShow(cmd)
			}
			if err := c.app.Cart.RemoveItem(args[0]); err != nil {
				return apperrors.Storage("save cart", err)
			}
			return c.renderCart(c.app.Cart.Get())
		},
	}
	remoteFlag(remove)

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if remote {
				if err := checkEmpty(c.app.Service.ClearCart(cmd.Context())); err != nil {
					return err
				}
			}
			if err := c.app.Cart.ClearCart(); err != nil {
				return apperrors.Storage("clear cart", err)
			}
			c.out.success("Cart cleared.")
			return nil
		},
	}
	remoteFlag(clearCmd)

	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Replace the local cart with the server cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.syncAndShow(cmd)
		},
	}

	checkout := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			order, err := c.app.Checkout(cmd.Context())
			if err != nil {
				return err
			}
			return c.renderOrder(order)
		},
	}

	cmd.AddCommand(show, add, update, remove, clearCmd, syncCmd, checkout)
	return cmd
}

func (c *cli) remoteCart(resp httpclient.APIResponse[model.CartContents]) error {
	if !resp.IsSuccess() {
		return apperrors.FromResponse(resp.Status, resp.Error)
	}
	var items []model.CartItem
	if resp.Data != nil {
		items = resp.Data.Items
	}
	if err := c.app.Cart.Replace(items); err != nil {
		return apperrors.Storage("save cart", err)
	}
	return c.renderCart(c.app.Cart.Get())
}

func (c *cli) syncAndShow(cmd *cobra.Command) error {
	if err := c.app.SyncCart(cmd.Context()); err != nil {
		return err
	}
	return c.renderCart(c.app.Cart.Get())
}

type cartView struct {
	Items []model.CartItem `json:"items" yaml:"items"`
	Total float64          `json:"total" yaml:"total"`
	Count int              `json:"count" yaml:"count"`
}

func (c *cli) renderCart(s store.CartState) error {
	v := cartView{Items: s.Items, Total: s.Total, Count: s.Count()}
	if v.Items == nil {
		v.Items = []model.CartItem{}
	}
	return c.out.show(v, func() {
		rows := make([][]string, 0, len(s.Items))
		for _, it := range s.Items {
			rows = append(rows, []string{it.ProductID, it.Product.Name, strconv.Itoa(it.Quantity), money(it.Product.Price), money(it.Subtotal)})
		}
		c.out.table([]string{"Product", "Name", "Qty", "Price", "Subtotal"}, rows)
		c.out.line("%s %s (%d items)", c.out.st.accent.Render("Total:"), money(s.Total), s.Count())
	})
}

func checkEmpty(resp httpclient.APIResponse[httpclient.Empty]) error {
	if !resp.IsSuccess() {
		return apperrors.FromResponse(resp.Status, resp.Error)
	}
	return nil
}

func parseQuantity(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperrors.Validation("quantity: " + strconv.Quote(s) + " is not a number")
	}
	return n, nil
}
