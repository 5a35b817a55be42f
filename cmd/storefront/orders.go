package main

import (
	"context"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	apperrors "github.com/kbukum/storefront/errors"
	"github.com/kbukum/storefront/httpclient"
	"github.com/kbukum/storefront/model"
	"github.com/kbukum/storefront/resilience"
)

func newOrdersCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orders",
		Aliases: []string{"order"},
		Short:   "Browse and cancel orders",
	}

	var (
		page   int
		status string
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List one page of orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var statuses []model.OrderStatus
			for _, s := range splitArg(status) {
				st, err := model.ParseOrderStatus(s)
				if err != nil {
					return apperrors.Validation(err.Error())
				}
				statuses = append(statuses, st)
			}
			c.app.Orders.SetStatusFilter(statuses)
			c.app.Orders.SetCurrentPage(page)
			if err := c.app.LoadOrders(cmd.Context()); err != nil {
				return err
			}
			s := c.app.Orders.Get()
			return c.out.show(s.Orders, func() {
				rows := make([][]string, 0, len(s.Orders))
				for _, o := range s.Orders {
					rows = append(rows, []string{o.ID, c.statusText(o.Status), strconv.Itoa(len(o.Items)), money(o.Total), o.CreatedAt.Local().Format(time.DateTime)})
				}
				c.out.table([]string{"ID", "Status", "Items", "Total", "Placed"}, rows)
				c.out.note("page " + strconv.Itoa(s.CurrentPage) + " of " + strconv.Itoa(s.TotalPages()) + ", " + strconv.Itoa(s.TotalOrders) + " orders")
			})
		},
	}
	list.Flags().IntVar(&page, "page", 1, "page number")
	list.Flags().StringVar(&status, "status", "", "comma-separated statuses: pending, confirmed, shipped, delivered, cancelled")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp := resilience.RetryCall(cmd.Context(), c.retryConfig(), func(ctx context.Context) httpclient.APIResponse[model.Order] {
				return c.app.Service.GetOrderByID(ctx, args[0])
			})
			if !resp.IsSuccess() {
				return apperrors.FromResponse(resp.Status, resp.Error)
			}
			c.app.Orders.SetCurrentOrder(resp.Data)
			return c.renderOrder(resp.Data)
		},
	}

	cancel := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel a pending or confirmed order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.CancelOrder(cmd.Context(), args[0]); err != nil {
				return err
			}
			return c.renderOrder(c.app.Orders.Get().CurrentOrder)
		},
	}

	cmd.AddCommand(list, get, cancel)
	return cmd
}

func (c *cli) renderOrder(o *model.Order) error {
	if o == nil {
		return apperrors.FromResponse(0, "empty order response")
	}
	return c.out.show(o, func() {
		c.out.line("Order %s  %s  %s", c.out.st.accent.Render(o.ID), c.statusText(o.Status), money(o.Total))
		rows := make([][]string, 0, len(o.Items))
		for _, it := range o.Items {
			rows = append(rows, []string{it.ProductID, strconv.Itoa(it.Quantity), money(it.Price), money(it.Subtotal)})
		}
		c.out.table([]string{"Product", "Qty", "Price", "Subtotal"}, rows)
	})
}

func (c *cli) statusText(s model.OrderStatus) string {
	if s == model.OrderCancelled {
		return c.out.st.danger.Render(string(s))
	}
	return string(s)
}
