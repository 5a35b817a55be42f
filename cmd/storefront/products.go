package main

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	apperrors "github.com/kbukum/storefront/errors"
	"github.com/kbukum/storefront/httpclient"
	"github.com/kbukum/storefront/model"
	"github.com/kbukum/storefront/resilience"
	"github.com/kbukum/storefront/store"
)

func newProductsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product", "p"},
		Short:   "Browse the catalog",
	}

	var (
		page       int
		search     string
		categories string
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List one page of products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.app.Products.SetSearchQuery(search)
			c.app.Products.SetSelectedCategories(splitArg(categories))
			if err := c.app.GoToProductPage(cmd.Context(), page); err != nil {
				return err
			}
			return c.renderProductPage(c.app.Products.Get())
		},
	}
	list.Flags().IntVar(&page, "page", 1, "page number")
	list.Flags().StringVarP(&search, "search", "s", "", "filter by name or description")
	list.Flags().StringVar(&categories, "category", "", "comma-separated category ids")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp := resilience.RetryCall(cmd.Context(), c.retryConfig(), func(ctx context.Context) httpclient.APIResponse[model.Product] {
				return c.app.Service.GetProductByID(ctx, args[0])
			})
			if !resp.IsSuccess() {
				return apperrors.FromResponse(resp.Status, resp.Error)
			}
			p := resp.Data
			if p == nil {
				return apperrors.FromResponse(0, "empty product response")
			}
			c.app.Products.SetCurrentProduct(p)
			return c.out.show(p, func() {
				c.out.table([]string{"Field", "Value"}, [][]string{
					{"ID", p.ID},
					{"Name", p.Name},
					{"Price", money(p.Price)},
					{"In stock", strconv.Itoa(p.Inventory)},
					{"Category", categoryName(p)},
					{"Description", p.Description},
				})
			})
		},
	}

	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.QuickSearch(cmd.Context(), args[0]); err != nil {
				return err
			}
			return c.renderProductPage(c.app.Products.Get())
		},
	}

	cmd.AddCommand(list, get, searchCmd)
	return cmd
}

func (c *cli) renderProductPage(s store.ProductState) error {
	return c.out.show(s.Products, func() {
		rows := make([][]string, 0, len(s.Products))
		for _, p := range s.Products {
			rows = append(rows, []string{p.ID, p.Name, money(p.Price), strconv.Itoa(p.Inventory), categoryName(&p)})
		}
		c.out.table([]string{"ID", "Name", "Price", "Stock", "Category"}, rows)
		c.out.note("page " + strconv.Itoa(s.CurrentPage) + " of " + strconv.Itoa(s.TotalPages()) + ", " + strconv.Itoa(s.TotalProducts) + " products")
	})
}

func categoryName(p *model.Product) string {
	if p.Category != nil {
		return p.Category.Name
	}
	return p.CategoryID
}
