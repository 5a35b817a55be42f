package main

import (
	"context"

	"github.com/spf13/cobra"

	apperrors "github.com/kbukum/storefront/errors"
	"github.com/kbukum/storefront/httpclient"
	"github.com/kbukum/storefront/model"
	"github.com/kbukum/storefront/resilience"
)

func newCategoriesCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "Manage product categories",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp := resilience.RetryCall(cmd.Context(), c.retryConfig(), func(ctx context.Context) httpclient.APIResponse[[]model.Category] {
				return c.app.Service.GetCategories(ctx)
			})
			if !resp.IsSuccess() {
				return apperrors.FromResponse(resp.Status, resp.Error)
			}
			var cats []model.Category
			if resp.Data != nil {
				cats = *resp.Data
			}
			return c.out.show(cats, func() {
				rows := make([][]string, 0, len(cats))
				for _, cat := range cats {
					rows = append(rows, []string{cat.ID, cat.Name, cat.Description})
				}
				c.out.table([]string{"ID", "Name", "Description"}, rows)
			})
		},
	}

	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.showCategory(c.app.Service.CreateCategory(cmd.Context(), args[0]), "Created")
		},
	}

	update := &cobra.Command{
		Use:   "update <id> <name>",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.showCategory(c.app.Service.UpdateCategory(cmd.Context(), args[0], args[1]), "Updated")
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp := c.app.Service.DeleteCategory(cmd.Context(), args[0])
			if !resp.IsSuccess() {
				return apperrors.FromResponse(resp.Status, resp.Error)
			}
			c.out.success("Deleted category " + args[0])
			return nil
		},
	}

	cmd.AddCommand(list, create, update, del)
	return cmd
}

func (c *cli) showCategory(resp httpclient.APIResponse[model.Category], verb string) error {
	if !resp.IsSuccess() {
		return apperrors.FromResponse(resp.Status, resp.Error)
	}
	cat := resp.Data
	if cat == nil {
		return apperrors.FromResponse(0, "empty category response")
	}
	return c.out.show(cat, func() {
		c.out.success(verb + " category " + cat.ID + " (" + cat.Name + ")")
	})
}
