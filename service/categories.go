package service

import (
	"context"
	"strings"

	"github.com/kbukum/storefront/httpclient"
	"github.com/kbukum/storefront/model"
	"github.com/kbukum/storefront/validation"
)

const categoriesPath = "/public/categories"

func (s *Service) GetCategories(ctx context.Context) httpclient.APIResponse[[]model.Category] {
	return httpclient.Get[[]model.Category](ctx, s.client, categoriesPath)
}

func (s *Service) CreateCategory(ctx context.Context, name string) httpclient.APIResponse[model.Category] {
	in := model.CategoryInput{Name: strings.TrimSpace(name)}
	if err := validation.Validate(in); err != nil {
		return rejected[model.Category](err)
	}
	return httpclient.Post[model.Category](ctx, s.client, categoriesPath, in)
}

func (s *Service) UpdateCategory(ctx context.Context, id, name string) httpclient.APIResponse[model.Category] {
	in := model.CategoryInput{Name: strings.TrimSpace(name)}
	if err := requireID(id); err != nil {
		return rejected[model.Category](err)
	}
	if err := validation.Validate(in); err != nil {
		return rejected[model.Category](err)
	}
	return httpclient.Put[model.Category](ctx, s.client, resourcePath(categoriesPath, id), in)
}

func (s *Service) DeleteCategory(ctx context.Context, id string) httpclient.APIResponse[httpclient.Empty] {
	if err := requireID(id); err != nil {
		return rejected[httpclient.Empty](err)
	}
	return httpclient.Delete[httpclient.Empty](ctx, s.client, resourcePath(categoriesPath, id))
}
