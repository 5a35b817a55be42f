package service

import (
	"context"
	"net/url"
	"strings"

	"github.com/kbukum/storefront/httpclient"
	"github.com/kbukum/storefront/model"
)

const productsPath = "/public/products"

// GetProducts lists one page of products.
// GET /public/products?page=&limit=[&search=][&categories=a,b]
func (s *Service) GetProducts(ctx context.Context, page, limit int, filters model.ProductFilters) httpclient.APIResponse[model.ProductListResponse] {
	q := pageQuery(page, limit)
	if filters.SearchQuery != "" {
		q.Set("search", filters.SearchQuery)
	}
	if len(filters.CategoryIDs) > 0 {
		q.Set("categories", strings.Join(filters.CategoryIDs, ","))
	}
	return httpclient.Get[model.ProductListResponse](ctx, s.client, productsPath+"?"+q.Encode())
}

// GetProductByID fetches one product. GET /public/products/{id}
func (s *Service) GetProductByID(ctx context.Context, id string) httpclient.APIResponse[model.Product] {
	if err := requireID(id); err != nil {
		return rejected[model.Product](err)
	}
	return httpclient.Get[model.Product](ctx, s.client, resourcePath(productsPath, id))
}

// SearchProducts runs a free-text search. GET /public/products/search?q=
func (s *Service) SearchProducts(ctx context.Context, query string) httpclient.APIResponse[[]model.Product] {
	q := url.Values{"q": {query}}
	return httpclient.Get[[]model.Product](ctx, s.client, productsPath+"/search?"+q.Encode())
}
