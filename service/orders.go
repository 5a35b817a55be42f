package service

import (
	"context"
	"strings"

	"github.com/kbukum/storefront/httpclient"
	"github.com/kbukum/storefront/model"
	"github.com/kbukum/storefront/validation"
)

const ordersPath = "/public/orders"

// GetOrders lists one page of orders.
// GET /public/orders?page=&limit=[&statuses=a,b]
func (s *Service) GetOrders(ctx context.Context, page, limit int, filters model.OrderFilters) httpclient.APIResponse[model.OrderListResponse] {
	q := pageQuery(page, limit)
	if len(filters.Statuses) > 0 {
		statuses := make([]string, len(filters.Statuses))
		for i, st := range filters.Statuses {
			statuses[i] = string(st)
		}
		q.Set("statuses", strings.Join(statuses, ","))
	}
	return httpclient.Get[model.OrderListResponse](ctx, s.client, ordersPath+"?"+q.Encode())
}

func (s *Service) GetOrderByID(ctx context.Context, id string) httpclient.APIResponse[model.Order] {
	if err := requireID(id); err != nil {
		return rejected[model.Order](err)
	}
	return httpclient.Get[model.Order](ctx, s.client, resourcePath(ordersPath, id))
}

// CreateOrder places an order for items. POST /public/orders {items}
func (s *Service) CreateOrder(ctx context.Context, items []model.CartItem) httpclient.APIResponse[model.Order] {
	req := model.CreateOrderRequest{Items: items}
	if err := validation.Validate(req); err != nil {
		return rejected[model.Order](err)
	}
	return httpclient.Post[model.Order](ctx, s.client, ordersPath, req)
}

// CancelOrder cancels an order. PUT /public/orders/{id}/cancel {}
func (s *Service) CancelOrder(ctx context.Context, id string) httpclient.APIResponse[httpclient.Empty] {
	if err := requireID(id); err != nil {
		return rejected[httpclient.Empty](err)
	}
	return httpclient.Put[httpclient.Empty](ctx, s.client, resourcePath(ordersPath, id, "cancel"), struct{}{})
}
