package service

import (
	"context"

	"github.com/kbukum/storefront/httpclient"
	"github.com/kbukum/storefront/model"
)

const (
	cartPath      = "/public/cart"
	cartItemsPath = cartPath + "/items"
)

func (s *Service) GetCart(ctx context.Context) httpclient.APIResponse[model.CartContents] {
	return httpclient.Get[model.CartContents](ctx, s.client, cartPath)
}

// AddToCart adds quantity of a product. POST /public/cart/items
func (s *Service) AddToCart(ctx context.Context, productID string, quantity int) httpclient.APIResponse[model.CartContents] {
	line := model.CartLine{ProductID: productID, Quantity: quantity}
	if err := requireID(productID); err != nil {
		return rejected[model.CartContents](err)
	}
	return httpclient.Post[model.CartContents](ctx, s.client, cartItemsPath, line)
}

// UpdateCartItem sets a line's quantity. PUT /public/cart/items/{id} {quantity}
// The quantity is sent as given; the server decides what it accepts.
func (s *Service) UpdateCartItem(ctx context.Context, productID string, quantity int) httpclient.APIResponse[model.CartContents] {
	line := model.CartLine{Quantity: quantity}
	if err := requireID(productID); err != nil {
		return rejected[model.CartContents](err)
	}
	return httpclient.Put[model.CartContents](ctx, s.client, resourcePath(cartItemsPath, productID), line)
}

func (s *Service) RemoveFromCart(ctx context.Context, productID string) httpclient.APIResponse[httpclient.Empty] {
	if err := requireID(productID); err != nil {
		return rejected[httpclient.Empty](err)
	}
	return httpclient.Delete[httpclient.Empty](ctx, s.client, resourcePath(cartItemsPath, productID))
}

func (s *Service) ClearCart(ctx context.Context) httpclient.APIResponse[httpclient.Empty] {
	return httpclient.Delete[httpclient.Empty](ctx, s.client, cartPath)
}
