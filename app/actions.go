package app

import (
	"context"

	apperrors "github.com/kbukum/storefront/errors"
	"github.com/kbukum/storefront/httpclient"
	"github.com/kbukum/storefront/logger"
	"github.com/kbukum/storefront/model"
	"github.com/kbukum/storefront/validation"
)

// loadingStore is the part of a store every action drives.
type loadingStore interface {
	SetLoading(bool)
	SetError(string)
}

// track marks s loading, clears its error, and returns a function that
// ends loading and records resp's error.
func track(s loadingStore) func(msg string) {
	s.SetLoading(true)
	s.SetError("")
	return func(msg string) {
		s.SetLoading(false)
		if msg != "" {
			s.SetError(msg)
		}
	}
}

func (a *App) failed(op string, status int, msg string) error {
	a.Logger.Debug("action failed", logger.Fields(logger.FieldOperation, op, logger.FieldStatus, status, logger.FieldError, msg))
	return apperrors.FromResponse(status, msg)
}

// --- auth ---

// Login signs in, stores the token and user.
func (a *App) Login(ctx context.Context, email, password string) error {
	return a.authenticate(ctx, "login", a.Service.Login, email, password)
}

// Register creates an account and signs in.
func (a *App) Register(ctx context.Context, email, password string) error {
	return a.authenticate(ctx, "register", a.Service.Register, email, password)
}

type authCall func(ctx context.Context, email, password string) httpclient.APIResponse[model.AuthResponse]

func (a *App) authenticate(ctx context.Context, op string, call authCall, email, password string) error {
	done := track(a.Auth)
	resp := call(ctx, email, password)
	if !resp.IsSuccess() {
		done(resp.Error)
		return a.failed(op, resp.Status, resp.Error)
	}
	if resp.Data == nil {
		done("empty auth response")
		return apperrors.FromResponse(0, "empty auth response")
	}
	user := resp.Data.User
	a.Auth.SetUser(&user)
	if err := a.Auth.SetToken(resp.Data.Token); err != nil {
		done(err.Error())
		return apperrors.Storage("save auth token", err)
	}
	done("")
	a.Logger.Info("signed in", logger.Fields(logger.FieldOperation, op, logger.FieldEmail, user.Email))
	return nil
}

// Logout clears the persisted token and resets the session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.Service.Logout(ctx); err != nil {
		return apperrors.Storage("logout", err)
	}
	if err := a.Auth.Logout(); err != nil {
		return apperrors.Storage("logout", err)
	}
	return nil
}

// --- products ---

// LoadProducts fetches the current page with the active filters.
func (a *App) LoadProducts(ctx context.Context) error {
	s := a.Products.Get()
	done := track(a.Products)
	resp := a.Service.GetProducts(ctx, s.CurrentPage, s.PageSize, a.Products.Filters())
	if !resp.IsSuccess() {
		done(resp.Error)
		return a.failed("load_products", resp.Status, resp.Error)
	}
	done("")
	if resp.Data != nil {
		a.Products.SetProducts(resp.Data.Products, resp.Data.Total)
	}
	return nil
}

// Search sets the search query, returning to page 1, and reloads.
func (a *App) Search(ctx context.Context, query string) error {
	a.Products.SetSearchQuery(query)
	return a.LoadProducts(ctx)
}

// FilterCategories sets the category filter, returning to page 1, and reloads.
func (a *App) FilterCategories(ctx context.Context, ids []string) error {
	a.Products.SetSelectedCategories(ids)
	return a.LoadProducts(ctx)
}

// GoToProductPage moves to page and reloads.
func (a *App) GoToProductPage(ctx context.Context, page int) error {
	a.Products.SetCurrentPage(page)
	return a.LoadProducts(ctx)
}

// QuickSearch runs the search endpoint and shows its results as the
// product list.
func (a *App) QuickSearch(ctx context.Context, query string) error {
	done := track(a.Products)
	resp := a.Service.SearchProducts(ctx, query)
	if !resp.IsSuccess() {
		done(resp.Error)
		return a.failed("search_products", resp.Status, resp.Error)
	}
	done("")
	var products []model.Product
	if resp.Data != nil {
		products = *resp.Data
	}
	a.Products.SetProducts(products, len(products))
	return nil
}

// LoadProduct fetches one product into CurrentProduct.
func (a *App) LoadProduct(ctx context.Context, id string) error {
	done := track(a.Products)
	resp := a.Service.GetProductByID(ctx, id)
	if !resp.IsSuccess() {
		done(resp.Error)
		return a.failed("load_product", resp.Status, resp.Error)
	}
	done("")
	a.Products.SetCurrentProduct(resp.Data)
	return nil
}

// LoadCategories returns every category. Categories have no store.
func (a *App) LoadCategories(ctx context.Context) ([]model.Category, error) {
	resp := a.Service.GetCategories(ctx)
	if !resp.IsSuccess() {
		return nil, a.failed("load_categories", resp.Status, resp.Error)
	}
	if resp.Data == nil {
		return nil, nil
	}
	return *resp.Data, nil
}

// --- cart ---

// AddToCart fetches the product and adds quantity of it to the local cart.
func (a *App) AddToCart(ctx context.Context, productID string, quantity int) error {
	if err := validation.New().Min("quantity", quantity, 1).Validate(); err != nil {
		return err
	}
	resp := a.Service.GetProductByID(ctx, productID)
	if !resp.IsSuccess() {
		a.Cart.SetError(resp.Error)
		return a.failed("add_to_cart", resp.Status, resp.Error)
	}
	if resp.Data == nil {
		return apperrors.NotFound("product", productID)
	}
	if err := a.Cart.AddItem(*resp.Data, quantity); err != nil {
		return apperrors.Storage("save cart", err)
	}
	return nil
}

// SyncCart replaces the local cart with the server's.
func (a *App) SyncCart(ctx context.Context) error {
	done := track(a.Cart)
	resp := a.Service.GetCart(ctx)
	if !resp.IsSuccess() {
		done(resp.Error)
		return a.failed("sync_cart", resp.Status, resp.Error)
	}
	done("")
	var items []model.CartItem
	if resp.Data != nil {
		items = resp.Data.Items
	}
	if err := a.Cart.Replace(items); err != nil {
		return apperrors.Storage("save cart", err)
	}
	return nil
}

// Checkout places an order for the cart and clears it.
func (a *App) Checkout(ctx context.Context) (*model.Order, error) {
	items := a.Cart.Get().Items
	if len(items) == 0 {
		return nil, apperrors.Validation("cart is empty")
	}

	done := track(a.Cart)
	resp := a.Service.CreateOrder(ctx, items)
	if !resp.IsSuccess() {
		done(resp.Error)
		return nil, a.failed("checkout", resp.Status, resp.Error)
	}
	done("")
	if resp.Data == nil {
		return nil, apperrors.FromResponse(0, "empty order response")
	}
	if err := a.Cart.ClearCart(); err != nil {
		a.Logger.WithError(err).Warn("order placed but cart not cleared")
	}
	a.Orders.SetCurrentOrder(resp.Data)
	a.Logger.Info("order placed", logger.Fields(logger.FieldOrderID, resp.Data.ID))
	return resp.Data, nil
}

// --- orders ---

// LoadOrders fetches the current page with the active status filter.
func (a *App) LoadOrders(ctx context.Context) error {
	s := a.Orders.Get()
	done := track(a.Orders)
	resp := a.Service.GetOrders(ctx, s.CurrentPage, s.PageSize, a.Orders.Filters())
	if !resp.IsSuccess() {
		done(resp.Error)
		return a.failed("load_orders", resp.Status, resp.Error)
	}
	done("")
	if resp.Data != nil {
		a.Orders.SetOrders(resp.Data.Orders, resp.Data.Total)
	}
	return nil
}

// FilterOrders sets the status filter, returning to page 1, and reloads.
func (a *App) FilterOrders(ctx context.Context, statuses []model.OrderStatus) error {
	a.Orders.SetStatusFilter(statuses)
	return a.LoadOrders(ctx)
}

// LoadOrder fetches one order into CurrentOrder.
func (a *App) LoadOrder(ctx context.Context, id string) error {
	done := track(a.Orders)
	resp := a.Service.GetOrderByID(ctx, id)
	if !resp.IsSuccess() {
		done(resp.Error)
		return a.failed("load_order", resp.Status, resp.Error)
	}
	done("")
	a.Orders.SetCurrentOrder(resp.Data)
	return nil
}

// CancelOrder cancels an order and reloads it.
func (a *App) CancelOrder(ctx context.Context, id string) error {
	done := track(a.Orders)
	resp := a.Service.CancelOrder(ctx, id)
	if !resp.IsSuccess() {
		done(resp.Error)
		return a.failed("cancel_order", resp.Status, resp.Error)
	}
	done("")
	return a.LoadOrder(ctx, id)
}
