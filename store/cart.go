package store

import (
	"fmt"
	"slices"

	"github.com/kbukum/storefront/logger"
	"github.com/kbukum/storefront/model"
	"github.com/kbukum/storefront/storage"
)

// CartState is the local cart. Items are unique by ProductID and Total is
// the sum of their subtotals.
type CartState struct {
	Items     []model.CartItem `json:"items"`
	Total     float64          `json:"total"`
	IsLoading bool             `json:"isLoading"`
	Error     string           `json:"error"`
}

// Count returns the number of units across all lines.
func (s CartState) Count() int {
	n := 0
	for _, it := range s.Items {
		n += it.Quantity
	}
	return n
}

// Lines returns the cart as order lines.
func (s CartState) Lines() []model.CartLine {
	lines := make([]model.CartLine, 0, len(s.Items))
	for _, it := range s.Items {
		lines = append(lines, model.CartLine{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return lines
}

// CartStore holds the cart and persists every item change under
// storage.KeyCart.
type CartStore struct {
	state *Store[CartState]
	st    storage.Storage
	log   *logger.Logger
}

// NewCartStore loads the persisted cart from st. An unreadable cart is
// logged and replaced by an empty one.
func NewCartStore(st storage.Storage, log *logger.Logger) *CartStore {
	log = log.WithComponent("cart_store")

	ctx, cancel := persistContext()
	defer cancel()
	items, _, err := storage.GetJSON[[]model.CartItem](ctx, st, storage.KeyCart)
	if err != nil {
		log.WithError(err).Warn("discarding unreadable cart", logger.Fields(logger.FieldKey, storage.KeyCart))
		items = nil
	}

	return &CartStore{
		state: New(CartState{Items: items, Total: model.CartTotal(items)}),
		st:    st,
		log:   log,
	}
}

// Get returns the current cart. Items is a copy.
func (c *CartStore) Get() CartState {
	s := c.state.Get()
	s.Items = slices.Clone(s.Items)
	return s
}

func (c *CartStore) Subscribe(fn Listener[CartState]) func() { return c.state.Subscribe(fn) }

// AddItem adds quantity of p, merging with an existing line for the same
// product.
func (c *CartStore) AddItem(p model.Product, quantity int) error {
	return c.mutate(func(items []model.CartItem) []model.CartItem {
		for i, it := range items {
			if it.ProductID == p.ID {
				items[i] = model.NewCartItem(p, it.Quantity+quantity)
				return items
			}
		}
		return append(items, model.NewCartItem(p, quantity))
	})
}

// RemoveItem drops the line for productID.
func (c *CartStore) RemoveItem(productID string) error {
	return c.mutate(func(items []model.CartItem) []model.CartItem {
		out := items[:0]
		for _, it := range items {
			if it.ProductID != productID {
				out = append(out, it)
			}
		}
		return out
	})
}

// UpdateQuantity sets the quantity of the line for productID. Zero and
// negative quantities are stored as given.
func (c *CartStore) UpdateQuantity(productID string, quantity int) error {
	return c.mutate(func(items []model.CartItem) []model.CartItem {
		for i, it := range items {
			if it.ProductID == productID {
				items[i].Quantity = quantity
				items[i].Subtotal = float64(quantity) * it.Product.Price
			}
		}
		return items
	})
}

// Replace swaps in items from the server, merging duplicate products and
// recomputing subtotals.
func (c *CartStore) Replace(items []model.CartItem) error {
	return c.mutate(func([]model.CartItem) []model.CartItem {
		var out []model.CartItem
		for _, in := range items {
			p := in.Product
			if p.ID == "" {
				p.ID = in.ProductID
			}
			merged := false
			for i, it := range out {
				if it.ProductID == p.ID {
					out[i] = model.NewCartItem(p, it.Quantity+in.Quantity)
					merged = true
					break
				}
			}
			if !merged {
				out = append(out, model.NewCartItem(p, in.Quantity))
			}
		}
		return out
	})
}

// ClearCart empties the cart and removes the persisted key.
func (c *CartStore) ClearCart() error {
	var err error
	c.state.Update(func(CartState) CartState {
		ctx, cancel := persistContext()
		defer cancel()
		if rmErr := c.st.Remove(ctx, storage.KeyCart); rmErr != nil {
			c.log.WithError(rmErr).Warn("failed to remove cart", logger.Fields(logger.FieldKey, storage.KeyCart))
			err = fmt.Errorf("clear cart: %w", rmErr)
		}
		return CartState{}
	})
	return err
}

func (c *CartStore) SetLoading(loading bool) {
	c.state.Update(func(s CartState) CartState {
		s.IsLoading = loading
		return s
	})
}

func (c *CartStore) SetError(msg string) {
	c.state.Update(func(s CartState) CartState {
		s.Error = msg
		return s
	})
}

// mutate applies fn to a copy of the items, persists the result and
// publishes it with a recomputed total. A persistence failure is logged
// and returned; the new state is published regardless.
func (c *CartStore) mutate(fn func([]model.CartItem) []model.CartItem) error {
	var err error
	c.state.Update(func(s CartState) CartState {
		items := fn(append([]model.CartItem(nil), s.Items...))

		ctx, cancel := persistContext()
		defer cancel()
		if setErr := storage.SetJSON(ctx, c.st, storage.KeyCart, nonNil(items)); setErr != nil {
			c.log.WithError(setErr).Warn("failed to persist cart", logger.Fields(logger.FieldKey, storage.KeyCart))
			err = fmt.Errorf("persist cart: %w", setErr)
		}

		s.Items = items
		s.Total = model.CartTotal(items)
		return s
	})
	return err
}

// nonNil keeps an empty cart encoded as [] rather than null.
func nonNil(items []model.CartItem) []model.CartItem {
	if items == nil {
		return []model.CartItem{}
	}
	return items
}
