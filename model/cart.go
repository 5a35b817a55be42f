package model

// CartItem is one cart line. Items in a cart are unique by ProductID and
// Subtotal is always Quantity × Product.Price.
type CartItem struct {
	ProductID string  `json:"productId" yaml:"productId"`
	Product   Product `json:"product" yaml:"product"`
	Quantity  int     `json:"quantity" yaml:"quantity"`
	Subtotal  float64 `json:"subtotal" yaml:"subtotal"`
}

// NewCartItem builds a line with its subtotal computed.
func NewCartItem(p Product, quantity int) CartItem {
	return CartItem{
		ProductID: p.ID,
		Product:   p,
		Quantity:  quantity,
		Subtotal:  float64(quantity) * p.Price,
	}
}

// CartLine is the body of add-to-cart and update-cart-item calls.
type CartLine struct {
	ProductID string `json:"productId,omitempty" validate:"omitempty,min=1"`
	Quantity  int    `json:"quantity"`
}

// CartContents is the server's view of a cart.
type CartContents struct {
	Items []CartItem `json:"items" yaml:"items"`
}

// CartTotal sums the subtotals of items.
func CartTotal(items []CartItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Subtotal
	}
	return total
}
