package store

import (
	"slices"

	"github.com/kbukum/storefront/model"
)

// OrderPageSize is the listing page size.
const OrderPageSize = 10

// OrderState is the order listing. It is not persisted.
type OrderState struct {
	Orders       []model.Order       `json:"orders"`
	CurrentOrder *model.Order        `json:"currentOrder"`
	IsLoading    bool                `json:"isLoading"`
	Error        string              `json:"error"`
	StatusFilter []model.OrderStatus `json:"statusFilter"`
	CurrentPage  int                 `json:"currentPage"`
	PageSize     int                 `json:"pageSize"`
	TotalOrders  int                 `json:"totalOrders"`
}

// TotalPages returns the page count for TotalOrders, at least 1.
func (s OrderState) TotalPages() int {
	return pages(s.TotalOrders, s.PageSize)
}

// OrderStore holds the order listing and its status filter.
type OrderStore struct {
	state *Store[OrderState]
}

func NewOrderStore() *OrderStore {
	return &OrderStore{state: New(OrderState{CurrentPage: 1, PageSize: OrderPageSize})}
}

func (o *OrderStore) Get() OrderState {
	s := o.state.Get()
	s.Orders = slices.Clone(s.Orders)
	s.StatusFilter = slices.Clone(s.StatusFilter)
	return s
}

func (o *OrderStore) Subscribe(fn Listener[OrderState]) func() { return o.state.Subscribe(fn) }

func (o *OrderStore) SetOrders(orders []model.Order, total int) {
	o.state.Update(func(s OrderState) OrderState {
		s.Orders, s.TotalOrders = slices.Clone(orders), total
		return s
	})
}

func (o *OrderStore) SetCurrentOrder(order *model.Order) {
	o.state.Update(func(s OrderState) OrderState {
		s.CurrentOrder = order
		return s
	})
}

func (o *OrderStore) SetLoading(loading bool) {
	o.state.Update(func(s OrderState) OrderState {
		s.IsLoading = loading
		return s
	})
}

func (o *OrderStore) SetError(msg string) {
	o.state.Update(func(s OrderState) OrderState {
		s.Error = msg
		return s
	})
}

func (o *OrderStore) ClearError() { o.SetError("") }

// SetStatusFilter changes the status filter and returns to page 1.
func (o *OrderStore) SetStatusFilter(statuses []model.OrderStatus) {
	o.state.Update(func(s OrderState) OrderState {
		s.StatusFilter, s.CurrentPage = slices.Clone(statuses), 1
		return s
	})
}

func (o *OrderStore) SetCurrentPage(page int) {
	o.state.Update(func(s OrderState) OrderState {
		s.CurrentPage = page
		return s
	})
}

// Filters returns the active filters.
func (o *OrderStore) Filters() model.OrderFilters {
	return model.OrderFilters{Statuses: slices.Clone(o.state.Get().StatusFilter)}
}
