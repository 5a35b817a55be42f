package store

import (
	"slices"

	"github.com/kbukum/storefront/model"
)

// ProductPageSize is the listing page size.
const ProductPageSize = 12

// ProductState is the catalog listing. It is not persisted.
type ProductState struct {
	Products           []model.Product `json:"products"`
	CurrentProduct     *model.Product  `json:"currentProduct"`
	IsLoading          bool            `json:"isLoading"`
	Error              string          `json:"error"`
	SearchQuery        string          `json:"searchQuery"`
	SelectedCategories []string        `json:"selectedCategories"`
	CurrentPage        int             `json:"currentPage"`
	PageSize           int             `json:"pageSize"`
	TotalProducts      int             `json:"totalProducts"`
}

// TotalPages returns the page count for TotalProducts, at least 1.
func (s ProductState) TotalPages() int {
	return pages(s.TotalProducts, s.PageSize)
}

// ProductStore holds the product listing and its filters.
type ProductStore struct {
	state *Store[ProductState]
}

func NewProductStore() *ProductStore {
	return &ProductStore{state: New(ProductState{CurrentPage: 1, PageSize: ProductPageSize})}
}

// Get returns the current state. Its slices are copies.
func (p *ProductStore) Get() ProductState {
	s := p.state.Get()
	s.Products = slices.Clone(s.Products)
	s.SelectedCategories = slices.Clone(s.SelectedCategories)
	return s
}

func (p *ProductStore) Subscribe(fn Listener[ProductState]) func() { return p.state.Subscribe(fn) }

// SetProducts stores one page of results and the total match count.
func (p *ProductStore) SetProducts(products []model.Product, total int) {
	p.state.Update(func(s ProductState) ProductState {
		s.Products, s.TotalProducts = slices.Clone(products), total
		return s
	})
}

func (p *ProductStore) SetCurrentProduct(product *model.Product) {
	p.state.Update(func(s ProductState) ProductState {
		s.CurrentProduct = product
		return s
	})
}

func (p *ProductStore) SetLoading(loading bool) {
	p.state.Update(func(s ProductState) ProductState {
		s.IsLoading = loading
		return s
	})
}

func (p *ProductStore) SetError(msg string) {
	p.state.Update(func(s ProductState) ProductState {
		s.Error = msg
		return s
	})
}

func (p *ProductStore) ClearError() { p.SetError("") }

// SetSearchQuery changes the search text and returns to page 1.
func (p *ProductStore) SetSearchQuery(q string) {
	p.state.Update(func(s ProductState) ProductState {
		s.SearchQuery, s.CurrentPage = q, 1
		return s
	})
}

// SetSelectedCategories changes the category filter and returns to page 1.
func (p *ProductStore) SetSelectedCategories(ids []string) {
	p.state.Update(func(s ProductState) ProductState {
		s.SelectedCategories, s.CurrentPage = slices.Clone(ids), 1
		return s
	})
}

func (p *ProductStore) SetCurrentPage(page int) {
	p.state.Update(func(s ProductState) ProductState {
		s.CurrentPage = page
		return s
	})
}

// Filters returns the active filters.
func (p *ProductStore) Filters() model.ProductFilters {
	s := p.state.Get()
	return model.ProductFilters{
		CategoryIDs: slices.Clone(s.SelectedCategories),
		SearchQuery: s.SearchQuery,
	}
}

func pages(total, size int) int {
	if size <= 0 || total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}
