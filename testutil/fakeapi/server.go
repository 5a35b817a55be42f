package fakeapi

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kbukum/storefront/model"
)

// RecordedRequest is one request seen by the server.
type RecordedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   string
}

type account struct {
	user     model.User
	password string
}

// Server is the fake API. All state is guarded by mu.
type Server struct {
	engine *gin.Engine
	http   *httptest.Server

	// TokenTTL is the lifetime of tokens issued by register and login.
	TokenTTL time.Duration

	mu         sync.Mutex
	accounts   map[string]*account // by email
	products   []model.Product
	categories []model.Category
	orders     map[string][]model.Order    // by user id
	carts      map[string][]model.CartItem // by user id
	requests   []RecordedRequest
	delay      time.Duration
	now        func() time.Time
}

// New builds a Server without listening.
func New() *Server {
	gin.SetMode(gin.TestMode)
	s := &Server{
		TokenTTL: time.Hour,
		accounts: make(map[string]*account),
		orders:   make(map[string][]model.Order),
		carts:    make(map[string][]model.CartItem),
		now:      time.Now,
	}
	s.engine = s.routes()
	return s
}

// stamp is the current time as an API timestamp.
func (s *Server) stamp() model.Timestamp {
	return model.NewTimestamp(s.now().UTC())
}

// Start listens on a loopback port and closes the server when t ends.
func Start(t testing.TB) *Server {
	t.Helper()
	s := New()
	s.http = httptest.NewServer(s.engine)
	t.Cleanup(s.http.Close)
	return s
}

// Handler returns the gin engine.
func (s *Server) Handler() http.Handler { return s.engine }

// BaseURL is the API root to configure clients with.
func (s *Server) BaseURL() string { return s.http.URL + "/api" }

// SetDelay makes every response wait d before being written.
func (s *Server) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// Requests returns every request seen so far.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

// LastRequest returns the most recent request.
func (s *Server) LastRequest() (RecordedRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return RecordedRequest{}, false
	}
	return s.requests[len(s.requests)-1], true
}

// SeedCategory adds a category and returns it with its id.
func (s *Server) SeedCategory(name string) model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.stamp()
	c := model.Category{ID: uuid.NewString(), Name: name, CreatedAt: now, UpdatedAt: now}
	s.categories = append(s.categories, c)
	return c
}

// SeedProduct adds p, assigning an id when it has none.
func (s *Server) SeedProduct(p model.Product) model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.stamp()
		p.UpdatedAt = p.CreatedAt
	}
	if c, ok := s.categoryLocked(p.CategoryID); ok {
		p.Category = &c
	}
	s.products = append(s.products, p)
	return p
}

// SeedUser registers an account directly and returns it.
func (s *Server) SeedUser(email, password string) model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addAccountLocked(email, password)
}

// Cart returns the server-side cart of userID.
func (s *Server) Cart(userID string) []model.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.CartItem(nil), s.carts[userID]...)
}

// Orders returns the orders of userID.
func (s *Server) Orders(userID string) []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Order(nil), s.orders[userID]...)
}

func (s *Server) addAccountLocked(email, password string) model.User {
	now := s.stamp()
	u := model.User{ID: uuid.NewString(), Email: email, Name: email, CreatedAt: now, UpdatedAt: now}
	s.accounts[email] = &account{user: u, password: password}
	return u
}

func (s *Server) categoryLocked(id string) (model.Category, bool) {
	for _, c := range s.categories {
		if c.ID == id {
			return c, true
		}
	}
	return model.Category{}, false
}

func (s *Server) productLocked(id string) (model.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}
