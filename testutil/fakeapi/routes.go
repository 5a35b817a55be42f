package fakeapi

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/kbukum/storefront/errors"
	"github.com/kbukum/storefront/model"
	"github.com/kbukum/storefront/validation"
)

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.record(), requestID())

	api := r.Group("/api")
	api.POST("/auth/register", s.register)
	api.POST("/auth/login", s.login)

	public := api.Group("/public")
	public.GET("/products", s.listProducts)
	public.GET("/products/search", s.searchProducts)
	public.GET("/products/:id", s.getProduct)

	public.GET("/categories", s.listCategories)
	public.POST("/categories", s.createCategory)
	public.PUT("/categories/:id", s.updateCategory)
	public.DELETE("/categories/:id", s.deleteCategory)

	authed := public.Group("", requireAuth())
	authed.GET("/orders", s.listOrders)
	authed.GET("/orders/:id", s.getOrder)
	authed.POST("/orders", s.createOrder)
	authed.PUT("/orders/:id/cancel", s.cancelOrder)

	authed.GET("/cart", s.getCart)
	authed.POST("/cart/items", s.addCartItem)
	authed.PUT("/cart/items/:id", s.updateCartItem)
	authed.DELETE("/cart/items/:id", s.removeCartItem)
	authed.DELETE("/cart", s.clearCart)
	return r
}

// --- auth ---

func (s *Server) register(c *gin.Context) {
	var creds model.Credentials
	if !bindValid(c, &creds) {
		return
	}
	s.mu.Lock()
	if _, exists := s.accounts[creds.Email]; exists {
		s.mu.Unlock()
		abort(c, apperrors.New(apperrors.ErrCodeConflict, "Email already registered", http.StatusConflict))
		return
	}
	u := s.addAccountLocked(creds.Email, creds.Password)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, s.authResponse(u))
}

func (s *Server) login(c *gin.Context) {
	var creds model.Credentials
	if !bindValid(c, &creds) {
		return
	}
	s.mu.Lock()
	acc, ok := s.accounts[creds.Email]
	s.mu.Unlock()
	if !ok || acc.password != creds.Password {
		abort(c, apperrors.Unauthorized("Invalid credentials"))
		return
	}
	c.JSON(http.StatusOK, s.authResponse(acc.user))
}

func (s *Server) authResponse(u model.User) model.AuthResponse {
	return model.AuthResponse{
		User:      u,
		Token:     s.IssueToken(u.ID, u.Email, s.TokenTTL),
		ExpiresIn: int64(s.TokenTTL.Seconds()),
	}
}

// --- products ---

func (s *Server) listProducts(c *gin.Context) {
	page, limit := paging(c, 12)
	search := strings.ToLower(c.Query("search"))
	categories := splitList(c.Query("categories"))

	s.mu.Lock()
	var matched []model.Product
	for _, p := range s.products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name+" "+p.Description), search) {
			continue
		}
		if len(categories) > 0 && !contains(categories, p.CategoryID) {
			continue
		}
		matched = append(matched, p)
	}
	s.mu.Unlock()

	c.JSON(http.StatusOK, model.ProductListResponse{
		Products: pageOf(matched, page, limit),
		Total:    len(matched),
		Page:     page,
		Limit:    limit,
	})
}

func (s *Server) searchProducts(c *gin.Context) {
	q := strings.ToLower(strings.TrimSpace(c.Query("q")))
	s.mu.Lock()
	out := []model.Product{}
	for _, p := range s.products {
		if q == "" || strings.Contains(strings.ToLower(p.Name+" "+p.Description), q) {
			out = append(out, p)
		}
	}
	s.mu.Unlock()
	c.JSON(http.StatusOK, out)
}

func (s *Server) getProduct(c *gin.Context) {
	s.mu.Lock()
	p, ok := s.productLocked(c.Param("id"))
	s.mu.Unlock()
	if !ok {
		abort(c, apperrors.New(apperrors.ErrCodeNotFound, "Product not found", http.StatusNotFound))
		return
	}
	c.JSON(http.StatusOK, p)
}

// --- categories ---

func (s *Server) listCategories(c *gin.Context) {
	s.mu.Lock()
	out := append([]model.Category{}, s.categories...)
	s.mu.Unlock()
	c.JSON(http.StatusOK, out)
}

func (s *Server) createCategory(c *gin.Context) {
	var in model.CategoryInput
	if !bindValid(c, &in) {
		return
	}
	c.JSON(http.StatusCreated, s.SeedCategory(in.Name))
}

func (s *Server) updateCategory(c *gin.Context) {
	var in model.CategoryInput
	if !bindValid(c, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cat := range s.categories {
		if cat.ID == c.Param("id") {
			s.categories[i].Name = in.Name
			s.categories[i].UpdatedAt = s.stamp()
			c.JSON(http.StatusOK, s.categories[i])
			return
		}
	}
	abort(c, apperrors.New(apperrors.ErrCodeNotFound, "Category not found", http.StatusNotFound))
}

func (s *Server) deleteCategory(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cat := range s.categories {
		if cat.ID == c.Param("id") {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			noContent(c)
			return
		}
	}
	abort(c, apperrors.New(apperrors.ErrCodeNotFound, "Category not found", http.StatusNotFound))
}

// --- orders ---

func (s *Server) listOrders(c *gin.Context) {
	page, limit := paging(c, 10)
	statuses := splitList(c.Query("statuses"))

	s.mu.Lock()
	var matched []model.Order
	for _, o := range s.orders[c.GetString(ctxUserID)] {
		if len(statuses) > 0 && !contains(statuses, string(o.Status)) {
			continue
		}
		matched = append(matched, o)
	}
	s.mu.Unlock()

	sort.SliceStable(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt.Time) })
	c.JSON(http.StatusOK, model.OrderListResponse{
		Orders: pageOf(matched, page, limit),
		Total:  len(matched),
		Page:   page,
		Limit:  limit,
	})
}

func (s *Server) getOrder(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o := s.orderLocked(c.GetString(ctxUserID), c.Param("id")); o != nil {
		c.JSON(http.StatusOK, *o)
		return
	}
	abort(c, apperrors.New(apperrors.ErrCodeNotFound, "Order not found", http.StatusNotFound))
}

func (s *Server) createOrder(c *gin.Context) {
	var req model.CreateOrderRequest
	if !bindValid(c, &req) {
		return
	}
	userID := c.GetString(ctxUserID)

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.stamp()
	order := model.Order{ID: uuid.NewString(), UserID: userID, Status: model.OrderPending, CreatedAt: now, UpdatedAt: now}
	for _, it := range req.Items {
		p, ok := s.productLocked(it.ProductID)
		if !ok {
			fail(c, http.StatusBadRequest, "Unknown product "+it.ProductID)
			return
		}
		if it.Quantity <= 0 {
			fail(c, http.StatusBadRequest, "Quantity must be positive")
			return
		}
		line := model.OrderItem{ProductID: p.ID, Quantity: it.Quantity, Price: p.Price, Subtotal: float64(it.Quantity) * p.Price}
		order.Items = append(order.Items, line)
		order.Total += line.Subtotal
	}
	s.orders[userID] = append(s.orders[userID], order)
	c.JSON(http.StatusCreated, order)
}

func (s *Server) cancelOrder(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.orderLocked(c.GetString(ctxUserID), c.Param("id"))
	if o == nil {
		abort(c, apperrors.New(apperrors.ErrCodeNotFound, "Order not found", http.StatusNotFound))
		return
	}
	if o.Status != model.OrderPending && o.Status != model.OrderConfirmed {
		abort(c, apperrors.New(apperrors.ErrCodeConflict, "Order cannot be cancelled", http.StatusConflict))
		return
	}
	o.Status, o.UpdatedAt = model.OrderCancelled, s.stamp()
	noContent(c)
}

func (s *Server) orderLocked(userID, id string) *model.Order {
	orders := s.orders[userID]
	for i := range orders {
		if orders[i].ID == id {
			return &orders[i]
		}
	}
	return nil
}

// --- cart ---

func (s *Server) getCart(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.respondCartLocked(c, c.GetString(ctxUserID))
}

func (s *Server) addCartItem(c *gin.Context) {
	var line model.CartLine
	if !bindValid(c, &line) {
		return
	}
	if line.Quantity < 1 {
		fail(c, http.StatusBadRequest, "Quantity must be positive")
		return
	}
	userID := c.GetString(ctxUserID)

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.productLocked(line.ProductID)
	if !ok {
		abort(c, apperrors.New(apperrors.ErrCodeNotFound, "Product not found", http.StatusNotFound))
		return
	}
	items := s.carts[userID]
	merged := false
	for i, it := range items {
		if it.ProductID == p.ID {
			items[i] = model.NewCartItem(p, it.Quantity+line.Quantity)
			merged = true
		}
	}
	if !merged {
		items = append(items, model.NewCartItem(p, line.Quantity))
	}
	s.carts[userID] = items
	s.respondCartLocked(c, userID)
}

func (s *Server) updateCartItem(c *gin.Context) {
	var line model.CartLine
	if !bindValid(c, &line) {
		return
	}
	if line.Quantity < 1 {
		fail(c, http.StatusBadRequest, "Quantity must be positive")
		return
	}
	userID := c.GetString(ctxUserID)

	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.carts[userID]
	for i, it := range items {
		if it.ProductID == c.Param("id") {
			items[i] = model.NewCartItem(it.Product, line.Quantity)
			s.respondCartLocked(c, userID)
			return
		}
	}
	abort(c, apperrors.New(apperrors.ErrCodeNotFound, "Cart item not found", http.StatusNotFound))
}

func (s *Server) removeCartItem(c *gin.Context) {
	userID := c.GetString(ctxUserID)
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.carts[userID][:0]
	for _, it := range s.carts[userID] {
		if it.ProductID != c.Param("id") {
			items = append(items, it)
		}
	}
	s.carts[userID] = items
	noContent(c)
}

func (s *Server) clearCart(c *gin.Context) {
	s.mu.Lock()
	delete(s.carts, c.GetString(ctxUserID))
	s.mu.Unlock()
	noContent(c)
}

func (s *Server) respondCartLocked(c *gin.Context, userID string) {
	c.JSON(http.StatusOK, model.CartContents{Items: append([]model.CartItem{}, s.carts[userID]...)})
}

// --- helpers ---

// bindValid decodes the JSON body into v and validates it, answering 400
// on failure.
func bindValid(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := validation.Validate(v); err != nil {
		appErr, _ := apperrors.AsAppError(err)
		abort(c, appErr)
		return false
	}
	return true
}

func paging(c *gin.Context, defaultLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}

func pageOf[T any](items []T, page, limit int) []T {
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := min(start+limit, len(items))
	return items[start:end]
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
