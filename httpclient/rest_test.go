package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/kbukum/storefront/errors"
)

type product struct {
	ID    string  `json:"id"`
	Price float64 `json:"price"`
}

func TestGet_Decodes(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(200, `{"id":"p-1","price":9.5}`))
	defer srv.Close()

	resp := Get[product](context.Background(), newTestClient(t, srv.URL), "/public/products/p-1")
	if !resp.IsSuccess() {
		t.Fatalf("unexpected error %q", resp.Error)
	}
	if resp.Data == nil || resp.Data.ID != "p-1" || resp.Data.Price != 9.5 {
		t.Errorf("unexpected data %+v", resp.Data)
	}
	if resp.Err() != nil {
		t.Errorf("Err() should be nil on success, got %v", resp.Err())
	}
}

func TestGet_DecodeMismatch(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(200, `["not","an","object"]`))
	defer srv.Close()

	resp := Get[product](context.Background(), newTestClient(t, srv.URL), "/x")
	if resp.Status != 0 || !strings.HasPrefix(resp.Error, "invalid response body") {
		t.Errorf("unexpected response %+v", resp)
	}
	if resp.Data != nil {
		t.Error("data must be absent when decoding fails")
	}
}

func TestPost_SendsMethodAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		jsonHandler(201, `{"id":"new","price":1}`)(w, r)
	}))
	defer srv.Close()

	resp := Post[product](context.Background(), newTestClient(t, srv.URL), "/public/categories", map[string]string{"name": "Tea"})
	if resp.Status != 201 || resp.Data.ID != "new" {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestPut_EmptyObjectBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if r.Method != http.MethodPut || string(body) != "{}" {
			t.Errorf("expected PUT {}, got %s %q", r.Method, body)
		}
		w.WriteHeader(204)
	}))
	defer srv.Close()

	resp := Put[Empty](context.Background(), newTestClient(t, srv.URL), "/public/orders/o-1/cancel", struct{}{})
	if !resp.IsSuccess() || resp.Data != nil {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestDelete_ErrorMapsToAppError(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(404, `{"message":"Category not found"}`))
	defer srv.Close()

	resp := Delete[Empty](context.Background(), newTestClient(t, srv.URL), "/public/categories/c-9")
	err := resp.Err()
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != apperrors.ErrCodeNotFound || appErr.Message != "Category not found" {
		t.Errorf("unexpected app error %+v", appErr)
	}
}

func TestCallOptions(t *testing.T) {
	o := buildOptions(http.MethodGet, nil, []CallOption{WithHeader("X-A", "1"), WithTimeout(42)})
	if o.Headers["X-A"] != "1" || o.Timeout != 42 || o.Method != http.MethodGet {
		t.Errorf("unexpected options %+v", o)
	}
}
