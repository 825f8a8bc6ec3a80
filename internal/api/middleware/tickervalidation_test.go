package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newTickerRequest(ticker string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/asset/"+url.PathEscape(ticker), nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("ticker", ticker)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestValidateTickerMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := ValidateTickerMiddleware(next)

	t.Run("passes valid tickers through", func(t *testing.T) {
		for _, ticker := range []string{"VAS", "VGS.AX", "A200", "X"} {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, newTickerRequest(ticker))

			if w.Code != http.StatusOK {
				t.Errorf("Expected 200 for %q, got %d: %s", ticker, w.Code, w.Body.String())
			}
		}
	})

	t.Run("rejects invalid tickers", func(t *testing.T) {
		for _, ticker := range []string{"vas", "VAS!", "TOOLONGTICKER", "V S"} {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, newTickerRequest(ticker))

			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected 400 for %q, got %d", ticker, w.Code)
			}
		}
	})

	t.Run("rejects missing ticker", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, newTickerRequest(""))

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for empty ticker, got %d", w.Code)
		}
	})
}
