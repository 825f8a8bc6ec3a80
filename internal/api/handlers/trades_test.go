package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mvanholst/portfolio-tracker-backend/internal/api/request"
	"github.com/mvanholst/portfolio-tracker-backend/internal/model"
	"github.com/mvanholst/portfolio-tracker-backend/internal/testutil"
)

func TestTradeHandler_Buy(t *testing.T) {
	setupHandler := func(t *testing.T) (*TradeHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		ts := testutil.NewTestTradeService(t, db)
		return NewTradeHandler(ts), db
	}

	t.Run("records buy successfully", func(t *testing.T) {
		handler, db := setupHandler(t)

		testutil.CreateAsset(t, db, "VAS", 100, 0.5)

		req := testutil.NewJSONRequest(t,
			http.MethodPost,
			"/api/asset/VAS/buy",
			request.TradeRequest{Amount: 500},
			map[string]string{"ticker": "VAS"},
		)
		w := httptest.NewRecorder()

		handler.Buy(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response TradeResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if !response.Applied {
			t.Fatalf("Expected applied=true, got reason %q", response.Reason)
		}
		if response.Transaction == nil || response.Transaction.Kind != model.KindBuy {
			t.Errorf("Expected a BUY transaction in the response, got %+v", response.Transaction)
		}
		if response.Transaction.Units != 5 {
			t.Errorf("Expected 5 units, got %v", response.Transaction.Units)
		}
	})

	t.Run("unpriced asset reports applied=false with reason", func(t *testing.T) {
		handler, db := setupHandler(t)

		testutil.NewAsset("NEW").Build(t, db)

		req := testutil.NewJSONRequest(t,
			http.MethodPost,
			"/api/asset/NEW/buy",
			request.TradeRequest{Amount: 500},
			map[string]string{"ticker": "NEW"},
		)
		w := httptest.NewRecorder()

		handler.Buy(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response TradeResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Applied {
			t.Error("Expected applied=false for an unpriced asset")
		}
		if response.Reason == "" {
			t.Error("Expected a reason for the no-op")
		}
		if response.Transaction != nil {
			t.Errorf("Expected no transaction, got %+v", response.Transaction)
		}
	})

	t.Run("returns 404 when ticker is unknown", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := testutil.NewJSONRequest(t,
			http.MethodPost,
			"/api/asset/MISSING/buy",
			request.TradeRequest{Amount: 500},
			map[string]string{"ticker": "MISSING"},
		)
		w := httptest.NewRecorder()

		handler.Buy(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 on non-positive amount", func(t *testing.T) {
		handler, db := setupHandler(t)

		testutil.CreateAsset(t, db, "VGS", 100, 0.5)

		req := testutil.NewJSONRequest(t,
			http.MethodPost,
			"/api/asset/VGS/buy",
			request.TradeRequest{Amount: -1},
			map[string]string{"ticker": "VGS"},
		)
		w := httptest.NewRecorder()

		handler.Buy(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 on invalid JSON", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := testutil.NewRequestWithURLParams(
			http.MethodPost,
			"/api/asset/VAS/buy",
			map[string]string{"ticker": "VAS"},
		)
		w := httptest.NewRecorder()

		handler.Buy(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTradeHandler_Sell(t *testing.T) {
	setupHandler := func(t *testing.T) (*TradeHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		ts := testutil.NewTestTradeService(t, db)
		return NewTradeHandler(ts), db
	}

	t.Run("records sell with realized gains", func(t *testing.T) {
		handler, db := setupHandler(t)

		acquired := time.Now().UTC().AddDate(-2, 0, 0)
		testutil.NewAsset("VAS").
			WithPrice(200).
			WithInvested(1000).
			WithFirstContribution(acquired).
			WithLot(10, 100, acquired).
			Build(t, db)

		req := testutil.NewJSONRequest(t,
			http.MethodPost,
			"/api/asset/VAS/sell",
			request.TradeRequest{Amount: 1000},
			map[string]string{"ticker": "VAS"},
		)
		w := httptest.NewRecorder()

		handler.Sell(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response TradeResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if !response.Applied {
			t.Fatalf("Expected applied=true, got reason %q", response.Reason)
		}
		if response.Transaction.Gain != 500 || response.Transaction.DiscountGain != 250 {
			t.Errorf("Expected gain 500 / discount 250, got %v / %v",
				response.Transaction.Gain, response.Transaction.DiscountGain)
		}
	})

	t.Run("unfillable sell reports applied=false", func(t *testing.T) {
		handler, db := setupHandler(t)

		testutil.NewAsset("VGS").
			WithPrice(100).
			WithLot(1, 100, time.Now().UTC().AddDate(0, -1, 0)).
			Build(t, db)

		req := testutil.NewJSONRequest(t,
			http.MethodPost,
			"/api/asset/VGS/sell",
			request.TradeRequest{Amount: 5000},
			map[string]string{"ticker": "VGS"},
		)
		w := httptest.NewRecorder()

		handler.Sell(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response TradeResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Applied {
			t.Error("Expected applied=false for an unfillable sell")
		}
	})
}
