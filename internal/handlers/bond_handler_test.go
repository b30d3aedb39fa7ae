package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"bondledger/internal/catalog"
	apperrors "bondledger/internal/errors"
	"bondledger/internal/models"
	"bondledger/internal/services"
)

// --- mock services ---

type mockStatsService struct {
	bondStatsFn     func(bondID uint) (*services.BondStats, error)
	platformStatsFn func() (*services.PlatformStats, error)
}

func (m *mockStatsService) BondStats(bondID uint) (*services.BondStats, error) {
	if m.bondStatsFn != nil {
		return m.bondStatsFn(bondID)
	}
	return &services.BondStats{BondID: bondID}, nil
}

func (m *mockStatsService) PlatformStats() (*services.PlatformStats, error) {
	if m.platformStatsFn != nil {
		return m.platformStatsFn()
	}
	return &services.PlatformStats{}, nil
}

type mockYieldService struct {
	calculateFn func(bond models.Bond, investorAddress string) (*services.YieldCalculation, error)
}

func (m *mockYieldService) Calculate(bond models.Bond, investorAddress string) (*services.YieldCalculation, error) {
	if m.calculateFn != nil {
		return m.calculateFn(bond, investorAddress)
	}
	return &services.YieldCalculation{BondID: bond.ID}, nil
}

// --- test helpers ---

func testBond(id uint) models.Bond {
	return models.Bond{
		ID:                id,
		Name:              "Test Treasury Bond",
		Issuer:            "Test Treasury",
		FaceValue:         100000,
		CouponRate:        450,
		IssueDate:         "2025-01-01T00:00:00Z",
		MaturityDate:      "2035-01-01T00:00:00Z",
		MinimumInvestment: 10,
	}
}

func setupBondRouter(handler *BondHandler) *gin.Engine {
	r := gin.New()
	r.GET("/bonds", handler.ListBonds)
	r.GET("/bonds/:id", handler.GetBond)
	r.GET("/bonds/:id/stats", handler.GetBondStats)
	r.GET("/yield/:id", handler.GetYield)
	r.POST("/bonds", handler.CreateBond)
	r.PUT("/bonds/:id", handler.UpdateBond)
	r.DELETE("/bonds/:id", handler.DeleteBond)
	return r
}

func newBondHandler(bonds ...models.Bond) (*BondHandler, *catalog.Catalog) {
	cat := catalog.New()
	for _, b := range bonds {
		cat.Add(b)
	}
	return NewBondHandler(cat, &mockStatsService{}, &mockYieldService{}), cat
}

// --- tests ---

func TestBondHandler_ListBonds(t *testing.T) {
	handler, _ := newBondHandler(testBond(0), testBond(1))
	r := setupBondRouter(handler)

	rec := doRequest(r, "GET", "/bonds", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	bonds := result["bonds"].([]interface{})
	if len(bonds) != 2 {
		t.Errorf("expected 2 bonds, got %d", len(bonds))
	}
}

func TestBondHandler_GetBond(t *testing.T) {
	handler, _ := newBondHandler(testBond(3))
	r := setupBondRouter(handler)

	t.Run("returns the bond", func(t *testing.T) {
		rec := doRequest(r, "GET", "/bonds/3", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["name"] != "Test Treasury Bond" {
			t.Errorf("expected bond name, got %v", result["name"])
		}
	})

	t.Run("returns 404 for unknown bond", func(t *testing.T) {
		rec := doRequest(r, "GET", "/bonds/99", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "BOND_NOT_FOUND")
	})

	t.Run("returns 400 for non-numeric id", func(t *testing.T) {
		rec := doRequest(r, "GET", "/bonds/abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestBondHandler_GetBondStats(t *testing.T) {
	t.Run("returns stats from the service", func(t *testing.T) {
		handler, _ := newBondHandler(testBond(0))
		handler.statsService = &mockStatsService{
			bondStatsFn: func(bondID uint) (*services.BondStats, error) {
				return &services.BondStats{BondID: bondID, TotalInvested: 500, InvestorCount: 2}, nil
			},
		}
		r := setupBondRouter(handler)

		rec := doRequest(r, "GET", "/bonds/0/stats", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["total_invested"] != 500.0 {
			t.Errorf("expected total_invested 500, got %v", result["total_invested"])
		}
	})

	t.Run("propagates bond not found", func(t *testing.T) {
		handler, _ := newBondHandler()
		handler.statsService = &mockStatsService{
			bondStatsFn: func(_ uint) (*services.BondStats, error) {
				return nil, apperrors.ErrBondNotFound
			},
		}
		r := setupBondRouter(handler)

		rec := doRequest(r, "GET", "/bonds/0/stats", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestBondHandler_GetYield(t *testing.T) {
	t.Run("passes the address query through", func(t *testing.T) {
		var gotAddress string
		handler, _ := newBondHandler(testBond(0))
		handler.yieldService = &mockYieldService{
			calculateFn: func(bond models.Bond, investorAddress string) (*services.YieldCalculation, error) {
				gotAddress = investorAddress
				return &services.YieldCalculation{BondID: bond.ID, CouponRate: 4.5}, nil
			},
		}
		r := setupBondRouter(handler)

		rec := doRequest(r, "GET", "/yield/0?address=0xAbC0000000000000000000000000000000000001", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotAddress != "0xAbC0000000000000000000000000000000000001" {
			t.Errorf("address not passed through, got %q", gotAddress)
		}
	})

	t.Run("returns 404 for unknown bond", func(t *testing.T) {
		handler, _ := newBondHandler()
		r := setupBondRouter(handler)

		rec := doRequest(r, "GET", "/yield/5", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestBondHandler_CreateBond(t *testing.T) {
	t.Run("adds a bond to the catalog", func(t *testing.T) {
		handler, cat := newBondHandler()
		r := setupBondRouter(handler)

		rec := doRequest(r, "POST", "/bonds",
			`{"id":5,"name":"New Bond","issuer":"Issuer","face_value":1000,"coupon_rate":300,`+
				`"issue_date":"2025-01-01T00:00:00Z","maturity_date":"2030-01-01T00:00:00Z","minimum_investment":25}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		bond, err := cat.Get(5)
		if err != nil {
			t.Fatalf("bond not in catalog: %v", err)
		}
		if bond.Name != "New Bond" {
			t.Errorf("expected name New Bond, got %q", bond.Name)
		}
	})

	t.Run("returns 400 on missing name", func(t *testing.T) {
		handler, _ := newBondHandler()
		r := setupBondRouter(handler)

		rec := doRequest(r, "POST", "/bonds",
			`{"id":5,"issue_date":"2025-01-01T00:00:00Z","maturity_date":"2030-01-01T00:00:00Z"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on malformed dates", func(t *testing.T) {
		handler, _ := newBondHandler()
		r := setupBondRouter(handler)

		rec := doRequest(r, "POST", "/bonds",
			`{"id":5,"name":"Bad Dates","issue_date":"not-a-date","maturity_date":"2030-01-01T00:00:00Z"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestBondHandler_UpdateBond(t *testing.T) {
	t.Run("applies only the provided fields", func(t *testing.T) {
		handler, cat := newBondHandler(testBond(2))
		r := setupBondRouter(handler)

		rec := doRequest(r, "PUT", "/bonds/2", `{"coupon_rate":500}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		bond, err := cat.Get(2)
		if err != nil {
			t.Fatalf("bond missing: %v", err)
		}
		if bond.CouponRate != 500 {
			t.Errorf("coupon rate = %d, want 500", bond.CouponRate)
		}
		if bond.Name != "Test Treasury Bond" {
			t.Errorf("untouched field changed: %q", bond.Name)
		}
	})

	t.Run("returns 404 for unknown bond", func(t *testing.T) {
		handler, _ := newBondHandler()
		r := setupBondRouter(handler)

		rec := doRequest(r, "PUT", "/bonds/9", `{"coupon_rate":500}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestBondHandler_DeleteBond(t *testing.T) {
	t.Run("removes the bond", func(t *testing.T) {
		handler, cat := newBondHandler(testBond(1))
		r := setupBondRouter(handler)

		rec := doRequest(r, "DELETE", "/bonds/1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if _, err := cat.Get(1); err == nil {
			t.Error("bond still present after delete")
		}
	})

	t.Run("returns 404 for unknown bond", func(t *testing.T) {
		handler, _ := newBondHandler()
		r := setupBondRouter(handler)

		rec := doRequest(r, "DELETE", "/bonds/1", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
