package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RsrRuso/cocktailsop-sub017/internal/costing"
	"github.com/RsrRuso/cocktailsop-sub017/internal/production"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	cache := costing.NewCache(costing.NewCalculator(0, 0), time.Minute)
	costingHandler := costing.NewHandler(cache, 0)

	repo := production.NewInMemoryRepository()
	service := production.NewService(repo, []string{"spillage", "breakage"})
	productionHandler := production.NewHandler(service)

	return New(costingHandler, productionHandler)
}

func TestHealthCheck(t *testing.T) {
	r := setupTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestComputeEndpoint(t *testing.T) {
	r := setupTestRouter()

	payload := map[string]interface{}{
		"ingredients": []map[string]interface{}{
			{"ingredient_name": "Vodka", "qty": 30, "unit": "ml"},
		},
		"inventory": []map[string]interface{}{
			{"id": "1", "name": "Vodka", "unit_cost": 20, "bottle_size_ml": 700},
		},
		"yield_qty":     1,
		"selling_price": 10,
	}

	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/costing/compute", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Summary costing.Summary `json:"summary"`
		Pricing struct {
			FoodCostPercent float64 `json:"food_cost_percent"`
		} `json:"pricing"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if resp.Summary.TotalCost < 0.85 || resp.Summary.TotalCost > 0.86 {
		t.Fatalf("totalCost = %v, want ≈0.857", resp.Summary.TotalCost)
	}
	if resp.Pricing.FoodCostPercent < 8.5 || resp.Pricing.FoodCostPercent > 8.6 {
		t.Fatalf("foodCostPercent = %v, want ≈8.57", resp.Pricing.FoodCostPercent)
	}
}

func TestComputeEndpointRejectsEmptyRecipe(t *testing.T) {
	r := setupTestRouter()

	body, _ := json.Marshal(map[string]interface{}{"ingredients": []interface{}{}})
	req := httptest.NewRequest(http.MethodPost, "/costing/compute", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestBatchSubmitAndList(t *testing.T) {
	r := setupTestRouter()

	payload := map[string]interface{}{
		"sub_recipe_id":        "falernum",
		"quantity_produced_ml": 1500,
		"produced_by_name":     "Ana",
		"losses": []map[string]interface{}{
			{"ingredient_name": "Lime Oleo", "loss_amount_ml": 40, "loss_reason": "spillage"},
		},
	}

	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/batches", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Batch       production.Batch `json:"batch"`
		TotalLossMl float64          `json:"total_loss_ml"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	created := resp.Batch
	if created.ID == "" || created.GroupID == "" {
		t.Fatal("submission should assign IDs")
	}
	if resp.TotalLossMl != 40 {
		t.Fatalf("total_loss_ml = %v, want 40", resp.TotalLossMl)
	}

	// The loss record landed with the same group.
	req = httptest.NewRequest(http.MethodGet, "/losses?group_id="+created.GroupID, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var losses struct {
		Losses []production.LossRecord `json:"losses"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &losses); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if len(losses.Losses) != 1 {
		t.Fatalf("expected 1 loss record, got %d", len(losses.Losses))
	}
	if losses.Losses[0].ID == "" {
		t.Fatal("loss entry should carry the ID assigned at draft time")
	}
}

func TestScaleEndpoint(t *testing.T) {
	r := setupTestRouter()

	payload := map[string]interface{}{
		"scaled_ingredients": []map[string]interface{}{
			{"ingredient_name": "Tequila", "scaled_amount_ml": 2500},
		},
		"spirits": []map[string]interface{}{
			{"id": "1", "name": "Tequila", "bottle_size_ml": 750},
		},
	}

	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/batches/scale", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var plan struct {
		TotalBottles    int     `json:"total_bottles"`
		TotalLeftoverMl float64 `json:"total_leftover_ml"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &plan); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if plan.TotalBottles != 3 || plan.TotalLeftoverMl != 250 {
		t.Fatalf("expected 3 bottles / 250ml leftover, got %+v", plan)
	}
}

func TestBatchGetUnknownID(t *testing.T) {
	r := setupTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/batches/nope", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}
