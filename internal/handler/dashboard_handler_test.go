package handler

import (
	"net/http"
	"testing"

	"github.com/abrahamlincoln12121461-cpu/texhub/internal/repository"
	"github.com/abrahamlincoln12121461-cpu/texhub/internal/service"
	"github.com/abrahamlincoln12121461-cpu/texhub/internal/testutil"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func setupDashboardRouter(db *gorm.DB) *gin.Engine {
	repo := repository.NewProductionRecordRepository(db)
	h := NewDashboardHandler(service.NewDashboardService(repo, nil))

	r := testutil.SetupRouter()
	v1 := testutil.AuthGroup(r, "/api/v1")
	v1.GET("/dashboard/summary", h.Summary)
	return r
}

func TestDashboardSummaryInvalidDate(t *testing.T) {
	r := setupDashboardRouter(nil)

	w := testutil.DoRequest(r, "GET", "/api/v1/dashboard/summary?date=10-03-2025", nil, testutil.DefaultTestToken())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestDashboardSummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	token := testutil.DefaultTestToken()

	// Seed one record through the production endpoint so derived fields are real.
	pr := setupProductionRouter(db)
	w := testutil.DoRequest(pr, "POST", "/api/v1/records", knittingCreateBody(), token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d", w.Code)
	}

	r := setupDashboardRouter(db)
	w = testutil.DoRequest(r, "GET", "/api/v1/dashboard/summary?date=2025-03-10", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}

	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["date"].(string) != "2025-03-10" {
		t.Errorf("date = %v", data["date"])
	}
	kinds := data["kinds"].(map[string]interface{})
	knit := kinds["knitting"].(map[string]interface{})
	if knit["records"].(float64) != 1 {
		t.Errorf("knitting records = %v, want 1", knit["records"])
	}
	if knit["total_hours"].(float64) != 8 {
		t.Errorf("knitting total_hours = %v, want 8", knit["total_hours"])
	}
	if knit["avg_efficiency"].(float64) != 92 {
		t.Errorf("knitting avg_efficiency = %v, want 92", knit["avg_efficiency"])
	}

	// Other kinds are present but zeroed.
	dye := kinds["dyeing"].(map[string]interface{})
	if dye["records"].(float64) != 0 {
		t.Errorf("dyeing records = %v, want 0", dye["records"])
	}
}
