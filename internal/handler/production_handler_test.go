package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/abrahamlincoln12121461-cpu/texhub/internal/repository"
	"github.com/abrahamlincoln12121461-cpu/texhub/internal/service"
	"github.com/abrahamlincoln12121461-cpu/texhub/internal/testutil"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func setupProductionRouter(db *gorm.DB) *gin.Engine {
	repo := repository.NewProductionRecordRepository(db)
	h := NewProductionHandler(
		service.NewProductionService(repo),
		service.NewExportService(repo),
	)

	r := testutil.SetupRouter()
	v1 := testutil.AuthGroup(r, "/api/v1")
	records := v1.Group("/records")
	{
		records.GET("", h.List)
		records.POST("", h.Create)
		records.GET("/export", h.Export)
		records.GET("/:id", h.Get)
		records.PUT("/:id", h.Update)
		records.DELETE("/:id", h.Delete)
	}
	return r
}

func TestCreateRecordRequiresAuth(t *testing.T) {
	r := setupProductionRouter(nil)

	w := testutil.DoRequest(r, "POST", "/api/v1/records", gin.H{"kind": "knitting"}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	resp := testutil.ParseResponse(w)
	if resp["code"].(float64) != 40100 {
		t.Errorf("code = %v, want 40100", resp["code"])
	}
}

func TestCreateRecordMissingKind(t *testing.T) {
	r := setupProductionRouter(nil)

	w := testutil.DoRequest(r, "POST", "/api/v1/records", gin.H{}, testutil.DefaultTestToken())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

// Validation failures short-circuit before the database, so a nil DB works here.
func TestCreateRecordValidationErrors(t *testing.T) {
	r := setupProductionRouter(nil)

	body := gin.H{
		"kind": "dyeing",
		"date": "2025-03-10",
	}
	w := testutil.DoRequest(r, "POST", "/api/v1/records", body, testutil.DefaultTestToken())
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422, body: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	if resp["code"].(float64) != 42200 {
		t.Errorf("code = %v, want 42200", resp["code"])
	}
	data := resp["data"].(map[string]interface{})
	errs := data["errors"].(map[string]interface{})
	for _, key := range []string{"operator", "supervisor", "color", "dyeType", "batchWeight"} {
		if _, present := errs[key]; !present {
			t.Errorf("missing validation error for %q, got %v", key, errs)
		}
	}
	if _, present := errs["date"]; present {
		t.Error("date was provided and must not be flagged")
	}
}

func knittingCreateBody() gin.H {
	return gin.H{
		"kind":          "knitting",
		"date":          "2025-03-10",
		"shift":         "A",
		"operator":      "Rahim",
		"supervisor":    "Karim",
		"machine_no":    "KM-12",
		"start_time":    "22:00",
		"end_time":      "06:00",
		"quality_grade": "A",
		"knitting": gin.H{
			"fabric_type":       "Single Jersey",
			"yarn_type":         "Cotton 30/1",
			"target_production": 100,
			"actual_production": 92,
		},
	}
}

func TestRecordLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	r := setupProductionRouter(db)
	token := testutil.DefaultTestToken()

	// Create
	w := testutil.DoRequest(r, "POST", "/api/v1/records", knittingCreateBody(), token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body: %s", w.Code, w.Body.String())
	}
	created := testutil.ParseResponse(w)["data"].(map[string]interface{})
	id := created["id"].(string)
	if id == "" {
		t.Fatal("created record has no id")
	}
	if created["total_hours"].(float64) != 8 {
		t.Errorf("total_hours = %v, want 8", created["total_hours"])
	}
	kd := created["knitting_data"].(map[string]interface{})
	if kd["efficiency"].(float64) != 92 {
		t.Errorf("efficiency = %v, want 92", kd["efficiency"])
	}
	if created["created_by"].(string) != "test-user-001" {
		t.Errorf("created_by = %v", created["created_by"])
	}

	// Get
	w = testutil.DoRequest(r, "GET", "/api/v1/records/"+id, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}

	// Update a single field; untouched fields and payload must survive.
	w = testutil.DoRequest(r, "PUT", "/api/v1/records/"+id,
		gin.H{"operator": "Salma"}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body: %s", w.Code, w.Body.String())
	}
	updated := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if updated["operator"].(string) != "Salma" {
		t.Errorf("operator = %v", updated["operator"])
	}
	if updated["knitting_data"].(map[string]interface{})["yarn_type"].(string) != "Cotton 30/1" {
		t.Error("payload lost on partial update")
	}

	// Update that breaks validation is rejected and leaves the record alone.
	w = testutil.DoRequest(r, "PUT", "/api/v1/records/"+id,
		gin.H{"operator": "  "}, token)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid update status = %d, want 422", w.Code)
	}
	w = testutil.DoRequest(r, "GET", "/api/v1/records/"+id, nil, token)
	after := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if after["operator"].(string) != "Salma" {
		t.Errorf("rejected update changed the record: operator = %v", after["operator"])
	}

	// List with filters
	w = testutil.DoRequest(r, "GET", "/api/v1/records?kind=knitting&date_from=2025-03-01", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	listData := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if listData["total"].(float64) != 1 {
		t.Errorf("total = %v, want 1", listData["total"])
	}

	// Delete, then the record is gone.
	w = testutil.DoRequest(r, "DELETE", "/api/v1/records/"+id, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	w = testutil.DoRequest(r, "GET", "/api/v1/records/"+id, nil, token)
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", w.Code)
	}
	w = testutil.DoRequest(r, "DELETE", "/api/v1/records/"+id, nil, token)
	if w.Code != http.StatusNotFound {
		t.Errorf("double delete status = %d, want 404", w.Code)
	}
}

func TestGetRecordNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	r := setupProductionRouter(db)

	w := testutil.DoRequest(r, "GET", "/api/v1/records/no-such-id", nil, testutil.DefaultTestToken())
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	resp := testutil.ParseResponse(w)
	if resp["code"].(float64) != 40400 {
		t.Errorf("code = %v, want 40400", resp["code"])
	}
}

func TestExportRecords(t *testing.T) {
	db := testutil.SetupTestDB(t)
	r := setupProductionRouter(db)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(r, "POST", "/api/v1/records", knittingCreateBody(), token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d", w.Code)
	}

	w = testutil.DoRequest(r, "GET", "/api/v1/records/export?date_from=2025-03-01&date_to=2025-03-31", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("export status = %d, body: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("content type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd == "" {
		t.Error("missing content disposition")
	}
	if w.Body.Len() == 0 {
		t.Error("empty workbook body")
	}
}

func TestListPagination(t *testing.T) {
	db := testutil.SetupTestDB(t)
	r := setupProductionRouter(db)
	token := testutil.DefaultTestToken()

	for i := 0; i < 3; i++ {
		body := knittingCreateBody()
		body["machine_no"] = fmt.Sprintf("KM-%02d", i+1)
		w := testutil.DoRequest(r, "POST", "/api/v1/records", body, token)
		if w.Code != http.StatusCreated {
			t.Fatalf("create %d status = %d", i, w.Code)
		}
	}

	w := testutil.DoRequest(r, "GET", "/api/v1/records?page=2&page_size=2", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["total"].(float64) != 3 {
		t.Errorf("total = %v, want 3", data["total"])
	}
	items := data["items"].([]interface{})
	if len(items) != 1 {
		t.Errorf("page 2 items = %d, want 1", len(items))
	}
}
