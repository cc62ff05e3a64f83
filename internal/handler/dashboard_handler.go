package handler

import (
	"time"

	"github.com/abrahamlincoln12121461-cpu/texhub/internal/service"
	"github.com/gin-gonic/gin"
)

// DashboardHandler 生产看板接口
type DashboardHandler struct {
	svc *service.DashboardService
}

func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Summary GET /api/v1/dashboard/summary?date=YYYY-MM-DD
func (h *DashboardHandler) Summary(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		BadRequest(c, "invalid date, expected YYYY-MM-DD")
		return
	}

	summary, err := h.svc.Summary(c.Request.Context(), date)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, summary)
}
