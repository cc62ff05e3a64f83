package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/abrahamlincoln12121461-cpu/texhub/internal/draft"
	"github.com/abrahamlincoln12121461-cpu/texhub/internal/repository"
	"github.com/abrahamlincoln12121461-cpu/texhub/internal/service"
	"github.com/gin-gonic/gin"
)

// ProductionHandler 生产记录接口
type ProductionHandler struct {
	svc       *service.ProductionService
	exportSvc *service.ExportService
}

func NewProductionHandler(svc *service.ProductionService, exportSvc *service.ExportService) *ProductionHandler {
	return &ProductionHandler{svc: svc, exportSvc: exportSvc}
}

// Create POST /api/v1/records
func (h *ProductionHandler) Create(c *gin.Context) {
	var req service.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	rec, err := h.svc.Create(c.Request.Context(), req, GetUserID(c))
	if err != nil {
		var ve *draft.ValidationError
		if errors.As(err, &ve) {
			Unprocessable(c, ve.Fields)
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Created(c, rec)
}

// Get GET /api/v1/records/:id
func (h *ProductionHandler) Get(c *gin.Context) {
	rec, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "record not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, rec)
}

// List GET /api/v1/records
func (h *ProductionHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	params := repository.RecordListParams{
		Kind:      c.Query("kind"),
		Shift:     c.Query("shift"),
		MachineNo: c.Query("machine_no"),
		DateFrom:  c.Query("date_from"),
		DateTo:    c.Query("date_to"),
		Keyword:   c.Query("keyword"),
		Page:      page,
		PageSize:  pageSize,
	}

	records, total, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{
		"items":     records,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// Update PUT /api/v1/records/:id
func (h *ProductionHandler) Update(c *gin.Context) {
	var req service.UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	rec, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		var ve *draft.ValidationError
		if errors.As(err, &ve) {
			Unprocessable(c, ve.Fields)
			return
		}
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "record not found")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Success(c, rec)
}

// Delete DELETE /api/v1/records/:id
func (h *ProductionHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "record not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}

// Export GET /api/v1/records/export
func (h *ProductionHandler) Export(c *gin.Context) {
	f, fileName, err := h.exportSvc.Export(
		c.Request.Context(),
		c.Query("kind"),
		c.Query("date_from"),
		c.Query("date_to"),
	)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		InternalError(c, err.Error())
	}
}
