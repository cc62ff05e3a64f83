package handler

import (
	"errors"
	"fmt"
	"io"

	"github.com/abrahamlincoln12121461-cpu/texhub/internal/repository"
	"github.com/abrahamlincoln12121461-cpu/texhub/internal/service"
	"github.com/gin-gonic/gin"
)

// AttachmentHandler 记录附件接口
type AttachmentHandler struct {
	svc *service.AttachmentService
}

func NewAttachmentHandler(svc *service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{svc: svc}
}

// Upload POST /api/v1/records/:id/attachments (multipart form, field "file")
func (h *AttachmentHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		BadRequest(c, "file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	att, err := h.svc.Upload(
		c.Request.Context(),
		c.Param("id"),
		header.Filename,
		file,
		header.Size,
		contentType,
		GetUserID(c),
	)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "record not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Created(c, att)
}

// List GET /api/v1/records/:id/attachments
func (h *AttachmentHandler) List(c *gin.Context) {
	atts, err := h.svc.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "record not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"attachments": atts})
}

// Download GET /api/v1/attachments/:id/download
func (h *AttachmentHandler) Download(c *gin.Context) {
	object, att, err := h.svc.Download(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "attachment not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	defer object.Close()

	c.Header("Content-Type", att.MimeType)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, att.FileName))
	io.Copy(c.Writer, object)
}

// Delete DELETE /api/v1/attachments/:id
func (h *AttachmentHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "attachment not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}
