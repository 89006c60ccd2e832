package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/contractor-form/internal/http/middleware"
	"github.com/nurpe/contractor-form/internal/model"
	"github.com/nurpe/contractor-form/internal/repository"
	"github.com/nurpe/contractor-form/internal/service"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType  = "application/pdf"
)

type Handler struct {
	contractors *service.ContractorService
	log         zerolog.Logger
}

func NewHandler(contractors *service.ContractorService, log zerolog.Logger) *Handler {
	return &Handler{contractors: contractors, log: log}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.GET("/healthz", h.health)

	protected := router.Group("/")
	protected.Use(authMiddleware)
	protected.POST("/Contractor/Save", h.saveContractor)
	protected.GET("/contractors", h.listContractors)
	protected.GET("/contractors/export", h.exportContractors)
	protected.GET("/contractors/:id", h.getContractor)
	protected.GET("/contractors/:id/card", h.contractorCard)
}

type saveContractorRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Type      string `json:"type" binding:"required"`
	IDNumber  string `json:"idNumber" binding:"required"`
	Image     string `json:"image" binding:"required"`
}

type contractorResponse struct {
	ID        uuid.UUID  `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Type      string     `json:"type"`
	IDNumber  string     `json:"idNumber"`
	Image     string     `json:"image"`
	CreatedBy *uuid.UUID `json:"createdBy,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func toResponse(c model.Contractor) contractorResponse {
	return contractorResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Type:      string(c.Type),
		IDNumber:  c.IDNumber,
		Image:     c.Image,
		CreatedBy: c.CreatedBy,
		CreatedAt: c.CreatedAt,
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) saveContractor(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req saveContractorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contractorType, err := model.ParseContractorType(req.Type)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid type"})
		return
	}

	contractor, err := h.contractors.Save(c.Request.Context(), service.SaveContractorInput{
		Data: model.ContractorData{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Type:      contractorType,
			IDNumber:  req.IDNumber,
			Image:     req.Image,
		},
		Principal: principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": contractor.ID})
}

func (h *Handler) getContractor(c *gin.Context) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	contractor, err := h.contractors.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(*contractor))
}

func (h *Handler) listContractors(c *gin.Context) {
	filter, err := parseListFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contractors, err := h.contractors.List(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	items := make([]contractorResponse, 0, len(contractors))
	for _, contractor := range contractors {
		items = append(items, toResponse(contractor))
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) exportContractors(c *gin.Context) {
	filter, err := parseListFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.contractors.ExportRegistry(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, xlsxContentType, result.Content)
}

func (h *Handler) contractorCard(c *gin.Context) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	result, err := h.contractors.RenderCard(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, pdfContentType, result.Content)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseListFilter(c *gin.Context) (repository.ListFilter, error) {
	var filter repository.ListFilter

	if raw := strings.TrimSpace(c.Query("type")); raw != "" {
		t, err := model.ParseContractorType(raw)
		if err != nil {
			return filter, errors.New("invalid type")
		}
		filter.Type = &t
	}

	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return filter, errors.New("invalid limit")
		}
		filter.Limit = limit
	}
	return filter, nil
}
