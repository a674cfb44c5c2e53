package handler

import (
	"net/http"

	"pharmapos/internal/dto"
	"pharmapos/internal/model"
	"pharmapos/internal/store"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct{ store *store.Store }

func NewSettingsHandler(s *store.Store) *SettingsHandler { return &SettingsHandler{store: s} }

func (h *SettingsHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Settings())
}

func (h *SettingsHandler) Update(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	h.store.UpdateSettings(model.SettingsUpdate{
		CurrencySymbol: req.CurrencySymbol,
		ThemeColor:     req.ThemeColor,
		FontFamily:     req.FontFamily,
		PharmacyName:   req.PharmacyName,
	})
	c.JSON(http.StatusOK, h.store.Settings())
}

// AuditHandler exposes the audit trail and the ad hoc logging primitive.
type AuditHandler struct{ store *store.Store }

func NewAuditHandler(s *store.Store) *AuditHandler { return &AuditHandler{store: s} }

func (h *AuditHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.AuditLog())
}

func (h *AuditHandler) Create(c *gin.Context) {
	var req dto.AddAuditLogRequest
	if !bindAndValidate(c, &req) {
		return
	}
	h.store.AddAuditLog(req.Action, req.Details)
	c.Status(http.StatusCreated)
}
