package handler

import (
	"net/http"
	"time"

	"pharmapos/internal/apierror"
	"pharmapos/internal/dto"
	"pharmapos/internal/model"
	"pharmapos/internal/seed"
	"pharmapos/internal/store"

	"github.com/gin-gonic/gin"
)

// MedicinesHandler exposes the catalog, stock, and alert operations. All
// writes go through the store so audit logging and persistence stay
// centralized.
type MedicinesHandler struct{ store *store.Store }

func NewMedicinesHandler(s *store.Store) *MedicinesHandler { return &MedicinesHandler{store: s} }

func (h *MedicinesHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Medicines())
}

func (h *MedicinesHandler) Get(c *gin.Context) {
	med, ok := h.store.MedicineByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, apierror.New("Medicine not found"))
		return
	}
	c.JSON(http.StatusOK, med)
}

func (h *MedicinesHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, seed.Categories)
}

func (h *MedicinesHandler) Create(c *gin.Context) {
	var req dto.CreateMedicineRequest
	if !bindAndValidate(c, &req) {
		return
	}
	expiry, err := time.Parse(dto.DateLayout, req.ExpiryDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid expiry date"))
		return
	}
	med := h.store.AddMedicine(model.Medicine{
		Name:       req.Name,
		Category:   req.Category,
		Price:      req.Price,
		StockQty:   req.StockQty,
		ExpiryDate: expiry,
	})
	c.JSON(http.StatusCreated, med)
}

func (h *MedicinesHandler) Update(c *gin.Context) {
	var req dto.UpdateMedicineRequest
	if !bindAndValidate(c, &req) {
		return
	}
	upd := model.MedicineUpdate{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		StockQty: req.StockQty,
	}
	if req.ExpiryDate != nil {
		expiry, err := time.Parse(dto.DateLayout, *req.ExpiryDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Invalid expiry date"))
			return
		}
		upd.ExpiryDate = &expiry
	}
	h.store.UpdateMedicine(c.Param("id"), upd)
	c.Status(http.StatusNoContent)
}

func (h *MedicinesHandler) UpdateStock(c *gin.Context) {
	var req dto.UpdateStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	h.store.UpdateStock(c.Param("id"), req.StockQty)
	c.Status(http.StatusNoContent)
}

func (h *MedicinesHandler) Delete(c *gin.Context) {
	h.store.DeleteMedicine(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *MedicinesHandler) BulkUpdateStock(c *gin.Context) {
	var req dto.BulkStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	h.store.BulkUpdateStock(req.IDs, req.StockQty)
	c.Status(http.StatusNoContent)
}

func (h *MedicinesHandler) BulkDelete(c *gin.Context) {
	var req dto.BulkDeleteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	h.store.BulkDeleteMedicines(req.IDs)
	c.Status(http.StatusNoContent)
}

// Alerts returns both derived alert sets plus the acknowledged IDs, always
// recomputed from the live catalog — "expired" moves with the wall clock
// even when nothing was mutated.
func (h *MedicinesHandler) Alerts(c *gin.Context) {
	c.JSON(http.StatusOK, dto.AlertsResponse{
		LowStock: h.store.LowStockItems(),
		Expired:  h.store.ExpiredItems(),
		ReadIDs:  h.store.ReadAlertIDs(),
	})
}

func (h *MedicinesHandler) MarkAlertsRead(c *gin.Context) {
	h.store.MarkAllAsRead()
	c.Status(http.StatusNoContent)
}

func (h *MedicinesHandler) MarkAlertsUnread(c *gin.Context) {
	h.store.MarkAllAsUnread()
	c.Status(http.StatusNoContent)
}
