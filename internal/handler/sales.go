package handler

import (
	"errors"
	"net/http"

	"pharmapos/internal/apierror"
	"pharmapos/internal/dto"
	"pharmapos/internal/model"
	"pharmapos/internal/store"

	"github.com/gin-gonic/gin"
)

type SalesHandler struct{ store *store.Store }

func NewSalesHandler(s *store.Store) *SalesHandler { return &SalesHandler{store: s} }

func (h *SalesHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Sales())
}

func (h *SalesHandler) Create(c *gin.Context) {
	var req dto.ProcessSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	cart := make([]model.CartItem, 0, len(req.Items))
	for _, line := range req.Items {
		cart = append(cart, model.CartItem{
			ID:       line.ID,
			Name:     line.Name,
			Price:    line.Price,
			Quantity: line.Quantity,
		})
	}
	sale, err := h.store.ProcessSale(cart)
	if err != nil {
		if errors.Is(err, store.ErrInsufficientStock) || errors.Is(err, store.ErrUnknownMedicine) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to record sale"))
		return
	}
	c.JSON(http.StatusCreated, sale)
}
