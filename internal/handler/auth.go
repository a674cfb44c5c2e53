package handler

import (
	"net/http"

	"pharmapos/internal/apierror"
	"pharmapos/internal/dto"
	"pharmapos/internal/model"
	"pharmapos/internal/store"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ store *store.Store }

func NewAuthHandler(s *store.Store) *AuthHandler { return &AuthHandler{store: s} }

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	user, err := h.store.Login(req.Username, req.Password, req.Role)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Invalid credentials"))
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{User: toUserResponse(user)})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.store.Logout()
	c.Status(http.StatusNoContent)
}

// Session returns the current session user, or 404 when nobody is logged in.
func (h *AuthHandler) Session(c *gin.Context) {
	user, ok := h.store.SessionUser()
	if !ok {
		c.JSON(http.StatusNotFound, apierror.New("No active session"))
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func toUserResponse(u model.User) dto.UserResponse {
	return dto.UserResponse{ID: u.ID, Username: u.Username, Role: u.Role, Email: u.Email}
}
