package handler

import (
	"net/http"

	"pharmapos/internal/dto"
	"pharmapos/internal/model"
	"pharmapos/internal/store"

	"github.com/gin-gonic/gin"
)

type UsersHandler struct{ store *store.Store }

func NewUsersHandler(s *store.Store) *UsersHandler { return &UsersHandler{store: s} }

func (h *UsersHandler) List(c *gin.Context) {
	users := h.store.Users()
	resp := make([]dto.UserResponse, len(users))
	for i, u := range users {
		resp[i] = toUserResponse(u)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UsersHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}
	user := h.store.AddUser(model.User{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
		Email:    req.Email,
	})
	c.JSON(http.StatusCreated, toUserResponse(user))
}

func (h *UsersHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}
	h.store.UpdateUser(c.Param("id"), model.UserUpdate{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
		Email:    req.Email,
	})
	c.Status(http.StatusNoContent)
}

func (h *UsersHandler) Delete(c *gin.Context) {
	h.store.RemoveUser(c.Param("id"))
	c.Status(http.StatusNoContent)
}
