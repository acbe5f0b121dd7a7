package controller

import (
	"github.com/gin-gonic/gin"

	"minioj/internal/model"
	"minioj/internal/service"
	"minioj/pkg/utils/response"
)

// UsersController handles user management endpoints.
type UsersController struct {
	contestService *service.ContestService
}

// NewUsersController creates a new UsersController.
func NewUsersController(contestService *service.ContestService) *UsersController {
	return &UsersController{contestService: contestService}
}

// UserRequest defines the create/update payload. An omitted id means
// create.
type UserRequest struct {
	ID   *int   `json:"id"`
	Name string `json:"name" binding:"required"`
}

// Save creates (no id) or replaces (id >= 0) a user.
func (h *UsersController) Save(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request parameters")
		return
	}

	id := -1
	if req.ID != nil {
		id = *req.ID
	}
	user, err := h.contestService.SaveUser(model.User{ID: id, Name: req.Name})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, user)
}

// List returns all users in id order.
func (h *UsersController) List(c *gin.Context) {
	response.OK(c, h.contestService.ListUsers())
}
