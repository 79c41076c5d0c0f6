package handler

import (
	"errors"
	"net/http"

	"lead_scoring/internal/model"
	"lead_scoring/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes account management
type UserHandler struct {
	service service.UserService
}

func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

// ListUsers godoc
// @Summary      List users
// @Tags         Users
// @Produce      json
// @Success      200  {array}   model.User
// @Failure      500  {object}  map[string]string
// @Router       /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		internalError(c, err, "Failed to fetch users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser godoc
// @Summary      Get a user
// @Tags         Users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  model.User
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "Failed to fetch user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateUser godoc
// @Summary      Create a user
// @Description  Hashes the password with bcrypt and assigns a random UUID
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        user  body      model.CreateUserRequest  true  "New account"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  map[string]interface{}
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req model.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	if _, err := h.service.Create(c.Request.Context(), req); err != nil {
		h.writeError(c, err, "Failed to create user")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully"})
}

// UpdateUser godoc
// @Summary      Update a user
// @Description  An empty password keeps the current one
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        id    path      string                   true  "User ID"
// @Param        user  body      model.UpdateUserRequest  true  "Account fields"
// @Success      200   {object}  model.User
// @Failure      400   {object}  map[string]interface{}
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req model.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeError(c, err, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary      Delete a user
// @Description  Leads owned by the user become unassigned
// @Tags         Users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err, "Failed to delete user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func (h *UserHandler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
	case errors.Is(err, service.ErrUserAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"message": "Email already registered"})
	default:
		internalError(c, err, fallback)
	}
}

// RegisterUserRoutes registers account management routes behind the given middlewares
func (h *UserHandler) RegisterUserRoutes(rg *gin.RouterGroup, mw ...gin.HandlerFunc) {
	users := rg.Group("/users", mw...)
	{
		users.GET("", h.ListUsers)
		users.POST("", h.CreateUser)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
	}
}
