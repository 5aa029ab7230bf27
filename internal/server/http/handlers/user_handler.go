package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/usersvc/internal/server/http/dto"
)

// UserHandler manages user endpoints.
type UserHandler struct {
	facade UserFacade
}

// NewUserHandler constructs UserHandler.
func NewUserHandler(facade UserFacade) *UserHandler {
	return &UserHandler{facade: facade}
}

// Get handles GET /users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.facade.User(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(*user))
}

// List handles GET /users.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.facade.Users(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if len(users) == 0 {
		c.JSON(http.StatusOK, dto.MessageResponse{Message: msgEmptyDatabase})
		return
	}
	c.JSON(http.StatusOK, toUserResponses(users))
}

// Create handles POST /users.
func (h *UserHandler) Create(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "failed to read request body"})
		return
	}

	user, err := h.facade.CreateUser(c.Request.Context(), body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(*user))
}

// Update handles PATCH /users/:id.
func (h *UserHandler) Update(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "failed to read request body"})
		return
	}

	user, err := h.facade.UpdateUser(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "User " + user.Login + " has been updated"})
}

// Delete handles DELETE /users/:id.
func (h *UserHandler) Delete(c *gin.Context) {
	user, err := h.facade.DeleteUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "User " + user.Login + " has been removed"})
}

// ByName handles GET /users/byName/:login?limit=N.
func (h *UserHandler) ByName(c *gin.Context) {
	limit, ok := parseLimit(c.Query("limit"))
	if !ok {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msgInvalidLimit})
		return
	}

	users, err := h.facade.UsersByName(c.Request.Context(), c.Param("login"), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SortedResponse{Sorted: toUserResponses(users)})
}

// parseLimit returns -1 for an absent limit.
func parseLimit(raw string) (int, bool) {
	if raw == "" {
		return -1, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, false
	}
	return limit, true
}
