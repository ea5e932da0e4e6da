package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alcyxob/exercise-tracker/internal/domain"
	"github.com/alcyxob/exercise-tracker/internal/service"
)

// UserHandler holds the user service dependency.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUserRequest accepts JSON or urlencoded bodies.
type CreateUserRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
}

// CreateUserResponse carries only the public fields of a new user.
type CreateUserResponse struct {
	Username string `json:"username"`
	ID       string `json:"id"`
}

// UserListItem is one entry of the user listing.
type UserListItem struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// CreateUser godoc
// @Summary Register a user
// @Tags Users
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param user body CreateUserRequest true "Username"
// @Success 200 {object} CreateUserResponse
// @Failure 200 {object} ErrorResponse "Username already taken"
// @Router /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, operationRegister, msgUsernameTaken, err)
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req.Username)
	if err != nil {
		// Every registration failure reports the same message.
		respondError(c, operationRegister, msgUsernameTaken, err)
		return
	}

	c.JSON(http.StatusOK, CreateUserResponse{Username: user.Username, ID: user.ID.Hex()})
}

// ListUsers godoc
// @Summary List all users
// @Tags Users
// @Produce json
// @Success 200 {array} UserListItem
// @Failure 200 {object} ErrorResponse "Error fetching users"
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, operationListUsers, msgFetchUsers, err)
		return
	}

	c.JSON(http.StatusOK, MapUsersToList(users))
}

// MapUsersToList converts users to listing entries.
func MapUsersToList(users []domain.User) []UserListItem {
	items := make([]UserListItem, len(users))
	for i, u := range users {
		items[i] = UserListItem{ID: u.ID.Hex(), Username: u.Username}
	}
	return items
}
