package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	userUC "github.com/khoahotran/user-gateway/internal/application/usecase/user"
)

type UserHandler struct {
	listUsersUseCase  *userUC.ListUsersUseCase
	saveUserUseCase   *userUC.SaveUserUseCase
	deleteUserUseCase *userUC.DeleteUserUseCase
}

func NewUserHandler(
	listUC *userUC.ListUsersUseCase,
	saveUC *userUC.SaveUserUseCase,
	deleteUC *userUC.DeleteUserUseCase,
) *UserHandler {
	return &UserHandler{
		listUsersUseCase:  listUC,
		saveUserUseCase:   saveUC,
		deleteUserUseCase: deleteUC,
	}
}

// ListUsers handles GET /users?fields=id,name. The fields parameter narrows
// the fetched columns; omitting it fetches everything.
func (h *UserHandler) ListUsers(c *gin.Context) {
	var fields []string
	if raw := c.Query("fields"); raw != "" {
		for _, f := range strings.Split(raw, ",") {
			if f = strings.TrimSpace(f); f != "" {
				fields = append(fields, f)
			}
		}
	}

	out, err := h.listUsersUseCase.Execute(c.Request.Context(), userUC.ListUsersInput{Fields: fields})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": ToUserDTOs(out.Users)})
}

// SaveUser handles POST /users. A body with an id updates that user,
// a body without one creates a new user.
func (h *UserHandler) SaveUser(c *gin.Context) {
	var req saveUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	input := userUC.SaveUserInput{
		ID:       req.ID,
		Name:     req.Name,
		Email:    req.Email,
		Title:    req.Title,
		Password: req.Password,
	}

	out, err := h.saveUserUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if out.Created {
		status = http.StatusCreated
	}
	c.JSON(status, ToUserDTO(out.User))
}

// DeleteUser handles DELETE /users/:id. Deleting an id that does not exist
// still succeeds.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'id' is not a valid UUID"})
		return
	}

	out, err := h.deleteUserUseCase.Execute(c.Request.Context(), userUC.DeleteUserInput{ID: id})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": out.Message})
}
