package handlers

import (
	"net/http"

	"kosbackend/internal/domain/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type userRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	UserType string `json:"user_type"`
}

// GET /api/users
func (h *Handler) GetUsers(c *gin.Context) {
	out := []AuthUser{}
	for _, u := range h.Store.Users() {
		out = append(out, authUser(u))
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

// POST /api/users
func (h *Handler) CreateUser(c *gin.Context) {
	var req userRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		RespondError(c, http.StatusBadRequest, "email dan password wajib diisi", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal meng-hash password", err)
		return
	}
	userType := req.UserType
	if userType == "" {
		userType = models.RoleCustomer
	}

	user, err := h.Store.AddUser(models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		FullName: req.FullName,
		Phone:    req.Phone,
		UserType: userType,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": authUser(user)})
}

// PUT /api/users/:id
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	var patch models.UserPatch
	if !BindJSONOrError(c, &patch) {
		return
	}
	if patch.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			RespondError(c, http.StatusInternalServerError, "gagal meng-hash password", err)
			return
		}
		hashed := string(hash)
		patch.Password = &hashed
	}
	if err := h.Store.UpdateUser(id, patch); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user diperbarui"})
}

// DELETE /api/users/:id
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	if err := h.Store.DeleteUser(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user dihapus"})
}
