package handlers

import (
	"net/http"
	"strings"
	"time"

	"kosbackend/internal/domain"
	"kosbackend/internal/domain/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthUser is the user payload returned after login/register.
type AuthUser struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	UserType string `json:"user_type"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	user, err := h.Store.UserRepo.GetByEmail(req.Email)
	if err != nil {
		if domain.IsNotFound(err) {
			RespondError(c, http.StatusUnauthorized, "Email atau password salah", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		RespondError(c, http.StatusUnauthorized, "Email atau password salah", nil)
		return
	}

	token, err := h.signToken(user)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal membuat token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": authUser(user)})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

// POST /api/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" {
		RespondError(c, http.StatusBadRequest, "email dan password wajib diisi", nil)
		return
	}

	exists, err := h.Store.UserRepo.EmailExists(req.Email)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if exists {
		RespondError(c, http.StatusBadRequest, "email sudah terdaftar", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal meng-hash password", err)
		return
	}

	user, err := h.Store.UserRepo.Create(models.User{
		Name:     req.Name,
		Email:    strings.TrimSpace(req.Email),
		Password: string(hash),
		FullName: req.FullName,
		Phone:    req.Phone,
		UserType: models.RoleCustomer,
	})
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal menyimpan user", err)
		return
	}
	h.Store.ApplyUserAdded(user)

	token, err := h.signToken(user)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal membuat token", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": authUser(user)})
}

func (h *Handler) signToken(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.UserType,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(h.Env.JWTSecret))
}

func authUser(u models.User) AuthUser {
	return AuthUser{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		FullName: u.FullName,
		Phone:    u.Phone,
		UserType: u.UserType,
	}
}
