package handlers

import (
	"net/http"
	"strconv"

	"kosbackend/internal/domain"
	"kosbackend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// RespondError sends a standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"error":      message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["details"] = err.Error()
	}
	c.JSON(status, payload)
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		RespondError(c, http.StatusBadRequest, err.Error(), nil)
	case domain.IsNotFound(err):
		RespondError(c, http.StatusNotFound, err.Error(), nil)
	case domain.IsAuth(err):
		RespondError(c, http.StatusUnauthorized, err.Error(), nil)
	case domain.IsGateway(err):
		RespondError(c, http.StatusBadGateway, err.Error(), nil)
	case domain.IsConsistency(err):
		RespondError(c, http.StatusInternalServerError, err.Error(), nil)
	default:
		RespondError(c, http.StatusInternalServerError, "terjadi kesalahan", err)
	}
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "body kosong", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "payload tidak valid", err)
		return false
	}
	return true
}

// IDParamOrError parses the :id path segment.
func IDParamOrError(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id tidak valid", nil)
		return 0, false
	}
	return id, true
}
