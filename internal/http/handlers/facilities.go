package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type facilityRequest struct {
	Name string `json:"name"`
}

// GET /api/facilities
func (h *Handler) GetFacilities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"facilities": h.Store.Facilities()})
}

// POST /api/facilities
func (h *Handler) CreateFacility(c *gin.Context) {
	var req facilityRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		RespondError(c, http.StatusBadRequest, "nama wajib diisi", nil)
		return
	}
	f, err := h.Store.AddFacility(strings.TrimSpace(req.Name))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"facility": f})
}

// PUT /api/facilities/:id
func (h *Handler) UpdateFacility(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	var req facilityRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		RespondError(c, http.StatusBadRequest, "nama wajib diisi", nil)
		return
	}
	if err := h.Store.UpdateFacility(id, strings.TrimSpace(req.Name)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "fasilitas diperbarui"})
}

// DELETE /api/facilities/:id
func (h *Handler) DeleteFacility(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	if err := h.Store.DeleteFacility(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "fasilitas dihapus"})
}
