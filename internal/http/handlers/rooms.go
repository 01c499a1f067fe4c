package handlers

import (
	"io"
	"net/http"
	"strings"

	"kosbackend/internal/domain/models"
	"kosbackend/internal/http/middleware"
	"kosbackend/internal/utils"

	"github.com/gin-gonic/gin"
)

type roomRequest struct {
	Name        string   `json:"name"`
	Price       int64    `json:"price"`
	Status      string   `json:"status"`
	Image       []string `json:"image"`
	FacilityIDs []int64  `json:"facility_ids"`
}

// GET /api/rooms
func (h *Handler) GetRooms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rooms": h.Store.Rooms()})
}

// POST /api/rooms
func (h *Handler) CreateRoom(c *gin.Context) {
	var req roomRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" || req.Price <= 0 {
		RespondError(c, http.StatusBadRequest, "nama dan harga wajib diisi", nil)
		return
	}
	status := req.Status
	if status == "" {
		status = models.RoomAvailable
	}
	room, err := h.Store.AddRoom(models.Room{
		Name:        strings.TrimSpace(req.Name),
		Price:       req.Price,
		Status:      status,
		Image:       req.Image,
		FacilityIDs: req.FacilityIDs,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"room": room})
}

// PUT /api/rooms/:id
func (h *Handler) UpdateRoom(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	var patch models.RoomPatch
	if !BindJSONOrError(c, &patch) {
		return
	}
	if err := h.Store.UpdateRoom(id, patch); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "kamar diperbarui"})
}

// DELETE /api/rooms/:id
func (h *Handler) DeleteRoom(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	if err := h.Store.DeleteRoom(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "kamar dihapus"})
}

// POST /api/rooms/images (multipart form, field "files")
func (h *Handler) UploadRoomImages(c *gin.Context) {
	if h.Images == nil {
		RespondError(c, http.StatusServiceUnavailable, "storage belum dikonfigurasi", nil)
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "form tidak valid", err)
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		RespondError(c, http.StatusBadRequest, "tidak ada file", nil)
		return
	}

	urls := []string{}
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			RespondError(c, http.StatusBadRequest, "gagal membaca file", err)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			RespondError(c, http.StatusBadRequest, "gagal membaca file", err)
			return
		}
		url, err := h.Images.Upload(fh.Filename, data, fh.Header.Get("Content-Type"))
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		urls = append(urls, url)
	}

	utils.LogEvent(middleware.GetRequestID(c), "rooms", "upload_images", "uploaded="+strings.Join(urls, ","))
	c.JSON(http.StatusOK, gin.H{"urls": urls})
}

type deleteImageRequest struct {
	URL string `json:"url"`
}

// DELETE /api/rooms/images
func (h *Handler) DeleteRoomImage(c *gin.Context) {
	if h.Images == nil {
		RespondError(c, http.StatusServiceUnavailable, "storage belum dikonfigurasi", nil)
		return
	}
	var req deleteImageRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := h.Images.Remove(req.URL); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "gambar dihapus"})
}
