package handlers

import (
	"net/http"

	"kosbackend/internal/domain/models"
	"kosbackend/internal/utils"

	"github.com/gin-gonic/gin"
)

type bookingRequest struct {
	UserID    int64  `json:"user_id"`
	RoomID    int64  `json:"room_id"`
	Amount    int64  `json:"amount"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// GET /api/bookings
func (h *Handler) GetBookings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"bookings": h.Store.Bookings()})
}

// GET /api/bookings/:id/payments
func (h *Handler) GetBookingPayments(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"payments": h.Store.BookingPayments(id),
		"summary":  h.Store.BookingPaymentSummary(id),
	})
}

// POST /api/bookings
func (h *Handler) CreateBooking(c *gin.Context) {
	var req bookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.UserID <= 0 || req.RoomID <= 0 || req.Amount <= 0 {
		RespondError(c, http.StatusBadRequest, "user_id, room_id dan amount wajib diisi", nil)
		return
	}
	if _, err := utils.ParseDate(req.StartDate); err != nil {
		RespondError(c, http.StatusBadRequest, "start_date tidak valid", err)
		return
	}
	if _, err := utils.ParseDate(req.EndDate); err != nil {
		RespondError(c, http.StatusBadRequest, "end_date tidak valid", err)
		return
	}

	booking, err := h.Store.AddBooking(models.Booking{
		UserID:    req.UserID,
		RoomID:    req.RoomID,
		Amount:    req.Amount,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    models.BookingActive,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	// a reserved room is no longer available
	if err := h.Store.RoomRepo.UpdateStatus(req.RoomID, models.RoomOccupied); err == nil {
		h.Store.ApplyRoomStatus(req.RoomID, models.RoomOccupied)
	}

	c.JSON(http.StatusCreated, gin.H{"booking": booking})
}

// PUT /api/bookings/:id
func (h *Handler) UpdateBooking(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	var patch models.BookingPatch
	if !BindJSONOrError(c, &patch) {
		return
	}
	if err := h.Store.UpdateBooking(id, patch); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking diperbarui"})
}

// DELETE /api/bookings/:id
func (h *Handler) DeleteBooking(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	if err := h.Store.DeleteBooking(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking dihapus"})
}

// POST /api/bookings/:id/checkout — tenant move-out.
func (h *Handler) CheckoutBooking(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	if err := h.checkout(c).Checkout(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "checkout berhasil"})
}
