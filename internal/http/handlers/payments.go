package handlers

import (
	"fmt"
	"net/http"

	"kosbackend/internal/domain/models"
	"kosbackend/internal/utils"

	"github.com/gin-gonic/gin"
)

type paymentRequest struct {
	BookingID int64  `json:"booking_id"`
	Amount    int64  `json:"amount"`
	Period    string `json:"period"`
	DueDate   string `json:"due_date"`
}

// GET /api/payments
func (h *Handler) GetPayments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"payments": h.Store.Payments()})
}

// POST /api/payments
func (h *Handler) CreatePayment(c *gin.Context) {
	var req paymentRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.BookingID <= 0 || req.Amount <= 0 {
		RespondError(c, http.StatusBadRequest, "booking_id dan amount wajib diisi", nil)
		return
	}
	if _, err := utils.ParseDate(req.DueDate); err != nil {
		RespondError(c, http.StatusBadRequest, "due_date tidak valid", err)
		return
	}

	payment, err := h.Store.AddPayment(models.Payment{
		BookingID: req.BookingID,
		Amount:    req.Amount,
		Status:    models.PaymentPending,
		Period:    req.Period,
		DueDate:   req.DueDate,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"payment": payment})
}

// PUT /api/payments/:id
func (h *Handler) UpdatePayment(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	var patch models.PaymentPatch
	if !BindJSONOrError(c, &patch) {
		return
	}
	if err := h.Store.UpdatePayment(id, patch); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pembayaran diperbarui"})
}

type payRequest struct {
	Method string `json:"method"`
}

// POST /api/payments/:id/pay — the user-initiated "mark as paid"
// trigger of the settlement routine.
func (h *Handler) PayPayment(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	// body is optional; an empty POST settles with the default method
	var req payRequest
	if c.Request.ContentLength > 0 {
		if !BindJSONOrError(c, &req) {
			return
		}
	}
	method := req.Method
	if method == "" {
		method = "Manual"
	}

	result, err := h.settlement(c).Settle(id, method)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !result.Settled {
		c.JSON(http.StatusOK, gin.H{"message": "pembayaran sudah lunas", "settled": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "pembayaran diterima",
		"settled":      true,
		"new_end_date": result.NewEndDate,
		"next_payment": result.NextPayment,
	})
}

// GET /api/payments/:id/receipt
func (h *Handler) GetPaymentReceipt(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	pdf, filename, err := h.receipt(c).Generate(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
