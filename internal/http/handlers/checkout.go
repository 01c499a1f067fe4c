package handlers

import (
	"fmt"
	"net/http"
	"time"

	"kosbackend/internal/gateway"
	"kosbackend/internal/http/middleware"
	"kosbackend/internal/utils"

	"github.com/gin-gonic/gin"
)

type checkoutRequest struct {
	PaymentID          int64  `json:"paymentId"`
	Amount             int64  `json:"amount"`
	PayerEmail         string `json:"payerEmail"`
	Description        string `json:"description"`
	SuccessRedirectURL string `json:"successRedirectUrl"`
	FailureRedirectURL string `json:"failureRedirectUrl"`
}

// POST /api/checkout — requests a hosted invoice from the payment
// provider for one pending payment.
func (h *Handler) CreateCheckout(c *gin.Context) {
	var req checkoutRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.PaymentID <= 0 || req.Amount <= 0 {
		RespondError(c, http.StatusBadRequest, "paymentId dan amount wajib diisi", nil)
		return
	}

	externalID := gateway.ExternalID(req.PaymentID, time.Now())

	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Payment #%d", req.PaymentID)
	}
	payerEmail := req.PayerEmail
	if payerEmail == "" {
		payerEmail = "guest@example.com"
	}
	successURL := req.SuccessRedirectURL
	if successURL == "" {
		successURL = h.Env.PublicSiteURL + "/bookings?payment=success"
	}
	failureURL := req.FailureRedirectURL
	if failureURL == "" {
		failureURL = h.Env.PublicSiteURL + "/bookings?payment=failed"
	}

	invoice, err := h.Gateway.CreateInvoice(gateway.InvoiceRequest{
		ExternalID:         externalID,
		Amount:             req.Amount,
		Description:        description,
		PayerEmail:         payerEmail,
		SuccessRedirectURL: successURL,
		FailureRedirectURL: failureURL,
		Currency:           "IDR",
	})
	if err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "checkout", "create_invoice", "failed: "+err.Error())
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"invoiceUrl": invoice.InvoiceURL,
		"invoiceId":  invoice.ID,
		"externalId": externalID,
	})
}
