package handlers

import (
	"encoding/json"
	"net/http"

	"kosbackend/internal/domain/models"
	"kosbackend/internal/gateway"
	"kosbackend/internal/http/middleware"
	"kosbackend/internal/utils"

	"github.com/gin-gonic/gin"
)

type xenditCallback struct {
	ExternalID    string `json:"external_id"`
	Status        string `json:"status"`
	PaymentMethod string `json:"payment_method"`
}

// XenditWebhook receives asynchronous invoice notifications. The
// provider retries anything that is not a 2xx, so every recognizable
// payload is acknowledged even when our own processing fails; errors
// are logged and the provider redelivers.
// POST /api/webhook/xendit
func (h *Handler) XenditWebhook(c *gin.Context) {
	reqID := middleware.GetRequestID(c)

	if h.Env.XenditCallbackToken != "" &&
		c.GetHeader("x-callback-token") != h.Env.XenditCallbackToken {
		RespondError(c, http.StatusForbidden, "Unauthorized callback", nil)
		return
	}

	raw, err := c.GetRawData()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "Internal Server Error", nil)
		return
	}
	var cb xenditCallback
	if err := json.Unmarshal(raw, &cb); err != nil {
		utils.LogEvent(reqID, "webhook", "xendit", "payload tidak bisa diparse: "+err.Error())
		RespondError(c, http.StatusInternalServerError, "Internal Server Error", nil)
		return
	}

	paymentID, ok := gateway.ParseExternalID(cb.ExternalID)
	if !ok {
		// not one of ours; acknowledge so the provider stops retrying
		utils.LogEvent(reqID, "webhook", "xendit", "external_id tidak dikenal: "+cb.ExternalID)
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	switch cb.Status {
	case "PAID":
		method := cb.PaymentMethod
		if method == "" {
			method = "Xendit"
		}
		if _, err := h.settlement(c).Settle(paymentID, method); err != nil {
			utils.LogEvent(reqID, "webhook", "xendit", "settlement gagal: "+err.Error())
			break
		}
		// keep the raw callback for audit
		if err := h.Store.PaymentRepo.AttachCallbackData(paymentID, raw); err != nil {
			utils.LogEvent(reqID, "webhook", "xendit", "simpan callback_data gagal: "+err.Error())
		}
	case "EXPIRED":
		// invoice lapsed; the booking is untouched
		if err := h.Store.PaymentRepo.MarkExpired(paymentID); err != nil {
			utils.LogEvent(reqID, "webhook", "xendit", "mark expired gagal: "+err.Error())
			break
		}
		h.Store.ApplyPaymentStatus(paymentID, models.PaymentExpired)
	default:
		utils.LogEvent(reqID, "webhook", "xendit", "status diabaikan: "+cb.Status)
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
