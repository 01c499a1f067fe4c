package models

import "encoding/json"

// Payment statuses. Exactly one pending payment should exist per active
// booking; settling it creates the next period's pending row.
const (
	PaymentPending   = "pending"
	PaymentPaid      = "paid"
	PaymentCancelled = "cancelled"
	PaymentExpired   = "expired"
)

// Payment is one monthly bill for a booking. Period is a label like
// "Mar 2025"; DueDate/PaidAt are YYYY-MM-DD / RFC3339 strings.
// CallbackData keeps the raw provider webhook payload for audit.
type Payment struct {
	ID           int64           `json:"id"`
	BookingID    int64           `json:"booking_id"`
	Amount       int64           `json:"amount"`
	Status       string          `json:"status"`
	Period       string          `json:"period"`
	DueDate      string          `json:"due_date"`
	PaidAt       string          `json:"paid_at,omitempty"`
	Method       string          `json:"method,omitempty"`
	CallbackData json.RawMessage `json:"callback_data,omitempty"`
}

// PaymentPatch supports partial updates via field presence.
type PaymentPatch struct {
	Status  *string `json:"status"`
	Period  *string `json:"period"`
	DueDate *string `json:"due_date"`
	Method  *string `json:"method"`
}
