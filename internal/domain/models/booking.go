package models

// Booking statuses.
const (
	BookingActive    = "active"
	BookingCompleted = "completed"
)

// Booking ties a tenant to a room for a monthly rental period. Dates are
// YYYY-MM-DD strings; EndDate moves forward one month per settled payment.
type Booking struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	RoomID    int64  `json:"room_id"`
	Amount    int64  `json:"amount"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
}

// BookingPatch supports partial updates via field presence.
type BookingPatch struct {
	UserID    *int64  `json:"user_id"`
	RoomID    *int64  `json:"room_id"`
	Amount    *int64  `json:"amount"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Status    *string `json:"status"`
}
