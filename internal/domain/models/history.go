package models

import "encoding/json"

// History event types.
const (
	EventUserCreated     = "user_created"
	EventUserUpdated     = "user_updated"
	EventUserDeleted     = "user_deleted"
	EventFacilityCreated = "facility_created"
	EventFacilityUpdated = "facility_updated"
	EventFacilityDeleted = "facility_deleted"
	EventRoomCreated     = "room_created"
	EventRoomUpdated     = "room_updated"
	EventRoomDeleted     = "room_deleted"
	EventBookingCreated  = "booking_created"
	EventBookingUpdated  = "booking_updated"
	EventBookingDeleted  = "booking_deleted"
	EventBookingExtended = "booking_extended"
	EventPaymentCreated  = "payment_created"
	EventPaymentUpdated  = "payment_updated"
	EventPaymentReceived = "payment_received"
	EventTenantCheckout  = "tenant_checkout"
)

// HistoryRecord is an append-only audit entry, ordered by id desc for
// display and truncated to the most recent rows.
type HistoryRecord struct {
	ID        int64           `json:"id"`
	EventType string          `json:"event_type"`
	Data      json.RawMessage `json:"data"`
	CreatedAt string          `json:"created_at"`
}
