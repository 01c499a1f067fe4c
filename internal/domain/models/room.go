package models

// Room statuses.
const (
	RoomAvailable = "available"
	RoomOccupied  = "occupied"
)

// Room is a rentable unit. Image holds public URLs; FacilityIDs is
// materialized from the room_facilities join table.
type Room struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Price       int64    `json:"price"`
	Status      string   `json:"status"`
	Image       []string `json:"image"`
	FacilityIDs []int64  `json:"facility_ids"`
}

// RoomPatch supports partial updates. FacilityIDs nil means "leave the
// join rows alone"; an empty slice clears them.
type RoomPatch struct {
	Name        *string   `json:"name"`
	Price       *int64    `json:"price"`
	Status      *string   `json:"status"`
	Image       *[]string `json:"image"`
	FacilityIDs *[]int64  `json:"facility_ids"`
}

// Facility is a tag attachable to rooms (AC, WiFi, ...).
type Facility struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// RoomFacility is one join row of the many-to-many link.
type RoomFacility struct {
	RoomID     int64 `json:"room_id"`
	FacilityID int64 `json:"facility_id"`
}
