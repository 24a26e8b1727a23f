package domain

import "time"

// Booking records that a master reserved (booked) or shortlisted
// (in_wishlist) a slave for one affiliation. At most one booked row may exist
// per slave across the whole system.
type Booking struct {
	ID            uint      `json:"id"`
	SlaveID       uint      `json:"slaveId"`
	MasterID      uint      `json:"masterId"`
	AffiliationID uint      `json:"affiliationId"`
	BookingType   string    `json:"bookingType"`
	CreateDate    time.Time `json:"createDate"`
}

// BookingEvent is published on booking transitions for the realtime feed.
type BookingEvent struct {
	Kind          string `json:"kind"` // booked, unbooked, wishlisted, unwishlisted
	BookingID     uint   `json:"bookingId"`
	SlaveID       uint   `json:"slaveId"`
	MasterID      uint   `json:"masterId"`
	AffiliationID uint   `json:"affiliationId"`
	ApplicationID uint   `json:"applicationId"`
}

const (
	EventBooked       = "booked"
	EventUnbooked     = "unbooked"
	EventWishlisted   = "wishlisted"
	EventUnwishlisted = "unwishlisted"
)
