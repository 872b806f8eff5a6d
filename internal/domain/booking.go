package domain

// BookingStatus is the lifecycle state of a booking. A booking never
// returns to active once cancelled or completed.
type BookingStatus string

const (
	BookingActive    BookingStatus = "active"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// Booking binds a user, a slot and a requested date/time.
type Booking struct {
	ID        string        `json:"id"`
	UserID    string        `json:"userId"`
	LotID     string        `json:"lotId"`
	SlotID    string        `json:"slotId"`
	Date      string        `json:"date"`
	Time      string        `json:"time"`
	Status    BookingStatus `json:"status"`
	CreatedAt string        `json:"createdAt"`
}
