package http

import (
	"parkspot-backend/internal/domain"
)

type BookingResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	LotID     string `json:"lotId"`
	SlotID    string `json:"slotId"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

func NewBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		UserID:    b.UserID,
		LotID:     b.LotID,
		SlotID:    b.SlotID,
		Date:      b.Date,
		Time:      b.Time,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
	}
}

func NewBookingResponses(bookings []domain.Booking) []BookingResponse {
	items := make([]BookingResponse, len(bookings))
	for i := range bookings {
		items[i] = NewBookingResponse(&bookings[i])
	}
	return items
}

type CreateBookingRequest struct {
	LotID  string `json:"lotId" binding:"required"`
	SlotID string `json:"slotId" binding:"required"`
	Date   string `json:"date" binding:"required"`
	Time   string `json:"time" binding:"required"`
}
