// Package admin holds privileged operations: aggregate statistics and
// booking overrides that waive the ownership check. The admin gate itself
// is enforced upstream by the access boundary middleware.
package admin

import (
	"context"

	"parkspot-backend/internal/booking"
	"parkspot-backend/internal/domain"
	"parkspot-backend/internal/store"
)

// Stats are the dashboard counters, computed from one consistent snapshot.
type Stats struct {
	TotalUsers     int `json:"totalUsers"`
	TotalLots      int `json:"totalLots"`
	TotalBookings  int `json:"totalBookings"`
	ActiveBookings int `json:"activeBookings"`
}

type Service interface {
	DashboardStats(ctx context.Context) (*Stats, error)
	// CancelBooking cancels any user's active booking.
	CancelBooking(ctx context.Context, bookingID string) (*domain.Booking, error)
	// CompleteBooking marks an active booking completed and frees its slot.
	// This is the only path to the completed status; nothing schedules it.
	CompleteBooking(ctx context.Context, bookingID string) (*domain.Booking, error)
}

type service struct {
	store          store.Store
	bookingService booking.Service
}

// NewService creates a new admin Service.
func NewService(st store.Store, bookingService booking.Service) Service {
	return &service{
		store:          st,
		bookingService: bookingService,
	}
}

func (s *service) DashboardStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	err := s.store.View(ctx, func(doc *domain.Document) error {
		stats.TotalUsers = len(doc.Users)
		stats.TotalLots = len(doc.ParkingLots)
		stats.TotalBookings = len(doc.Bookings)
		for _, b := range doc.Bookings {
			if b.Status == domain.BookingActive {
				stats.ActiveBookings++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *service) CancelBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	return s.bookingService.Cancel(ctx, bookingID, "", true)
}

func (s *service) CompleteBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	var completed domain.Booking
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		b := doc.FindBooking(bookingID)
		if b == nil {
			return booking.ErrNotFound
		}
		if b.Status != domain.BookingActive {
			return booking.ErrNotActive
		}

		b.Status = domain.BookingCompleted
		if lot := doc.FindLot(b.LotID); lot != nil {
			if slot := lot.FindSlot(b.SlotID); slot != nil {
				slot.IsAvailable = true
			}
		}
		completed = *b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &completed, nil
}
