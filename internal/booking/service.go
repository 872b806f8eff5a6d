// Package booking implements the reservation engine: the only path by which
// a slot's availability flag and a booking's status change, and they always
// change together inside one store mutator.
package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"parkspot-backend/internal/domain"
	"parkspot-backend/internal/pkg/apperror"
	"parkspot-backend/internal/store"
)

var (
	ErrNotFound         = apperror.New(apperror.KindNotFound, "booking not found")
	ErrLotNotFound      = apperror.New(apperror.KindNotFound, "lot not found")
	ErrSlotNotFound     = apperror.New(apperror.KindNotFound, "slot not found")
	ErrSlotUnavailable  = apperror.New(apperror.KindConflict, "slot not available")
	ErrMissingDetails   = apperror.New(apperror.KindInvalidInput, "missing booking details")
	ErrNotActive        = apperror.New(apperror.KindInvalidState, "booking already cancelled or completed")
	ErrPermissionDenied = apperror.New(apperror.KindForbidden, "permission denied")
)

// ReserveRequest carries the fields of a reservation attempt.
type ReserveRequest struct {
	UserID string
	LotID  string
	SlotID string
	Date   string
	Time   string
}

// Service governs the booking lifecycle. Each (lot, slot) pair is either
// Free (no active booking, slot available) or Reserved (exactly one active
// booking, slot occupied); Reserve and Cancel are the transitions.
type Service interface {
	// Reserve transitions (lot, slot) from Free to Reserved. It fails with
	// a conflict if another booking already holds the slot; because it runs
	// inside the store's exclusive section, concurrent attempts on the same
	// slot serialize and at most one succeeds.
	Reserve(ctx context.Context, req ReserveRequest) (*domain.Booking, error)

	// Cancel transitions Reserved back to Free. Only the booking's owner or
	// an admin may cancel; cancelling a non-active booking is rejected.
	Cancel(ctx context.Context, bookingID, actorID string, isAdmin bool) (*domain.Booking, error)

	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
}

type service struct {
	store store.Store

	now func() time.Time
}

// NewService creates a new reservation Service.
func NewService(st store.Store) Service {
	return &service{
		store: st,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Reserve(ctx context.Context, req ReserveRequest) (*domain.Booking, error) {
	if req.UserID == "" || req.LotID == "" || req.SlotID == "" || req.Date == "" || req.Time == "" {
		return nil, ErrMissingDetails
	}

	b := domain.Booking{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		LotID:     req.LotID,
		SlotID:    req.SlotID,
		Date:      req.Date,
		Time:      req.Time,
		Status:    domain.BookingActive,
		CreatedAt: s.now().Format(time.RFC3339),
	}

	err := s.store.Update(ctx, func(doc *domain.Document) error {
		lot := doc.FindLot(req.LotID)
		if lot == nil {
			return ErrLotNotFound
		}
		slot := lot.FindSlot(req.SlotID)
		if slot == nil {
			return ErrSlotNotFound
		}
		if !slot.IsAvailable {
			return ErrSlotUnavailable
		}

		// Both sides of the transition, or neither.
		slot.IsAvailable = false
		doc.Bookings = append(doc.Bookings, b)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &b, nil
}

func (s *service) Cancel(ctx context.Context, bookingID, actorID string, isAdmin bool) (*domain.Booking, error) {
	var cancelled domain.Booking
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		b := doc.FindBooking(bookingID)
		if b == nil {
			return ErrNotFound
		}
		if b.Status != domain.BookingActive {
			return ErrNotActive
		}
		if !isAdmin && b.UserID != actorID {
			return ErrPermissionDenied
		}

		b.Status = domain.BookingCancelled
		reopenSlot(doc, b)
		cancelled = *b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &cancelled, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var b *domain.Booking
	err := s.store.View(ctx, func(doc *domain.Document) error {
		if found := doc.FindBooking(id); found != nil {
			copied := *found
			b = &copied
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := s.store.View(ctx, func(doc *domain.Document) error {
		for _, b := range doc.Bookings {
			if b.UserID == userID {
				bookings = append(bookings, b)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *service) ListAll(ctx context.Context) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := s.store.View(ctx, func(doc *domain.Document) error {
		bookings = append([]domain.Booking(nil), doc.Bookings...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// reopenSlot flips the booking's slot back to available. The lot or slot
// may legitimately be gone when the booking is no longer active; for active
// bookings the registry's deletion guards make both lookups succeed.
func reopenSlot(doc *domain.Document, b *domain.Booking) {
	if lot := doc.FindLot(b.LotID); lot != nil {
		if slot := lot.FindSlot(b.SlotID); slot != nil {
			slot.IsAvailable = true
		}
	}
}
