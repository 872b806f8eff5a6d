package lot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"parkspot-backend/internal/domain"
	"parkspot-backend/internal/pkg/apperror"
	"parkspot-backend/internal/store"
)

var (
	ErrNotFound         = apperror.New(apperror.KindNotFound, "lot not found")
	ErrSlotNotFound     = apperror.New(apperror.KindNotFound, "slot not found")
	ErrSlotExists       = apperror.New(apperror.KindConflict, "slot already exists")
	ErrInvalidInput     = apperror.New(apperror.KindInvalidInput, "please provide name, location, and number of slots")
	ErrInvalidSlotCount = apperror.New(apperror.KindInvalidInput, "number of slots must be a positive number up to 500")
	ErrLotHasBookings   = apperror.New(apperror.KindConflict, "lot has active bookings")
	ErrSlotHasBooking   = apperror.New(apperror.KindConflict, "slot has an active booking")
	ErrSlotIDRequired   = apperror.New(apperror.KindInvalidInput, "slot id is required")
)

// MaxSlotsPerLot bounds the initial slot count of a new lot.
const MaxSlotsPerLot = 500

// Patch carries the optional fields of a lot update. Absent fields are
// left unchanged, never reset.
type Patch struct {
	Name     *string
	Location *string
}

// SlotPatch carries the optional fields of a slot update. Availability is
// deliberately absent: it changes only through the reservation engine.
type SlotPatch struct {
	Name *string
}

// Service is the structural registry over lots and their slot sets.
// Deletions are guarded so they can never orphan an active booking.
type Service interface {
	List(ctx context.Context) ([]domain.ParkingLot, error)
	GetByID(ctx context.Context, lotID string) (*domain.ParkingLot, error)
	Slots(ctx context.Context, lotID string) ([]domain.Slot, error)
	Create(ctx context.Context, name, location string, slotCount int) (*domain.ParkingLot, error)
	Update(ctx context.Context, lotID string, patch Patch) (*domain.ParkingLot, error)
	Delete(ctx context.Context, lotID string) error
	AddSlot(ctx context.Context, lotID, slotID, name string) ([]domain.Slot, error)
	UpdateSlot(ctx context.Context, lotID, slotID string, patch SlotPatch) (*domain.Slot, error)
	DeleteSlot(ctx context.Context, lotID, slotID string) ([]domain.Slot, error)
}

type service struct {
	store store.Store

	// newLotID is swappable so tests can create lots with stable IDs.
	newLotID func() string
}

// NewService creates a new registry Service.
func NewService(st store.Store) Service {
	return &service{
		store: st,
		// Timestamp for readability, uuid fragment so two creates in the
		// same millisecond cannot collide.
		newLotID: func() string {
			return fmt.Sprintf("lot_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
		},
	}
}

func (s *service) List(ctx context.Context) ([]domain.ParkingLot, error) {
	var lots []domain.ParkingLot
	err := s.store.View(ctx, func(doc *domain.Document) error {
		lots = cloneLots(doc.ParkingLots)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lots, nil
}

func (s *service) GetByID(ctx context.Context, lotID string) (*domain.ParkingLot, error) {
	var lot *domain.ParkingLot
	err := s.store.View(ctx, func(doc *domain.Document) error {
		if found := doc.FindLot(lotID); found != nil {
			copied := cloneLot(*found)
			lot = &copied
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, ErrNotFound
	}
	return lot, nil
}

func (s *service) Slots(ctx context.Context, lotID string) ([]domain.Slot, error) {
	lot, err := s.GetByID(ctx, lotID)
	if err != nil {
		return nil, err
	}
	return lot.Slots, nil
}

func (s *service) Create(ctx context.Context, name, location string, slotCount int) (*domain.ParkingLot, error) {
	name = strings.TrimSpace(name)
	location = strings.TrimSpace(location)
	if name == "" || location == "" {
		return nil, ErrInvalidInput
	}
	if slotCount < 1 || slotCount > MaxSlotsPerLot {
		return nil, ErrInvalidSlotCount
	}

	lot := domain.ParkingLot{
		ID:       s.newLotID(),
		Name:     name,
		Location: location,
		Slots:    make([]domain.Slot, 0, slotCount),
	}
	for i := 1; i <= slotCount; i++ {
		lot.Slots = append(lot.Slots, domain.Slot{
			ID:          fmt.Sprintf("slot_%s_%d", lot.ID, i),
			Name:        fmt.Sprintf("S%d", i),
			IsAvailable: true,
		})
	}

	err := s.store.Update(ctx, func(doc *domain.Document) error {
		if doc.FindLot(lot.ID) != nil {
			return apperror.New(apperror.KindConflict, "lot already exists")
		}
		doc.ParkingLots = append(doc.ParkingLots, lot)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &lot, nil
}

func (s *service) Update(ctx context.Context, lotID string, patch Patch) (*domain.ParkingLot, error) {
	var updated domain.ParkingLot
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		lot := doc.FindLot(lotID)
		if lot == nil {
			return ErrNotFound
		}
		if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
			lot.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Location != nil && strings.TrimSpace(*patch.Location) != "" {
			lot.Location = strings.TrimSpace(*patch.Location)
		}
		updated = cloneLot(*lot)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *service) Delete(ctx context.Context, lotID string) error {
	return s.store.Update(ctx, func(doc *domain.Document) error {
		idx := -1
		for i := range doc.ParkingLots {
			if doc.ParkingLots[i].ID == lotID {
				idx = i
				break
			}
		}
		if idx == -1 {
			return ErrNotFound
		}
		if doc.HasActiveBookingsForLot(lotID) {
			return ErrLotHasBookings
		}
		doc.ParkingLots = append(doc.ParkingLots[:idx], doc.ParkingLots[idx+1:]...)
		return nil
	})
}

func (s *service) AddSlot(ctx context.Context, lotID, slotID, name string) ([]domain.Slot, error) {
	slotID = strings.TrimSpace(slotID)
	if slotID == "" {
		return nil, ErrSlotIDRequired
	}
	if strings.TrimSpace(name) == "" {
		name = slotID
	}

	var slots []domain.Slot
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		lot := doc.FindLot(lotID)
		if lot == nil {
			return ErrNotFound
		}
		if lot.FindSlot(slotID) != nil {
			return ErrSlotExists
		}
		lot.Slots = append(lot.Slots, domain.Slot{
			ID:          slotID,
			Name:        strings.TrimSpace(name),
			IsAvailable: true,
		})
		slots = append([]domain.Slot(nil), lot.Slots...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (s *service) UpdateSlot(ctx context.Context, lotID, slotID string, patch SlotPatch) (*domain.Slot, error) {
	var updated domain.Slot
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		lot := doc.FindLot(lotID)
		if lot == nil {
			return ErrNotFound
		}
		slot := lot.FindSlot(slotID)
		if slot == nil {
			return ErrSlotNotFound
		}
		if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
			slot.Name = strings.TrimSpace(*patch.Name)
		}
		updated = *slot
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *service) DeleteSlot(ctx context.Context, lotID, slotID string) ([]domain.Slot, error) {
	var slots []domain.Slot
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		lot := doc.FindLot(lotID)
		if lot == nil {
			return ErrNotFound
		}
		idx := -1
		for i := range lot.Slots {
			if lot.Slots[i].ID == slotID {
				idx = i
				break
			}
		}
		if idx == -1 {
			return ErrSlotNotFound
		}
		if doc.ActiveBookingFor(lotID, slotID) != nil {
			return ErrSlotHasBooking
		}
		lot.Slots = append(lot.Slots[:idx], lot.Slots[idx+1:]...)
		slots = append([]domain.Slot(nil), lot.Slots...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func cloneLot(lot domain.ParkingLot) domain.ParkingLot {
	lot.Slots = append([]domain.Slot(nil), lot.Slots...)
	return lot
}

func cloneLots(lots []domain.ParkingLot) []domain.ParkingLot {
	out := make([]domain.ParkingLot, len(lots))
	for i, l := range lots {
		out[i] = cloneLot(l)
	}
	return out
}
