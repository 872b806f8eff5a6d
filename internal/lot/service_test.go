package lot

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkspot-backend/internal/domain"
	"parkspot-backend/internal/store"
)

func newTestService(t *testing.T) (Service, store.Store) {
	t.Helper()
	st, err := store.NewFileStore(filepath.Join(t.TempDir(), "parking.json"))
	require.NoError(t, err)

	svc := NewService(st).(*service)
	var seq int
	svc.newLotID = func() string {
		seq++
		return fmt.Sprintf("lot_test_%d", seq)
	}
	return svc, st
}

func ptr(s string) *string { return &s }

func TestCreateLotGeneratesSlots(t *testing.T) {
	svc, _ := newTestService(t)

	l, err := svc.Create(context.Background(), "Central", "Downtown", 3)
	require.NoError(t, err)

	require.Len(t, l.Slots, 3)
	for i, s := range l.Slots {
		assert.Equal(t, fmt.Sprintf("S%d", i+1), s.Name)
		assert.Equal(t, fmt.Sprintf("slot_%s_%d", l.ID, i+1), s.ID)
		assert.True(t, s.IsAvailable)
	}
}

func TestCreateLotIDsAreUnique(t *testing.T) {
	st, err := store.NewFileStore(filepath.Join(t.TempDir(), "parking.json"))
	require.NoError(t, err)
	svc := NewService(st)
	ctx := context.Background()

	// Back-to-back creates land in the same millisecond; the IDs must
	// still differ.
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		l, err := svc.Create(ctx, "Central", "Downtown", 1)
		require.NoError(t, err)
		assert.False(t, seen[l.ID], "duplicate lot id %q", l.ID)
		seen[l.ID] = true
	}
}

func TestCreateLotValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "", "Downtown", 3)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, "Central", "  ", 3)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, "Central", "Downtown", 0)
	assert.ErrorIs(t, err, ErrInvalidSlotCount)

	_, err = svc.Create(ctx, "Central", "Downtown", MaxSlotsPerLot+1)
	assert.ErrorIs(t, err, ErrInvalidSlotCount)
}

func TestUpdateLotPatchSemantics(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	l, err := svc.Create(ctx, "Central", "Downtown", 1)
	require.NoError(t, err)

	// Only the provided field changes.
	updated, err := svc.Update(ctx, l.ID, Patch{Name: ptr("Central Garage")})
	require.NoError(t, err)
	assert.Equal(t, "Central Garage", updated.Name)
	assert.Equal(t, "Downtown", updated.Location)

	updated, err = svc.Update(ctx, l.ID, Patch{Location: ptr("Uptown")})
	require.NoError(t, err)
	assert.Equal(t, "Central Garage", updated.Name)
	assert.Equal(t, "Uptown", updated.Location)

	_, err = svc.Update(ctx, "missing", Patch{Name: ptr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteLotRejectedWithActiveBookings(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	l, err := svc.Create(ctx, "Central", "Downtown", 1)
	require.NoError(t, err)
	slotID := l.Slots[0].ID

	// An active booking holds the only slot.
	require.NoError(t, st.Update(ctx, func(doc *domain.Document) error {
		lot := doc.FindLot(l.ID)
		lot.FindSlot(slotID).IsAvailable = false
		doc.Bookings = append(doc.Bookings, domain.Booking{
			ID: "B1", UserID: "U1", LotID: l.ID, SlotID: slotID, Status: domain.BookingActive,
		})
		return nil
	}))

	err = svc.Delete(ctx, l.ID)
	assert.ErrorIs(t, err, ErrLotHasBookings)

	_, err = svc.DeleteSlot(ctx, l.ID, slotID)
	assert.ErrorIs(t, err, ErrSlotHasBooking)

	// Once the booking is no longer active, both deletions go through.
	require.NoError(t, st.Update(ctx, func(doc *domain.Document) error {
		doc.FindBooking("B1").Status = domain.BookingCancelled
		doc.FindLot(l.ID).FindSlot(slotID).IsAvailable = true
		return nil
	}))

	_, err = svc.DeleteSlot(ctx, l.ID, slotID)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, l.ID))

	err = svc.Delete(ctx, l.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddSlot(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	l, err := svc.Create(ctx, "Central", "Downtown", 1)
	require.NoError(t, err)

	slots, err := svc.AddSlot(ctx, l.ID, "extra", "Extra slot")
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.True(t, slots[1].IsAvailable)

	_, err = svc.AddSlot(ctx, l.ID, "extra", "")
	assert.ErrorIs(t, err, ErrSlotExists)

	_, err = svc.AddSlot(ctx, l.ID, "  ", "")
	assert.ErrorIs(t, err, ErrSlotIDRequired)

	_, err = svc.AddSlot(ctx, "missing", "s", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateSlotRenamesOnly(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	l, err := svc.Create(ctx, "Central", "Downtown", 1)
	require.NoError(t, err)
	slotID := l.Slots[0].ID

	s, err := svc.UpdateSlot(ctx, l.ID, slotID, SlotPatch{Name: ptr("Reserved A")})
	require.NoError(t, err)
	assert.Equal(t, "Reserved A", s.Name)
	assert.True(t, s.IsAvailable)

	_, err = svc.UpdateSlot(ctx, l.ID, "missing", SlotPatch{})
	assert.ErrorIs(t, err, ErrSlotNotFound)

	// Renaming never touches availability state.
	require.NoError(t, st.View(ctx, func(doc *domain.Document) error {
		return doc.CheckInvariants()
	}))
}
