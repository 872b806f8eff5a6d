package domain

import (
	"fmt"
	"strings"
)

// Document is the single persisted state of the system. Every operation
// reads it whole and, if it mutates, writes it back whole.
type Document struct {
	Users       []User       `json:"users"`
	ParkingLots []ParkingLot `json:"parkingLots"`
	Bookings    []Booking    `json:"bookings"`
}

// NewDocument returns an empty document with non-nil collections so the
// persisted JSON always contains the three arrays.
func NewDocument() *Document {
	return &Document{
		Users:       []User{},
		ParkingLots: []ParkingLot{},
		Bookings:    []Booking{},
	}
}

// FindUser returns a pointer into the users collection, or nil.
func (d *Document) FindUser(id string) *User {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return &d.Users[i]
		}
	}
	return nil
}

// FindUserByEmail matches case-insensitively, or returns nil.
func (d *Document) FindUserByEmail(email string) *User {
	for i := range d.Users {
		if strings.EqualFold(d.Users[i].Email, email) {
			return &d.Users[i]
		}
	}
	return nil
}

// FindLot returns a pointer into the parking lots collection, or nil.
func (d *Document) FindLot(id string) *ParkingLot {
	for i := range d.ParkingLots {
		if d.ParkingLots[i].ID == id {
			return &d.ParkingLots[i]
		}
	}
	return nil
}

// FindBooking returns a pointer into the bookings collection, or nil.
func (d *Document) FindBooking(id string) *Booking {
	for i := range d.Bookings {
		if d.Bookings[i].ID == id {
			return &d.Bookings[i]
		}
	}
	return nil
}

// ActiveBookingFor returns the active booking holding (lotID, slotID), or nil.
func (d *Document) ActiveBookingFor(lotID, slotID string) *Booking {
	for i := range d.Bookings {
		b := &d.Bookings[i]
		if b.Status == BookingActive && b.LotID == lotID && b.SlotID == slotID {
			return b
		}
	}
	return nil
}

// HasActiveBookingsForLot reports whether any active booking references the lot.
func (d *Document) HasActiveBookingsForLot(lotID string) bool {
	for i := range d.Bookings {
		if d.Bookings[i].Status == BookingActive && d.Bookings[i].LotID == lotID {
			return true
		}
	}
	return false
}

// CheckInvariants verifies the document's consistency rules:
//   - lot IDs unique system-wide, slot IDs unique within their lot
//   - a slot is occupied iff exactly one active booking references it
//   - every active booking references an existing lot and slot
//
// It returns the first violation found, or nil.
func (d *Document) CheckInvariants() error {
	lotIDs := make(map[string]bool, len(d.ParkingLots))
	for i := range d.ParkingLots {
		lot := &d.ParkingLots[i]
		if lotIDs[lot.ID] {
			return fmt.Errorf("duplicate lot id %q", lot.ID)
		}
		lotIDs[lot.ID] = true

		slotIDs := make(map[string]bool, len(lot.Slots))
		for _, s := range lot.Slots {
			if slotIDs[s.ID] {
				return fmt.Errorf("duplicate slot id %q in lot %q", s.ID, lot.ID)
			}
			slotIDs[s.ID] = true
		}
	}

	active := make(map[string]int)
	for i := range d.Bookings {
		b := &d.Bookings[i]
		if b.Status != BookingActive {
			continue
		}
		lot := d.FindLot(b.LotID)
		if lot == nil {
			return fmt.Errorf("active booking %q references missing lot %q", b.ID, b.LotID)
		}
		if lot.FindSlot(b.SlotID) == nil {
			return fmt.Errorf("active booking %q references missing slot %q in lot %q", b.ID, b.SlotID, b.LotID)
		}
		active[b.LotID+"/"+b.SlotID]++
	}

	for i := range d.ParkingLots {
		lot := &d.ParkingLots[i]
		for _, s := range lot.Slots {
			n := active[lot.ID+"/"+s.ID]
			if n > 1 {
				return fmt.Errorf("slot %q in lot %q has %d active bookings", s.ID, lot.ID, n)
			}
			occupied := !s.IsAvailable
			if occupied && n == 0 {
				return fmt.Errorf("slot %q in lot %q is occupied without an active booking", s.ID, lot.ID)
			}
			if !occupied && n == 1 {
				return fmt.Errorf("slot %q in lot %q is available despite an active booking", s.ID, lot.ID)
			}
		}
	}

	return nil
}
