package domain

// Slot is an individually bookable unit inside a lot. It is never persisted
// outside its owning lot's slot collection.
type Slot struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsAvailable bool   `json:"isAvailable"`
}

// ParkingLot is a named physical area with a fixed set of slots.
// Slot IDs are unique within the lot; lot IDs are unique system-wide.
type ParkingLot struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Slots    []Slot `json:"slots"`
}

// FindSlot returns a pointer into the lot's slot collection, or nil.
func (l *ParkingLot) FindSlot(slotID string) *Slot {
	for i := range l.Slots {
		if l.Slots[i].ID == slotID {
			return &l.Slots[i]
		}
	}
	return nil
}
