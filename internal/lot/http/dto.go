package http

import (
	"parkspot-backend/internal/domain"
	"parkspot-backend/internal/lot"
)

type SlotResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsAvailable bool   `json:"isAvailable"`
}

type LotResponse struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Location string         `json:"location"`
	Slots    []SlotResponse `json:"slots"`
}

func NewSlotResponse(s domain.Slot) SlotResponse {
	return SlotResponse{ID: s.ID, Name: s.Name, IsAvailable: s.IsAvailable}
}

func NewSlotResponses(slots []domain.Slot) []SlotResponse {
	items := make([]SlotResponse, len(slots))
	for i, s := range slots {
		items[i] = NewSlotResponse(s)
	}
	return items
}

func NewLotResponse(l *domain.ParkingLot) LotResponse {
	return LotResponse{
		ID:       l.ID,
		Name:     l.Name,
		Location: l.Location,
		Slots:    NewSlotResponses(l.Slots),
	}
}

type CreateLotRequest struct {
	Name          string `json:"name" binding:"required"`
	Location      string `json:"location" binding:"required"`
	NumberOfSlots int    `json:"numberOfSlots" binding:"required"`
}

type UpdateLotRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
}

func (r *UpdateLotRequest) ToPatch() lot.Patch {
	return lot.Patch{Name: r.Name, Location: r.Location}
}

type AddSlotRequest struct {
	SlotID string `json:"slotId" binding:"required"`
	Name   string `json:"name"`
}

type UpdateSlotRequest struct {
	Name *string `json:"name"`
}

func (r *UpdateSlotRequest) ToPatch() lot.SlotPatch {
	return lot.SlotPatch{Name: r.Name}
}
