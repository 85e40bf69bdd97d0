package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/gasline/gasline-backend/pkg/errors"
)

// SlotCapacityInput identifies the vendor slot a booking wants to occupy.
type SlotCapacityInput struct {
	VendorID     uuid.UUID `validate:"required"`
	TimeslotID   int64     `validate:"gt=0"`
	ScheduleDate time.Time `validate:"required"`
}

// SlotDecision is the admission verdict for one booking attempt. A full or
// closed slot is a normal outcome, not an error; Reason explains a denial.
type SlotDecision struct {
	Allowed   bool
	Reason    string
	Remaining int
}

// CheckSlotCapacity decides whether the vendor still accepts an order in the
// given slot on the given date. The vendor must have opened the (weekday,
// slot) cell, and the count of orders already booked into that slot for the
// calendar day must stay under the cell's limit.
func (s *service) CheckSlotCapacity(ctx context.Context, input SlotCapacityInput) (SlotDecision, error) {
	if err := s.validate.Struct(input); err != nil {
		return SlotDecision{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid slot capacity input")
	}

	day := input.ScheduleDate.In(s.location)
	schedule, err := s.repo.FindVendorSchedule(ctx, input.VendorID, day.Weekday(), input.TimeslotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SlotDecision{Reason: "vendor has no schedule for this slot"}, nil
		}
		return SlotDecision{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor schedule")
	}
	if !schedule.IsChecked {
		return SlotDecision{Reason: "vendor is closed for this slot"}, nil
	}
	if schedule.MaxAcceptOrderLimit <= 0 {
		return SlotDecision{Reason: "slot has no capacity configured"}, nil
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.location)
	dayEnd := dayStart.AddDate(0, 0, 1)
	booked, err := s.repo.CountOrdersForSlot(ctx, input.VendorID, input.TimeslotID, dayStart, dayEnd)
	if err != nil {
		return SlotDecision{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count booked orders")
	}

	remaining := schedule.MaxAcceptOrderLimit - int(booked)
	if remaining <= 0 {
		return SlotDecision{Reason: fmt.Sprintf("slot full: %d of %d booked", booked, schedule.MaxAcceptOrderLimit)}, nil
	}
	return SlotDecision{Allowed: true, Remaining: remaining}, nil
}
