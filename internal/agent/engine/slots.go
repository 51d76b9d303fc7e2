package engine

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/sunset-resort/concierge/internal/agent/model"
	logx "github.com/sunset-resort/concierge/pkg/logger"
)

// Slot names, shared between the collection logic and the finalizers.
const (
	SlotCheckIn       = "check_in"
	SlotCheckOut      = "check_out"
	SlotRoomType      = "room_type"
	SlotGuests        = "guests"
	SlotReservationID = "reservation_id"
	SlotNewCheckIn    = "new_check_in"
	SlotNewCheckOut   = "new_check_out"
)

// slotSpec describes one slot in a workflow: its prompt and how to validate
// raw input into a normalized value. validate returns either the value to
// store or a user-facing rejection message; a rejection never advances the
// slot index and never touches collected slots.
type slotSpec struct {
	name     string
	prompt   string
	validate func(ctx context.Context, st *model.ConversationState, input string) (value string, reject string)
}

// bookingSlots returns the booking workflow slots in collection order.
func (e *Engine) bookingSlots() []slotSpec {
	return []slotSpec{
		{
			name:     SlotCheckIn,
			prompt:   "Please provide check-in date (YYYY-MM-DD).",
			validate: validateDate,
		},
		{
			name:   SlotCheckOut,
			prompt: "Please provide check-out date (YYYY-MM-DD).",
			validate: func(ctx context.Context, st *model.ConversationState, input string) (string, string) {
				return validateDateAfter(st.Slots[SlotCheckIn], input)
			},
		},
		{
			name:   SlotRoomType,
			prompt: "Please choose a room type: " + strings.Join(e.hotel.RoomTypeNames(), ", ") + ".",
			validate: func(ctx context.Context, st *model.ConversationState, input string) (string, string) {
				rt, ok := e.hotel.RoomType(input)
				if !ok {
					return "", invalidRoomType(e.hotel.RoomTypeNames())
				}
				return rt.Name, ""
			},
		},
		{
			name:   SlotGuests,
			prompt: "How many guests?",
			validate: func(ctx context.Context, st *model.ConversationState, input string) (string, string) {
				n, err := strconv.Atoi(strings.TrimSpace(input))
				if err != nil || n <= 0 {
					return "", "Please enter a valid number of guests."
				}
				if rt, ok := e.hotel.RoomType(st.Slots[SlotRoomType]); ok && n > rt.Capacity {
					return "", tooManyGuests(rt)
				}
				return strconv.Itoa(n), ""
			},
		},
	}
}

// rescheduleSlots returns the rescheduling workflow slots in collection order.
func (e *Engine) rescheduleSlots() []slotSpec {
	return []slotSpec{
		{
			name:   SlotReservationID,
			prompt: "Please provide your reservation ID.",
			validate: func(ctx context.Context, st *model.ConversationState, input string) (string, string) {
				id := strings.TrimSpace(input)
				if id == "" {
					return "", msgReservationNotFound
				}
				r, err := e.store.Get(ctx, id)
				if err != nil {
					if errors.Is(err, model.ErrReservationNotFound) {
						return "", msgReservationNotFound
					}
					logx.Error().Err(err).Str("reservation_id", id).Msg("reservation lookup failed")
					return "", msgStoreLookupFailed
				}
				if r.Status != model.ReservationActive {
					return "", msgReservationNotFound
				}
				return id, ""
			},
		},
		{
			name:     SlotNewCheckIn,
			prompt:   "Please provide new check-in date (YYYY-MM-DD).",
			validate: validateDate,
		},
		{
			name:   SlotNewCheckOut,
			prompt: "Please provide new check-out date (YYYY-MM-DD).",
			validate: func(ctx context.Context, st *model.ConversationState, input string) (string, string) {
				return validateDateAfter(st.Slots[SlotNewCheckIn], input)
			},
		},
	}
}

// validateDate accepts an ISO calendar date and normalizes it.
func validateDate(ctx context.Context, st *model.ConversationState, input string) (string, string) {
	t, err := time.Parse(model.DateLayout, strings.TrimSpace(input))
	if err != nil {
		return "", invalidDate("Please use YYYY-MM-DD.")
	}
	return t.Format(model.DateLayout), ""
}

// validateDateAfter accepts an ISO date strictly after the already-collected
// lower bound. The bound was validated when its slot was filled and is
// immutable within this workflow instance.
func validateDateAfter(lowerBound, input string) (string, string) {
	t, err := time.Parse(model.DateLayout, strings.TrimSpace(input))
	if err != nil {
		return "", invalidDate("Please use YYYY-MM-DD.")
	}
	in, err := time.Parse(model.DateLayout, lowerBound)
	if err != nil {
		// collected slots only ever hold validated values
		return "", msgSystemError
	}
	if !t.After(in) {
		return "", checkOutNotAfter(lowerBound)
	}
	return t.Format(model.DateLayout), ""
}
