package engine

import (
	"fmt"
	"strings"

	"github.com/sunset-resort/concierge/internal/agent/model"
)

// User-facing texts emitted by the state machine. Slot prompts live with
// their slot specs in slots.go.
const (
	msgClarifyIntent = "I can help you book a room, reschedule an existing reservation, or answer questions about the hotel. What would you like to do?"
	msgDegraded      = "We're having trouble understanding requests right now. Please try again in a moment."
	msgSystemError   = "Sorry, something went wrong. Please try again."

	msgBookingWriteFailed    = "Sorry, we couldn't save your reservation just now. Please re-send your last answer to retry."
	msgRescheduleWriteFailed = "Sorry, we couldn't update your reservation just now. Please re-send your last answer to retry."
	msgReservationNotFound   = "Reservation ID not found. Please check it and enter it again."
	msgStoreLookupFailed     = "We couldn't look up your reservation just now. Please enter the ID again."
)

func bookingConfirmation(id string, r *model.Reservation) string {
	return fmt.Sprintf("Booking confirmed! Reservation ID: %s. %s room for %d guest(s), check-in %s, check-out %s.",
		id, r.RoomType, r.Guests, r.CheckIn, r.CheckOut)
}

func rescheduleConfirmation(id, checkIn, checkOut string) string {
	return fmt.Sprintf("Reservation updated successfully! Reservation ID: %s, new check-in %s, new check-out %s.",
		id, checkIn, checkOut)
}

func invalidDate(slotPrompt string) string {
	return "That doesn't look like a valid date. " + slotPrompt
}

func checkOutNotAfter(checkIn string) string {
	return fmt.Sprintf("Check-out must be after check-in (%s). Please provide a later date (YYYY-MM-DD).", checkIn)
}

func invalidRoomType(options []string) string {
	return "Please choose one of: " + strings.Join(options, ", ") + "."
}

func tooManyGuests(rt model.RoomType) string {
	return fmt.Sprintf("A %s room sleeps up to %d guests. Please enter a smaller number.", rt.Name, rt.Capacity)
}
