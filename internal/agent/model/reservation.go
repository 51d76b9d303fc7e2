package model

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DateLayout is the wire and storage format for all reservation dates.
const DateLayout = "2006-01-02"

// ReservationStatus tracks the lifecycle of a record. Reservations are never
// physically deleted; cancellation flips the status.
type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "active"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Reservation is the persisted representation of a completed booking.
// Dates are stored as ISO calendar dates (DateLayout) so records round-trip
// byte-identically through the store.
type Reservation struct {
	ID       string            `json:"id"`
	CheckIn  string            `json:"check_in"`
	CheckOut string            `json:"check_out"`
	RoomType string            `json:"room_type"`
	Guests   int               `json:"guests"`
	Status   ReservationStatus `json:"status"`
}

// Validate enforces the record invariants: parseable dates, check-out strictly
// after check-in, at least one guest, non-empty id and room type.
func (r *Reservation) Validate() error {
	if r.ID == "" {
		return errors.New("reservation id is empty")
	}
	if r.RoomType == "" {
		return errors.New("room type is empty")
	}
	in, err := time.Parse(DateLayout, r.CheckIn)
	if err != nil {
		return fmt.Errorf("check_in %q: %w", r.CheckIn, err)
	}
	out, err := time.Parse(DateLayout, r.CheckOut)
	if err != nil {
		return fmt.Errorf("check_out %q: %w", r.CheckOut, err)
	}
	if !out.After(in) {
		return fmt.Errorf("check_out %s must be after check_in %s", r.CheckOut, r.CheckIn)
	}
	if r.Guests < 1 {
		return fmt.Errorf("guests must be positive, got %d", r.Guests)
	}
	if r.Status != ReservationActive && r.Status != ReservationCancelled {
		return fmt.Errorf("unknown status %q", r.Status)
	}
	return nil
}

// ErrReservationNotFound indicates the requested id has no record in the store.
var ErrReservationNotFound = errors.New("reservation not found")

// ReservationUpdate carries the mutable fields of a rescheduling or
// cancellation; nil fields are left unchanged.
type ReservationUpdate struct {
	CheckIn  *string
	CheckOut *string
	Status   *ReservationStatus
}

// ReservationStore is the durable mapping from reservation id to record.
// Implementations must guarantee that a mutation either fully lands or the
// prior persisted state is preserved, and must flush every mutation before
// returning.
type ReservationStore interface {
	// Get returns the record for id, or ErrReservationNotFound.
	Get(ctx context.Context, id string) (*Reservation, error)

	// Put persists a new record and returns its id. The record must pass
	// Validate and its id must not collide with an existing record.
	Put(ctx context.Context, r *Reservation) (string, error)

	// Update applies the non-nil fields to an existing record, re-validates
	// the result, and persists it. Returns ErrReservationNotFound when the
	// id has no record.
	Update(ctx context.Context, id string, fields ReservationUpdate) error
}
