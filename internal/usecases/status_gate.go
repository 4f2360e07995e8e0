package usecases

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"botdash/internal/entities"
)

var ErrInvalidTransition = errors.New("invalid status transition")

// TransitionError names the record and both statuses of a rejected update.
type TransitionError struct {
	Entity string
	ID     string
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s %s: cannot change status from %q to %q", e.Entity, e.ID, e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// StatusGate is an allow-list of one-way status moves.
type StatusGate[S ~string] struct {
	entity  string
	allowed map[S][]S
}

// Allows reports whether from -> to is on the allow-list.
func (g StatusGate[S]) Allows(from, to S) bool {
	return slices.Contains(g.allowed[from], to)
}

// Check returns a *TransitionError unless from -> to is allowed.
func (g StatusGate[S]) Check(id string, from, to S) error {
	if g.Allows(from, to) {
		return nil
	}
	return &TransitionError{Entity: g.entity, ID: id, From: string(from), To: string(to)}
}

var (
	OrderGate = StatusGate[entities.PaymentStatus]{
		entity: "order",
		allowed: map[entities.PaymentStatus][]entities.PaymentStatus{
			entities.PaymentPending: {entities.PaymentConfirmed, entities.PaymentFailed},
		},
	}
	ViewingGate = StatusGate[entities.ViewingStatus]{
		entity: "viewing",
		allowed: map[entities.ViewingStatus][]entities.ViewingStatus{
			entities.ViewingScheduled: {entities.ViewingCompleted, entities.ViewingCancelled, entities.ViewingNoShow},
		},
	}
)

// TransitionOrder moves the payment status and stamps UpdatedAt. Nothing
// changes when the move is rejected.
func TransitionOrder(o *entities.Order, to entities.PaymentStatus, now time.Time) error {
	if err := OrderGate.Check(o.ID, o.PaymentStatus, to); err != nil {
		return err
	}
	o.PaymentStatus = to
	o.UpdatedAt = now
	return nil
}

// TransitionViewing moves the viewing status and stamps UpdatedAt. Nothing
// changes when the move is rejected.
func TransitionViewing(v *entities.Viewing, to entities.ViewingStatus, now time.Time) error {
	if err := ViewingGate.Check(v.ID, v.Status, to); err != nil {
		return err
	}
	v.Status = to
	v.UpdatedAt = now
	return nil
}
