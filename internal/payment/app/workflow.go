package app

import (
	"errors"
	"fmt"

	"github.com/dmedina-dev/pos-tienda/internal/payment/domain"
)

var (
	ErrValidation      = errors.New("invalid payment input")
	ErrInvalidState    = errors.New("operation not allowed in current payment state")
	ErrNotConfirmed    = errors.New("payment not confirmed")
	ErrInsufficientPay = errors.New("amount tendered is below the total")
)

type State int

const (
	Idle State = iota
	MethodSelected
	AmountEntered
	Validated
	Rejected
	Confirmed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case MethodSelected:
		return "method_selected"
	case AmountEntered:
		return "amount_entered"
	case Validated:
		return "validated"
	case Rejected:
		return "rejected"
	case Confirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// Workflow collects one payment for a fixed cart total. Rejection is
// operator-correctable: amount and reference may be re-entered until
// Confirm, which is one-way.
type Workflow struct {
	state      State
	totalCents int64

	method    domain.Method
	tendered  int64
	reference string
}

func NewWorkflow(totalCents int64) *Workflow {
	return &Workflow{state: Idle, totalCents: totalCents}
}

func (w *Workflow) State() State { return w.state }

// SelectMethod must run before amounts or references mean anything.
// Re-selection is allowed any time before confirmation.
func (w *Workflow) SelectMethod(m domain.Method) error {
	if w.state == Confirmed {
		return fmt.Errorf("%w: %s", ErrInvalidState, w.state)
	}

	w.method = m
	w.tendered = w.totalCents
	w.reference = ""
	w.state = MethodSelected
	return nil
}

// EnterAmount records the cash tendered. Empty input means exact pay.
// Non-cash methods always pay exact, so an explicit amount is rejected.
func (w *Workflow) EnterAmount(raw string) error {
	if w.state != MethodSelected && w.state != AmountEntered && w.state != Rejected {
		return fmt.Errorf("%w: %s", ErrInvalidState, w.state)
	}

	if raw == "" {
		w.tendered = w.totalCents
		w.state = AmountEntered
		return nil
	}
	if !w.method.IsCash() {
		return fmt.Errorf("%w: %s pays exact, no amount expected", ErrValidation, w.method)
	}

	cents, err := domain.ParseCents(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	w.tendered = cents
	w.state = AmountEntered
	return nil
}

// EnterReference captures the operator-entered code for non-cash methods.
func (w *Workflow) EnterReference(ref string) error {
	if w.state != MethodSelected && w.state != AmountEntered && w.state != Rejected {
		return fmt.Errorf("%w: %s", ErrInvalidState, w.state)
	}
	if w.method.IsCash() {
		return fmt.Errorf("%w: cash takes no reference", ErrValidation)
	}
	w.reference = ref
	return nil
}

// Validate moves to Validated or Rejected. Rejected is re-enterable.
func (w *Workflow) Validate() (State, error) {
	switch w.state {
	case MethodSelected, AmountEntered, Rejected:
	default:
		return w.state, fmt.Errorf("%w: %s", ErrInvalidState, w.state)
	}

	if w.method.IsCash() {
		if w.tendered < w.totalCents {
			w.state = Rejected
			return w.state, nil
		}
		w.state = Validated
		return w.state, nil
	}

	if w.reference == "" {
		w.state = Rejected
		return w.state, fmt.Errorf("%w: %s requires a %s", ErrValidation, w.method, w.method.ReferenceLabel())
	}
	w.state = Validated
	return w.state, nil
}

// Confirm is only legal from Validated and cannot be undone.
func (w *Workflow) Confirm() error {
	if w.state != Validated {
		return fmt.Errorf("%w: %s", ErrInvalidState, w.state)
	}
	w.state = Confirmed
	return nil
}

// Attempt returns the settled-upon payment; callable only once confirmed.
func (w *Workflow) Attempt() (domain.Attempt, error) {
	if w.state != Confirmed {
		return domain.Attempt{}, ErrNotConfirmed
	}

	change := int64(0)
	tendered := w.totalCents
	if w.method.IsCash() {
		tendered = w.tendered
		change = w.tendered - w.totalCents
	}

	return domain.Attempt{
		Method:        w.method,
		TenderedCents: tendered,
		ChangeCents:   change,
		Reference:     w.reference,
	}, nil
}

// ChangeCents is the running change for display while the operator types.
// Negative means the tendered amount is short.
func (w *Workflow) ChangeCents() int64 {
	if !w.method.IsCash() {
		return 0
	}
	return w.tendered - w.totalCents
}
