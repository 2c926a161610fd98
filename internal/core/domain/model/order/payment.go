package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// ErrPaymentFinalized is returned when a write is attempted against a payment
// that has already been resolved. Resolved payments accept no further writes.
var ErrPaymentFinalized = errors.New("payment is finalized")

// PaymentStatus represents the settlement state of a payment.
// pending may resolve to success or failed; both are terminal.
type PaymentStatus string

const (
	// PaymentStatusPending marks a payment that has not yet been resolved.
	PaymentStatusPending PaymentStatus = "pending"

	// PaymentStatusSuccess marks a successfully settled payment. Terminal.
	PaymentStatusSuccess PaymentStatus = "success"

	// PaymentStatusFailed marks a payment that could not be settled. Terminal.
	PaymentStatusFailed PaymentStatus = "failed"
)

// Validate checks that the status is one of the defined payment statuses.
func (s PaymentStatus) Validate() error {
	switch s {
	case PaymentStatusPending, PaymentStatusSuccess, PaymentStatusFailed:
		return nil
	}
	return fmt.Errorf("%q is not a valid payment status", string(s))
}

// String returns the wire representation of the status.
func (s PaymentStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the payment has been resolved.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusSuccess || s == PaymentStatusFailed
}

// Payment holds the charge breakdown for a fulfillment. Amounts are in
// integer cents. The invariant total = shipping + tax + subTotal is enforced
// on resolution and reconstruction.
type Payment struct {
	shipping int64
	tax      int64
	subTotal int64
	total    int64
	status   PaymentStatus
}

// NewPendingPayment creates a payment awaiting resolution, with zero amounts.
func NewPendingPayment() *Payment {
	return &Payment{status: PaymentStatusPending}
}

// RestorePayment reconstructs a payment from persistence, enforcing the
// amount invariants.
func RestorePayment(shipping, tax, subTotal, total int64, status PaymentStatus) (*Payment, error) {
	if err := status.Validate(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("payment status", err)
	}
	if shipping < 0 || tax < 0 || subTotal < 0 {
		return nil, errs.NewValueIsInvalidError("payment amounts must not be negative")
	}
	if total != shipping+tax+subTotal {
		return nil, errs.NewValueIsInvalidError("payment total must equal shipping+tax+subTotal")
	}

	return &Payment{
		shipping: shipping,
		tax:      tax,
		subTotal: subTotal,
		total:    total,
		status:   status,
	}, nil
}

// Resolve records the charge outcome. Legal only while the payment is
// pending; resolved payments return ErrPaymentFinalized and keep their state.
func (p *Payment) Resolve(shipping, tax, subTotal int64, success bool) error {
	if p.status.IsTerminal() {
		return fmt.Errorf("%w: payment already %s", ErrPaymentFinalized, p.status)
	}
	if shipping < 0 || tax < 0 || subTotal < 0 {
		return errs.NewValueIsInvalidError("payment amounts must not be negative")
	}

	p.shipping = shipping
	p.tax = tax
	p.subTotal = subTotal
	p.total = shipping + tax + subTotal
	if success {
		p.status = PaymentStatusSuccess
	} else {
		p.status = PaymentStatusFailed
	}
	return nil
}

// Shipping returns the shipping charge in cents.
func (p *Payment) Shipping() int64 { return p.shipping }

// Tax returns the tax charge in cents.
func (p *Payment) Tax() int64 { return p.tax }

// SubTotal returns the item subtotal in cents.
func (p *Payment) SubTotal() int64 { return p.subTotal }

// Total returns the total charge in cents.
func (p *Payment) Total() int64 { return p.total }

// Status returns the settlement state of the payment.
func (p *Payment) Status() PaymentStatus { return p.status }
