package store

import (
	"errors"
	"fmt"
)

// Sentinel errors for comparison using errors.Is().
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrStockExceeded = errors.New("stock exceeded")
	ErrNotFound      = errors.New("not found")

	ErrItemNotFound  = fmt.Errorf("item %w", ErrNotFound)
	ErrOrderNotFound = fmt.Errorf("order %w", ErrNotFound)

	ErrEmptyCart    = fmt.Errorf("%w: empty cart", ErrInvalidInput)
	ErrMissingField = fmt.Errorf("%w: missing field", ErrInvalidInput)
)

// Client-facing messages.
const (
	MsgInvalidProduct     = "Invalid product or quantity"
	MsgStockExceeded      = "Requested quantity exceeds available stock"
	MsgInvalidItem        = "Invalid item ID or quantity"
	MsgItemNotFound       = "Item not found in cart"
	MsgInvalidItemID      = "Invalid item ID"
	MsgNoItems            = "No items provided"
	MsgOrderIDRequired    = "Order ID is required"
	MsgOrderNotFound      = "Order not found"
	MsgOnlyPendingCancel  = "Only pending orders can be cancelled"
	MsgCancelBeforeDelete = "Only cancelled orders can be deleted"
	MsgAddressIDRequired  = "Address ID is required"
	MsgAddressNotFound    = "Address not found"
)

// Error carries the failing operation and the message shown to clients.
type Error struct {
	Op      string // e.g. "cart.add"
	ID      string // item, order or address involved, if any
	Message string // client-facing message
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.ID != "" && e.Err != nil:
		return fmt.Sprintf("%s [%s]: %v", e.Op, e.ID, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Message != "":
		return e.Message
	}
	return e.Op + " failed"
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(op, id, message string, err error) *Error {
	return &Error{Op: op, ID: id, Message: message, Err: err}
}

// Message returns the client-facing message of err, or fallback when err
// carries none.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}

// IsNotFound reports whether err means the addressed line, order or address
// does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsBadRequest reports whether err was caused by the caller's input.
func IsBadRequest(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrStockExceeded)
}
