// Package checkout validates shipping details and turns a cart into an
// order.
package checkout

import (
	"regexp"
	"strings"

	"github.com/vapeonx/storefront/models"
)

// Form-level messages.
const (
	MsgCheckFields     = "Please correct the highlighted fields"
	MsgCartEmpty       = "Cart is empty"
	MsgOrderPlaced     = "Order placed successfully"
	MsgUnexpectedError = "An unexpected error occurred. Please try again."
)

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// FieldErrors maps a shipping field, by its JSON name, to a message.
type FieldErrors map[string]string

// Normalize trims every text field and defaults the payment method to cash on
// delivery.
func Normalize(d models.ShippingDetails) models.ShippingDetails {
	d.FullName = strings.TrimSpace(d.FullName)
	d.Email = strings.TrimSpace(d.Email)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Address = strings.TrimSpace(d.Address)
	d.City = strings.TrimSpace(d.City)
	d.PostalCode = strings.TrimSpace(d.PostalCode)
	d.PaymentMethod = models.PaymentMethod(strings.ToLower(strings.TrimSpace(string(d.PaymentMethod))))
	if d.PaymentMethod == "" {
		d.PaymentMethod = models.PaymentCashOnDelivery
	}
	return d
}

// Validate reports every field of d that cannot be shipped to. An empty
// result means d is valid.
func Validate(d models.ShippingDetails) FieldErrors {
	d = Normalize(d)
	errs := FieldErrors{}

	if d.FullName == "" {
		errs["fullName"] = "Full name is required"
	}
	switch {
	case d.Email == "":
		errs["email"] = "Email is required"
	case !emailPattern.MatchString(d.Email):
		errs["email"] = "Email is invalid"
	}
	if d.Phone == "" {
		errs["phone"] = "Phone number is required"
	}
	if d.Address == "" {
		errs["address"] = "Address is required"
	}
	if d.City == "" {
		errs["city"] = "City is required"
	}
	if d.PostalCode == "" {
		errs["postalCode"] = "Postal code is required"
	}
	if !d.PaymentMethod.Valid() {
		errs["paymentMethod"] = "Payment method is invalid"
	}
	return errs
}
