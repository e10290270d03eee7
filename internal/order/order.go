// Package order implements the order confirmation flow: validate the checkout
// payload, render a confirmation email and hand it to the email gateway once.
package order

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/storefront/storefront/internal/apperr"
)

// Validation errors
var (
	ErrMissingCustomerDetails = apperr.InvalidInput("missing customer details")
	ErrEmptyCart              = apperr.InvalidInput("empty cart")
	ErrInvalidCart            = apperr.InvalidInput("cart lines must be objects")
)

// CustomerDetails identifies who receives the order and the confirmation.
// Only presence is checked; the email address is not syntax-validated.
type CustomerDetails struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// UnmarshalJSON accepts any JSON value. A non-object leaves every field empty,
// numbers are kept as text and null, false, 0, objects and arrays count as absent,
// so a malformed customer is reported as missing details instead of failing the body.
func (c *CustomerDetails) UnmarshalJSON(b []byte) error {
	var fields struct {
		Name    json.RawMessage `json:"name"`
		Address json.RawMessage `json:"address"`
		Phone   json.RawMessage `json:"phone"`
		Email   json.RawMessage `json:"email"`
	}
	if err := json.Unmarshal(b, &fields); err != nil {
		*c = CustomerDetails{}
		return nil
	}

	*c = CustomerDetails{
		Name:    detailText(fields.Name),
		Address: detailText(fields.Address),
		Phone:   detailText(fields.Phone),
		Email:   detailText(fields.Email),
	}
	return nil
}

func detailText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return ""
		}
		return str
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return ""
		}
		if f, err := n.Float64(); err == nil && f == 0 {
			return ""
		}
		return n.String()
	case 't':
		return "true"
	default:
		return ""
	}
}

func (c *CustomerDetails) complete() bool {
	if c == nil {
		return false
	}
	for _, v := range []string{c.Name, c.Address, c.Phone, c.Email} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// Scalar is a JSON string, number or boolean kept as display text. Cart line
// fields are echoed into the confirmation as given, so "42" and 42 are both fine.
type Scalar string

func (s *Scalar) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || string(b) == "null":
		*s = ""
	case b[0] == '"':
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = Scalar(str)
	default:
		*s = Scalar(b)
	}
	return nil
}

// CartLine is one product variant and quantity. Neither the product id nor the
// quantity is checked against the catalog.
type CartLine struct {
	ID       Scalar `json:"id"`
	Color    Scalar `json:"color"`
	Size     Scalar `json:"size"`
	Quantity Scalar `json:"quantity"`
}

// Request is the order confirmation payload. Cart is kept raw so that an
// absent, null or non-array cart is reported as an empty cart rather than a
// decoding failure.
type Request struct {
	CustomerDetails *CustomerDetails `json:"customer_details"`
	Cart            json.RawMessage  `json:"cart"`
	PaymentMethod   string           `json:"payment_method"`
}

// Validate checks customer details first, then the cart, and returns the parsed cart lines.
func (r *Request) Validate() ([]CartLine, error) {
	if !r.CustomerDetails.complete() {
		return nil, ErrMissingCustomerDetails
	}

	raw := bytes.TrimSpace(r.Cart)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, ErrEmptyCart
	}

	var lines []CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, ErrInvalidCart
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	return lines, nil
}
