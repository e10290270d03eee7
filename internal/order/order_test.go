package order

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/storefront/internal/apperr"
)

func decodeRequest(t *testing.T, body string) *Request {
	t.Helper()
	var req Request
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return &req
}

const validCustomer = `{"name":"Ann","address":"1 Rd","phone":"555","email":"a@x.com"}`

func TestValidate_Valid(t *testing.T) {
	req := decodeRequest(t, `{
		"customer_details": `+validCustomer+`,
		"cart": [{"id": 7, "color": "red", "size": "M", "quantity": 2}, {"id": "12", "color": "blue", "size": 42, "quantity": 1}],
		"payment_method": "COD"
	}`)

	lines, err := req.Validate()
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, CartLine{ID: "7", Color: "red", Size: "M", Quantity: "2"}, lines[0])
	assert.Equal(t, CartLine{ID: "12", Color: "blue", Size: "42", Quantity: "1"}, lines[1])
}

func TestValidate_MissingCustomerDetails(t *testing.T) {
	tests := []struct {
		name     string
		customer string
	}{
		{"omitted", ""},
		{"null", `"customer_details": null,`},
		{"empty object", `"customer_details": {},`},
		{"no name", `"customer_details": {"address":"1 Rd","phone":"555","email":"a@x.com"},`},
		{"blank address", `"customer_details": {"name":"Ann","address":"  ","phone":"555","email":"a@x.com"},`},
		{"no phone", `"customer_details": {"name":"Ann","address":"1 Rd","email":"a@x.com"},`},
		{"empty email", `"customer_details": {"name":"Ann","address":"1 Rd","phone":"555","email":""},`},
		{"string", `"customer_details": "x",`},
		{"array", `"customer_details": ["Ann"],`},
		{"object field", `"customer_details": {"name":{},"address":"1 Rd","phone":"555","email":"a@x.com"},`},
		{"false field", `"customer_details": {"name":"Ann","address":"1 Rd","phone":false,"email":"a@x.com"},`},
		{"zero field", `"customer_details": {"name":"Ann","address":"1 Rd","phone":0,"email":"a@x.com"},`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := decodeRequest(t, `{`+tt.customer+` "cart": [{"id":1,"color":"red","size":"M","quantity":1}], "payment_method": "COD"}`)

			lines, err := req.Validate()
			assert.Nil(t, lines)
			assert.ErrorIs(t, err, ErrMissingCustomerDetails)
			assert.ErrorIs(t, err, apperr.ErrInvalidInput)
		})
	}
}

func TestValidate_NumericCustomerFields(t *testing.T) {
	req := decodeRequest(t, `{
		"customer_details": {"name": 5, "address": "1 Rd", "phone": 5551234, "email": "a@x.com"},
		"cart": [{"id": 7, "color": "red", "size": "M", "quantity": 2}]
	}`)

	_, err := req.Validate()
	require.NoError(t, err)
	assert.Equal(t, "5", req.CustomerDetails.Name)
	assert.Equal(t, "5551234", req.CustomerDetails.Phone)
}

func TestValidate_EmptyCart(t *testing.T) {
	tests := []struct {
		name string
		cart string
	}{
		{"omitted", ""},
		{"null", `, "cart": null`},
		{"empty array", `, "cart": []`},
		{"object", `, "cart": {"id": 1}`},
		{"string", `, "cart": "7"`},
		{"number", `, "cart": 3`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := decodeRequest(t, `{"customer_details": `+validCustomer+tt.cart+`}`)

			_, err := req.Validate()
			assert.ErrorIs(t, err, ErrEmptyCart)
			assert.ErrorIs(t, err, apperr.ErrInvalidInput)
		})
	}
}

func TestValidate_CustomerCheckedBeforeCart(t *testing.T) {
	req := decodeRequest(t, `{"cart": []}`)

	_, err := req.Validate()
	assert.ErrorIs(t, err, ErrMissingCustomerDetails)
}

func TestValidate_NonObjectLines(t *testing.T) {
	req := decodeRequest(t, `{"customer_details": `+validCustomer+`, "cart": [1, 2]}`)

	_, err := req.Validate()
	assert.ErrorIs(t, err, ErrInvalidCart)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestValidate_NoLineLevelChecks(t *testing.T) {
	// unknown products, zero and negative quantities and odd emails pass through
	req := decodeRequest(t, `{
		"customer_details": {"name":"Ann","address":"1 Rd","phone":"555","email":"not-an-email"},
		"cart": [{"id": 999999, "quantity": -3}, {"id": 1, "quantity": 0}]
	}`)

	lines, err := req.Validate()
	require.NoError(t, err)
	assert.Len(t, lines, 2)
	assert.Equal(t, Scalar("-3"), lines[0].Quantity)
}
