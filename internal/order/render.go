package order

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/storefront/storefront/internal/email"
)

// RenderOptions carries the fixed parts of the confirmation email.
type RenderOptions struct {
	StoreName string
	Subject   string
}

// Row is one rendered cart line with its 1-based position.
type Row struct {
	Index int
	CartLine
}

// String formats the row the way the plain-text body lists it.
func (r Row) String() string {
	return fmt.Sprintf("%d | %s | %s | %s | %s", r.Index, r.ID, r.Color, r.Size, r.Quantity)
}

// Rows numbers lines from 1 in their original order.
func Rows(lines []CartLine) []Row {
	rows := make([]Row, len(lines))
	for i, line := range lines {
		rows[i] = Row{Index: i + 1, CartLine: line}
	}
	return rows
}

type templateData struct {
	StoreName     string
	Customer      CustomerDetails
	PaymentMethod string
	Rows          []Row
}

var htmlTemplate = template.Must(template.New("order_confirmation").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Order Confirmed</title>
</head>
<body style="margin:0;padding:24px;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,Helvetica,Arial,sans-serif;color:#1a1a2e;">
<h2 style="margin:0 0 16px;">Hi {{.Customer.Name}},</h2>
<p style="margin:0 0 16px;">Thank you for shopping with {{.StoreName}}. Your order has been confirmed.</p>
<p style="margin:0 0 8px;"><strong>Payment method:</strong> {{.PaymentMethod}}</p>
<p style="margin:0 0 8px;"><strong>Delivery address:</strong> {{.Customer.Address}}</p>
<p style="margin:0 0 24px;"><strong>Phone:</strong> {{.Customer.Phone}}</p>
<table cellpadding="8" cellspacing="0" border="1" style="border-collapse:collapse;border-color:#ddd;">
<thead>
<tr><th>#</th><th>Product ID</th><th>Color</th><th>Size</th><th>Quantity</th></tr>
</thead>
<tbody>
{{- range .Rows}}
<tr><td>{{.Index}}</td><td>{{.ID}}</td><td>{{.Color}}</td><td>{{.Size}}</td><td>{{.Quantity}}</td></tr>
{{- end}}
</tbody>
</table>
<p style="margin:24px 0 0;font-size:12px;color:#888;">This is an automated message, please do not reply.</p>
</body>
</html>`))

// Render builds the confirmation email for a validated request.
func Render(customer CustomerDetails, paymentMethod string, lines []CartLine, opts RenderOptions) (email.Message, error) {
	rows := Rows(lines)

	var html bytes.Buffer
	err := htmlTemplate.Execute(&html, templateData{
		StoreName:     opts.StoreName,
		Customer:      customer,
		PaymentMethod: paymentMethod,
		Rows:          rows,
	})
	if err != nil {
		return email.Message{}, fmt.Errorf("failed to render confirmation: %w", err)
	}

	var text strings.Builder
	fmt.Fprintf(&text, "Hi %s,\n\n", customer.Name)
	fmt.Fprintf(&text, "Thank you for shopping with %s. Your order has been confirmed.\n\n", opts.StoreName)
	fmt.Fprintf(&text, "Payment method: %s\n", paymentMethod)
	fmt.Fprintf(&text, "Delivery address: %s\n", customer.Address)
	fmt.Fprintf(&text, "Phone: %s\n\n", customer.Phone)
	text.WriteString("# | Product ID | Color | Size | Quantity\n")
	for _, row := range rows {
		text.WriteString(row.String())
		text.WriteByte('\n')
	}

	return email.Message{
		To:       customer.Email,
		Subject:  opts.Subject,
		HTMLBody: html.String(),
		TextBody: text.String(),
	}, nil
}
