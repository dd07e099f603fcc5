// internal/adapters/out/mail/order_mailer.go
package mail

import (
	"context"
	"fmt"
	"strings"

	orderdom "sristi/internal/domain/order"
)

// EmailClient abstracts the concrete mail transport (SMTP / SendGrid / SES).
type EmailClient interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// OrderMailer sends the order-confirmation mail after checkout. It satisfies
// the checkout usecase's outbound mail port; failures are logged by the
// caller and never fail the placed order.
type OrderMailer struct {
	client      EmailClient
	fromAddress string
	storeName   string
}

func NewOrderMailer(client EmailClient, fromAddress, storeName string) *OrderMailer {
	if strings.TrimSpace(storeName) == "" {
		storeName = "Sristi Enterprises"
	}
	return &OrderMailer{
		client:      client,
		fromAddress: strings.TrimSpace(fromAddress),
		storeName:   storeName,
	}
}

// SendConfirmation mails the order summary to the buyer.
func (m *OrderMailer) SendConfirmation(ctx context.Context, email string, o *orderdom.Order) error {
	if m == nil || m.client == nil {
		return fmt.Errorf("order mailer is not configured")
	}
	if o == nil {
		return fmt.Errorf("order is nil")
	}

	to := strings.TrimSpace(email)
	if to == "" {
		return fmt.Errorf("recipient address is empty")
	}

	subject := fmt.Sprintf("%s — order confirmed (%s)", m.storeName, o.ID)

	var lines []string
	for _, it := range o.Items {
		lines = append(lines, fmt.Sprintf("  - %s x%d", it.ProductID, it.Qty))
	}

	body := fmt.Sprintf(
		`Thank you for shopping with %s!

Your order has been placed.

  Order ID : %s
  Payment  : %s
  Total    : Rs. %d

Items:
%s

Delivery address:
  %s
  Phone: %s

You can track your order from the Orders page in the app.

--
%s`,
		m.storeName,
		o.ID,
		o.PaymentMethod,
		o.TotalCost,
		strings.Join(lines, "\n"),
		o.Address,
		o.PhoneNumber,
		m.storeName,
	)

	return m.client.Send(ctx, m.fromAddress, to, subject, body)
}
