// internal/domain/payment/gateway_port.go
package payment

import "context"

// Gateway is the outbound port for the payment provider's order API.
//
// amount is the storefront's display value (rupees); the adapter converts to
// minor units on the wire. No retries, no idempotency beyond the receipt id:
// a failed creation is terminal for that attempt.
type Gateway interface {
	CreateOrder(ctx context.Context, amount int) (*GatewayOrder, error)
}
