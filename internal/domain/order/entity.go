// internal/domain/order/entity.go
package order

import (
	"errors"
	"strings"
	"time"

	"sristi/internal/domain/user"
)

var (
	ErrInvalidOrder = errors.New("order: invalid")
)

// Payment methods accepted at checkout.
const (
	PaymentMethodCOD      = "COD"
	PaymentMethodRazorpay = "Razorpay"
)

// Status stages, in fulfillment order. Append-only; the storefront never
// moves an order backwards (fulfillment tooling mutates status out of band).
const (
	StatusPlaced     = "placed"
	StatusDispatched = "dispatched"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
)

// Stages is the fixed ordered stage list used for progress rendering.
var Stages = []string{StatusPlaced, StatusDispatched, StatusShipped, StatusDelivered}

// StageIndex returns the 0-based position of status in Stages, or -1 for an
// unrecognized status. Unknown statuses mean "not yet started", not an error.
func StageIndex(status string) int {
	s := strings.TrimSpace(status)
	for i, stage := range Stages {
		if stage == s {
			return i
		}
	}
	return -1
}

// Order represents "an orders/{id} document". Created exactly once per
// checkout; immutable afterwards except for Status.
type Order struct {
	ID            string          `json:"id" firestore:"id"`
	UserID        string          `json:"userId" firestore:"userId"`
	Items         []user.CartItem `json:"items" firestore:"items"`
	TotalCost     int             `json:"totalCost" firestore:"totalCost"`
	Status        string          `json:"status" firestore:"status"`
	PaymentMethod string          `json:"paymentMethod" firestore:"paymentMethod"`
	Address       string          `json:"address" firestore:"address"`
	PhoneNumber   string          `json:"phoneNumber" firestore:"phoneNumber"`
	CreatedAt     time.Time       `json:"createdAt" firestore:"createdAt"`
}

// New builds an order with status "placed". CreatedAt is assigned by the
// store's server timestamp.
func New(userID string, items []user.CartItem, totalCost int, paymentMethod, address, phone string) (*Order, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" || len(items) == 0 || totalCost < 0 {
		return nil, ErrInvalidOrder
	}

	method := strings.TrimSpace(paymentMethod)
	if method != PaymentMethodCOD && method != PaymentMethodRazorpay {
		return nil, ErrInvalidOrder
	}

	snap := make([]user.CartItem, len(items))
	copy(snap, items)

	return &Order{
		UserID:        uid,
		Items:         snap,
		TotalCost:     totalCost,
		Status:        StatusPlaced,
		PaymentMethod: method,
		Address:       strings.TrimSpace(address),
		PhoneNumber:   strings.TrimSpace(phone),
	}, nil
}
