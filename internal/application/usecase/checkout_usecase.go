// internal/application/usecase/checkout_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	orderdom "sristi/internal/domain/order"
	paymentdom "sristi/internal/domain/payment"
	productdom "sristi/internal/domain/product"
	userdom "sristi/internal/domain/user"
)

var (
	ErrCheckoutInvalidArgument = errors.New("checkout_usecase: invalid argument")
	ErrCheckoutContactRequired = errors.New("checkout_usecase: address and phone number are required")
	ErrCheckoutEmptyOrder      = errors.New("checkout_usecase: nothing to order")
	// ErrCheckoutGatewayFailed means the payment provider could not open a
	// gateway order, before the hosted checkout ever ran.
	ErrCheckoutGatewayFailed = errors.New("checkout_usecase: payment gateway failure")
)

// SourceCart selects the whole cart; "product-<id>" selects a single ad-hoc
// line with qty 1 (buy now).
const (
	SourceCart          = "cart"
	sourceProductPrefix = "product-"
)

// OrderMailer sends the order-confirmation mail. Failures are logged, never
// surfaced: mail is best-effort and must not fail a placed order.
type OrderMailer interface {
	SendConfirmation(ctx context.Context, email string, o *orderdom.Order) error
}

// CheckoutInput is the order-summary submission.
type CheckoutInput struct {
	Source        string `json:"source"`
	PaymentMethod string `json:"paymentMethod"`
	Address       string `json:"address"`
	PhoneNumber   string `json:"phoneNumber"`
}

// ConfirmInput is the hosted checkout's success callback plus the original
// submission, replayed so the order can be composed after payment.
type ConfirmInput struct {
	CheckoutInput
	Completion paymentdom.Completion `json:"completion"`
}

// EnrichedItem is a cart line joined with the product's current name/price.
// Prices can drift between cart-add time and checkout; that is accepted.
type EnrichedItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int    `json:"price"`
	Qty       int    `json:"qty"`
}

// PaymentIntent is what the client needs to open the hosted checkout.
type PaymentIntent struct {
	Key      string                  `json:"key"`
	Order    paymentdom.GatewayOrder `json:"order"`
	Name     string                  `json:"name"`
	Currency string                  `json:"currency"`
	Prefill  Prefill                 `json:"prefill"`
}

type Prefill struct {
	Email   string `json:"email"`
	Contact string `json:"contact"`
	Name    string `json:"name"`
}

// CheckoutResult is either a placed order (COD, confirm) or a payment intent
// (gateway method, before the hosted checkout runs).
type CheckoutResult struct {
	OrderID string          `json:"orderId,omitempty"`
	Order   *orderdom.Order `json:"order,omitempty"`
	Items   []EnrichedItem  `json:"items"`
	Total   int             `json:"totalCost"`
	Payment *PaymentIntent  `json:"payment,omitempty"`
}

// CheckoutUsecase composes cart/catalog data into an order and drives the
// two payment branches.
type CheckoutUsecase struct {
	users    userdom.Repository
	products productdom.Repository
	orders   orderdom.Repository
	gateway  paymentdom.Gateway
	mailer   OrderMailer

	storeName string
	keyID     string // publishable key for the hosted checkout
	keySecret string // used only to verify completion signatures
}

func NewCheckoutUsecase(
	users userdom.Repository,
	products productdom.Repository,
	orders orderdom.Repository,
	gateway paymentdom.Gateway,
	mailer OrderMailer,
	storeName, keyID, keySecret string,
) *CheckoutUsecase {
	if strings.TrimSpace(storeName) == "" {
		storeName = "Sristi Enterprises"
	}
	return &CheckoutUsecase{
		users:     users,
		products:  products,
		orders:    orders,
		gateway:   gateway,
		mailer:    mailer,
		storeName: storeName,
		keyID:     strings.TrimSpace(keyID),
		keySecret: keySecret,
	}
}

// Preview builds the order draft (enriched lines + total) without writing
// anything. Used by the order-summary screen.
func (uc *CheckoutUsecase) Preview(ctx context.Context, uid, source string) (*CheckoutResult, error) {
	u, err := uc.loadUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	_, enriched, total, err := uc.buildDraft(ctx, u, source)
	if err != nil {
		return nil, err
	}
	return &CheckoutResult{Items: enriched, Total: total}, nil
}

// Checkout validates contact info, persists it, and branches on payment
// method: COD places the order immediately; Razorpay creates a gateway order
// and returns the payment intent for the hosted checkout.
func (uc *CheckoutUsecase) Checkout(ctx context.Context, uid string, in CheckoutInput) (*CheckoutResult, error) {
	u, items, enriched, total, err := uc.prepare(ctx, uid, in)
	if err != nil {
		return nil, err
	}

	switch strings.TrimSpace(in.PaymentMethod) {
	case orderdom.PaymentMethodCOD:
		return uc.placeOrder(ctx, u, items, enriched, total, orderdom.PaymentMethodCOD, in)

	case orderdom.PaymentMethodRazorpay:
		if uc.gateway == nil {
			return nil, fmt.Errorf("%w: not configured", ErrCheckoutGatewayFailed)
		}
		gw, err := uc.gateway.CreateOrder(ctx, total)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCheckoutGatewayFailed, err)
		}
		return &CheckoutResult{
			Items: enriched,
			Total: total,
			Payment: &PaymentIntent{
				Key:      uc.keyID,
				Order:    *gw,
				Name:     uc.storeName,
				Currency: gw.Currency,
				Prefill: Prefill{
					Email:   u.Email,
					Contact: strings.TrimSpace(in.PhoneNumber),
					Name:    u.Username,
				},
			},
		}, nil

	default:
		return nil, ErrCheckoutInvalidArgument
	}
}

// ConfirmPayment verifies the hosted checkout's completion signature and
// only then places the order. A completion that fails verification writes
// nothing: the failed attempt leaves no trace.
func (uc *CheckoutUsecase) ConfirmPayment(ctx context.Context, uid string, in ConfirmInput) (*CheckoutResult, error) {
	if err := paymentdom.VerifySignature(in.Completion, uc.keySecret); err != nil {
		return nil, err
	}

	u, items, enriched, total, err := uc.prepare(ctx, uid, in.CheckoutInput)
	if err != nil {
		return nil, err
	}

	return uc.placeOrder(ctx, u, items, enriched, total, orderdom.PaymentMethodRazorpay, in.CheckoutInput)
}

// prepare runs steps 1-5 of the checkout flow: load user, build draft,
// validate contact info, persist it.
func (uc *CheckoutUsecase) prepare(ctx context.Context, uid string, in CheckoutInput) (*userdom.User, []userdom.CartItem, []EnrichedItem, int, error) {
	address := strings.TrimSpace(in.Address)
	phone := strings.TrimSpace(in.PhoneNumber)
	if address == "" || phone == "" {
		return nil, nil, nil, 0, ErrCheckoutContactRequired
	}

	u, err := uc.loadUser(ctx, uid)
	if err != nil {
		return nil, nil, nil, 0, err
	}

	items, enriched, total, err := uc.buildDraft(ctx, u, in.Source)
	if err != nil {
		return nil, nil, nil, 0, err
	}

	// Contact info is persisted regardless of payment method.
	if err := uc.users.UpdateContactInfo(ctx, u.ID, &address, &phone); err != nil {
		return nil, nil, nil, 0, err
	}
	u.Address = address
	u.PhoneNumber = phone

	return u, items, enriched, total, nil
}

func (uc *CheckoutUsecase) placeOrder(ctx context.Context, u *userdom.User, items []userdom.CartItem, enriched []EnrichedItem, total int, method string, in CheckoutInput) (*CheckoutResult, error) {
	o, err := orderdom.New(u.ID, items, total, method, in.Address, in.PhoneNumber)
	if err != nil {
		return nil, err
	}

	id, err := uc.orders.Place(ctx, o)
	if err != nil {
		return nil, err
	}
	o.ID = id

	if uc.mailer != nil && strings.TrimSpace(u.Email) != "" {
		if mailErr := uc.mailer.SendConfirmation(ctx, u.Email, o); mailErr != nil {
			log.Printf("[checkout] WARN: confirmation mail failed orderId=%s err=%v", id, mailErr)
		}
	}

	return &CheckoutResult{OrderID: id, Order: o, Items: enriched, Total: total}, nil
}

func (uc *CheckoutUsecase) loadUser(ctx context.Context, uid string) (*userdom.User, error) {
	id := strings.TrimSpace(uid)
	if id == "" {
		return nil, ErrCheckoutInvalidArgument
	}
	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// buildDraft gathers line items from the source discriminator, enriches them
// with current catalog name/price and computes the total. Lines whose
// product no longer exists are dropped.
func (uc *CheckoutUsecase) buildDraft(ctx context.Context, u *userdom.User, source string) ([]userdom.CartItem, []EnrichedItem, int, error) {
	src := strings.TrimSpace(source)

	var items []userdom.CartItem
	switch {
	case src == SourceCart:
		items = u.Cart
	case strings.HasPrefix(src, sourceProductPrefix):
		pid := strings.TrimSpace(strings.TrimPrefix(src, sourceProductPrefix))
		if pid == "" {
			return nil, nil, 0, ErrCheckoutInvalidArgument
		}
		items = []userdom.CartItem{{ProductID: pid, Qty: 1}}
	default:
		return nil, nil, 0, ErrCheckoutInvalidArgument
	}

	catalog, err := uc.products.List(ctx)
	if err != nil {
		return nil, nil, 0, err
	}

	kept := make([]userdom.CartItem, 0, len(items))
	enriched := make([]EnrichedItem, 0, len(items))
	total := 0
	for _, it := range items {
		p, ok := productdom.FindByID(catalog, it.ProductID)
		if !ok {
			continue
		}
		kept = append(kept, it)
		enriched = append(enriched, EnrichedItem{
			ProductID: it.ProductID,
			Name:      p.Name,
			Price:     p.Price,
			Qty:       it.Qty,
		})
		total += p.Price * it.Qty
	}

	if len(kept) == 0 {
		return nil, nil, 0, ErrCheckoutEmptyOrder
	}
	return kept, enriched, total, nil
}
