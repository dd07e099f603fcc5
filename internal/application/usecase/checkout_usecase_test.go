package usecase

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderdom "sristi/internal/domain/order"
	paymentdom "sristi/internal/domain/payment"
	productdom "sristi/internal/domain/product"
)

type checkoutFixture struct {
	users   *fakeUserRepo
	orders  *fakeOrderRepo
	gateway *fakeGateway
	mailer  *fakeMailer
	uc      *CheckoutUsecase
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()

	users := newFakeUserRepo()
	products := &fakeProductRepo{products: []productdom.Product{
		{ID: "1", Name: "Organic Honeycomb", Price: 499},
		{ID: "2", Name: "Natural Lavender Soap Bar", Price: 699},
	}}
	orders := newFakeOrderRepo(users)
	gateway := &fakeGateway{}
	mailer := &fakeMailer{}

	uc := NewCheckoutUsecase(users, products, orders, gateway, mailer,
		"Sristi Enterprises", "rzp_test_key", "rzp_secret")

	return &checkoutFixture{users: users, orders: orders, gateway: gateway, mailer: mailer, uc: uc}
}

func (f *checkoutFixture) seedCart(t *testing.T) {
	t.Helper()
	u := seedUser(t, f.users, "uid-1")
	stored := f.users.users[u.ID]
	require.NoError(t, stored.AddToCart("1", 2))
	require.NoError(t, stored.AddToCart("2", 1))
}

func codInput() CheckoutInput {
	return CheckoutInput{
		Source:        SourceCart,
		PaymentMethod: orderdom.PaymentMethodCOD,
		Address:       "12 Main St",
		PhoneNumber:   "9876543210",
	}
}

func TestCheckout_Preview_Total(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedCart(t)

	res, err := f.uc.Preview(context.Background(), "uid-1", SourceCart)
	require.NoError(t, err)

	// 2*499 + 1*699
	assert.Equal(t, 1697, res.Total)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "Organic Honeycomb", res.Items[0].Name)
}

func TestCheckout_Preview_BuyNowSource(t *testing.T) {
	f := newCheckoutFixture(t)
	seedUser(t, f.users, "uid-1")

	res, err := f.uc.Preview(context.Background(), "uid-1", "product-2")
	require.NoError(t, err)

	require.Len(t, res.Items, 1)
	assert.Equal(t, EnrichedItem{ProductID: "2", Name: "Natural Lavender Soap Bar", Price: 699, Qty: 1}, res.Items[0])
	assert.Equal(t, 699, res.Total)
}

func TestCheckout_Preview_UnknownProductsDropped(t *testing.T) {
	f := newCheckoutFixture(t)
	u := seedUser(t, f.users, "uid-1")
	stored := f.users.users[u.ID]
	require.NoError(t, stored.AddToCart("1", 1))
	require.NoError(t, stored.AddToCart("deleted-product", 3))

	res, err := f.uc.Preview(context.Background(), "uid-1", SourceCart)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, 499, res.Total)
}

func TestCheckout_Preview_BadSource(t *testing.T) {
	f := newCheckoutFixture(t)
	seedUser(t, f.users, "uid-1")

	_, err := f.uc.Preview(context.Background(), "uid-1", "wishlist")
	assert.ErrorIs(t, err, ErrCheckoutInvalidArgument)

	_, err = f.uc.Preview(context.Background(), "uid-1", "product-")
	assert.ErrorIs(t, err, ErrCheckoutInvalidArgument)
}

func TestCheckout_ContactRequired(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedCart(t)

	in := codInput()
	in.Address = "  "
	_, err := f.uc.Checkout(context.Background(), "uid-1", in)
	assert.ErrorIs(t, err, ErrCheckoutContactRequired)

	in = codInput()
	in.PhoneNumber = ""
	_, err = f.uc.Checkout(context.Background(), "uid-1", in)
	assert.ErrorIs(t, err, ErrCheckoutContactRequired)

	// nothing was written
	assert.Empty(t, f.orders.orders)
	assert.Equal(t, "", f.users.users["uid-1"].Address)
}

func TestCheckout_COD_PlacesOrderAndClearsCart(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedCart(t)

	res, err := f.uc.Checkout(context.Background(), "uid-1", codInput())
	require.NoError(t, err)

	require.NotEmpty(t, res.OrderID)
	require.NotNil(t, res.Order)
	assert.Equal(t, orderdom.StatusPlaced, res.Order.Status)
	assert.Equal(t, orderdom.PaymentMethodCOD, res.Order.PaymentMethod)
	assert.Equal(t, 1697, res.Order.TotalCost)

	u := f.users.users["uid-1"]
	assert.Empty(t, u.Cart, "cart must be cleared")
	assert.Equal(t, []string{res.OrderID}, u.Orders)
	assert.Equal(t, "12 Main St", u.Address)
	assert.Equal(t, "9876543210", u.PhoneNumber)

	// best-effort confirmation mail went out
	assert.Equal(t, []string{"uid-1@example.com"}, f.mailer.sent)
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := newCheckoutFixture(t)
	seedUser(t, f.users, "uid-1")

	_, err := f.uc.Checkout(context.Background(), "uid-1", codInput())
	assert.ErrorIs(t, err, ErrCheckoutEmptyOrder)
}

func TestCheckout_Razorpay_ReturnsPaymentIntent(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedCart(t)

	in := codInput()
	in.PaymentMethod = orderdom.PaymentMethodRazorpay

	res, err := f.uc.Checkout(context.Background(), "uid-1", in)
	require.NoError(t, err)

	// no order yet: only the gateway order + publishable key
	assert.Empty(t, res.OrderID)
	require.NotNil(t, res.Payment)
	assert.Equal(t, "rzp_test_key", res.Payment.Key)
	assert.Equal(t, "order_rzp_1", res.Payment.Order.ID)
	assert.Equal(t, 1697*100, res.Payment.Order.Amount)
	assert.Equal(t, "INR", res.Payment.Currency)
	assert.Equal(t, "uid-1@example.com", res.Payment.Prefill.Email)
	assert.Equal(t, 1697, f.gateway.lastAmount)

	// cart untouched until the payment confirms
	assert.Len(t, f.users.users["uid-1"].Cart, 2)
	assert.Empty(t, f.orders.orders)
}

func TestCheckout_Razorpay_GatewayFailureLeavesNoTrace(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedCart(t)
	f.gateway.fail = true

	in := codInput()
	in.PaymentMethod = orderdom.PaymentMethodRazorpay

	_, err := f.uc.Checkout(context.Background(), "uid-1", in)
	require.ErrorIs(t, err, ErrCheckoutGatewayFailed)
	assert.Empty(t, f.orders.orders)
	assert.Len(t, f.users.users["uid-1"].Cart, 2)
}

func TestConfirmPayment_ValidSignaturePlacesOrder(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedCart(t)

	in := ConfirmInput{
		CheckoutInput: func() CheckoutInput {
			ci := codInput()
			ci.PaymentMethod = orderdom.PaymentMethodRazorpay
			return ci
		}(),
		Completion: signedCompletion("order_rzp_1", "pay_77", "rzp_secret"),
	}

	res, err := f.uc.ConfirmPayment(context.Background(), "uid-1", in)
	require.NoError(t, err)

	require.NotNil(t, res.Order)
	assert.Equal(t, orderdom.PaymentMethodRazorpay, res.Order.PaymentMethod)
	assert.Empty(t, f.users.users["uid-1"].Cart)
}

func TestConfirmPayment_BadSignatureWritesNothing(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedCart(t)

	in := ConfirmInput{
		CheckoutInput: codInput(),
		Completion:    signedCompletion("order_rzp_1", "pay_77", "wrong_secret"),
	}

	_, err := f.uc.ConfirmPayment(context.Background(), "uid-1", in)
	assert.ErrorIs(t, err, paymentdom.ErrInvalidSignature)

	assert.Empty(t, f.orders.orders)
	assert.Len(t, f.users.users["uid-1"].Cart, 2)
	assert.Equal(t, "", f.users.users["uid-1"].Address)
}

func signedCompletion(orderID, paymentID, secret string) paymentdom.Completion {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return paymentdom.Completion{
		OrderID:   orderID,
		PaymentID: paymentID,
		Signature: hex.EncodeToString(mac.Sum(nil)),
	}
}

// double-submit guard is out of scope server-side; the second submit creates
// a second order only if the cart still has lines, and COD clears the cart on
// the first, so a replayed COD submit fails on the empty cart.
func TestCheckout_COD_ReplayFailsOnEmptiedCart(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedCart(t)

	_, err := f.uc.Checkout(context.Background(), "uid-1", codInput())
	require.NoError(t, err)

	_, err = f.uc.Checkout(context.Background(), "uid-1", codInput())
	assert.ErrorIs(t, err, ErrCheckoutEmptyOrder)
	assert.Len(t, f.orders.orders, 1)
}
