package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	orderdom "sristi/internal/domain/order"
	paymentdom "sristi/internal/domain/payment"
	productdom "sristi/internal/domain/product"
	reviewdom "sristi/internal/domain/review"
	userdom "sristi/internal/domain/user"
)

// ---------------------------------------------------------------
// in-memory fakes implementing the domain ports
// ---------------------------------------------------------------

type fakeUserRepo struct {
	users map[string]*userdom.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*userdom.User{}}
}

func cloneUser(u *userdom.User) *userdom.User {
	if u == nil {
		return nil
	}
	cp := *u
	cp.Cart = append([]userdom.CartItem{}, u.Cart...)
	cp.Wishlist = append([]string{}, u.Wishlist...)
	cp.Orders = append([]string{}, u.Orders...)
	return &cp
}

func (r *fakeUserRepo) GetByID(_ context.Context, uid string) (*userdom.User, error) {
	return cloneUser(r.users[uid]), nil
}

func (r *fakeUserRepo) Create(_ context.Context, u *userdom.User) error {
	if _, ok := r.users[u.ID]; ok {
		return errors.New("fake: already exists")
	}
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *fakeUserRepo) MutateCart(_ context.Context, uid string, fn userdom.CartMutation) (*userdom.User, error) {
	u, ok := r.users[uid]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := cloneUser(u)
	if err := fn(cp); err != nil {
		return nil, err
	}
	r.users[uid] = cp
	return cloneUser(cp), nil
}

func (r *fakeUserRepo) AddWishlist(_ context.Context, uid, productID string) error {
	u, ok := r.users[uid]
	if !ok {
		return ErrUserNotFound
	}
	for _, w := range u.Wishlist {
		if w == productID {
			return nil // array-union semantics: no duplicates
		}
	}
	u.Wishlist = append(u.Wishlist, productID)
	return nil
}

func (r *fakeUserRepo) RemoveWishlist(_ context.Context, uid, productID string) error {
	u, ok := r.users[uid]
	if !ok {
		return ErrUserNotFound
	}
	out := u.Wishlist[:0]
	for _, w := range u.Wishlist {
		if w != productID {
			out = append(out, w)
		}
	}
	u.Wishlist = out
	return nil
}

func (r *fakeUserRepo) UpdateContactInfo(_ context.Context, uid string, address, phone *string) error {
	u, ok := r.users[uid]
	if !ok {
		return ErrUserNotFound
	}
	if address != nil {
		u.Address = *address
	}
	if phone != nil {
		u.PhoneNumber = *phone
	}
	return nil
}

type fakeProductRepo struct {
	products []productdom.Product
}

func (r *fakeProductRepo) List(_ context.Context) ([]productdom.Product, error) {
	return r.products, nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*productdom.Product, error) {
	if p, ok := productdom.FindByID(r.products, id); ok {
		return &p, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) Subscribe(_ context.Context) (<-chan []productdom.Product, func(), error) {
	ch := make(chan []productdom.Product, 1)
	ch <- r.products
	return ch, func() { close(ch) }, nil
}

// fakeOrderRepo mimics the transactional Place contract: order persisted,
// cart cleared, order id appended to the user record.
type fakeOrderRepo struct {
	users  *fakeUserRepo
	orders map[string]*orderdom.Order
	seq    int
}

func newFakeOrderRepo(users *fakeUserRepo) *fakeOrderRepo {
	return &fakeOrderRepo{users: users, orders: map[string]*orderdom.Order{}}
}

func (r *fakeOrderRepo) Place(_ context.Context, o *orderdom.Order) (string, error) {
	r.seq++
	id := fmt.Sprintf("order-%d", r.seq)

	cp := *o
	cp.ID = id
	cp.CreatedAt = time.Now()
	r.orders[id] = &cp

	if u, ok := r.users.users[o.UserID]; ok {
		u.Cart = []userdom.CartItem{}
		u.Orders = append(u.Orders, id)
	}
	return id, nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*orderdom.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) ListByIDs(_ context.Context, ids []string) ([]orderdom.Order, error) {
	out := []orderdom.Order{}
	for i := len(ids) - 1; i >= 0; i-- {
		if o, ok := r.orders[ids[i]]; ok {
			out = append(out, *o)
		}
	}
	return out, nil
}

type fakeReviewRepo struct {
	reviews map[string][]reviewdom.Review // productID -> newest first
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[string][]reviewdom.Review{}}
}

func (r *fakeReviewRepo) ListByProductID(_ context.Context, productID string) ([]reviewdom.Review, error) {
	return append([]reviewdom.Review{}, r.reviews[productID]...), nil
}

func (r *fakeReviewRepo) Create(_ context.Context, rv *reviewdom.Review) error {
	for _, existing := range r.reviews[rv.ProductID] {
		if existing.UserID == rv.UserID {
			return reviewdom.ErrAlreadyReviewed
		}
	}
	cp := *rv
	cp.CreatedAt = time.Now()
	r.reviews[rv.ProductID] = append([]reviewdom.Review{cp}, r.reviews[rv.ProductID]...)
	return nil
}

type fakeAuth struct {
	nextUID string
	emails  map[string]bool
}

func (a *fakeAuth) CreateUser(_ context.Context, email, _ string) (string, error) {
	if a.emails == nil {
		a.emails = map[string]bool{}
	}
	key := strings.ToLower(email)
	if a.emails[key] {
		return "", errors.New("EMAIL_EXISTS")
	}
	a.emails[key] = true
	if a.nextUID == "" {
		a.nextUID = "uid-new"
	}
	return a.nextUID, nil
}

type fakeGateway struct {
	lastAmount int
	fail       bool
}

func (g *fakeGateway) CreateOrder(_ context.Context, amount int) (*paymentdom.GatewayOrder, error) {
	if g.fail {
		return nil, errors.New("gateway down")
	}
	g.lastAmount = amount
	return &paymentdom.GatewayOrder{ID: "order_rzp_1", Amount: amount * 100, Currency: "INR"}, nil
}

type fakeMailer struct {
	sent []string
}

func (m *fakeMailer) SendConfirmation(_ context.Context, email string, _ *orderdom.Order) error {
	m.sent = append(m.sent, email)
	return nil
}

func newPlacedOrder(repo *fakeOrderRepo, uid string) (*orderdom.Order, error) {
	o, err := orderdom.New(uid, []userdom.CartItem{{ProductID: "p1", Qty: 1}}, 499, orderdom.PaymentMethodCOD, "12 Main St", "9876543210")
	if err != nil {
		return nil, err
	}
	id, err := repo.Place(context.Background(), o)
	if err != nil {
		return nil, err
	}
	o.ID = id
	return o, nil
}

// fixedClock for deterministic timestamps.
type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }
