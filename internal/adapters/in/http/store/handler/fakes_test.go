package storeHandler

import (
	"context"
	"errors"
	"fmt"
	"time"

	usecase "sristi/internal/application/usecase"
	bannerdom "sristi/internal/domain/banner"
	orderdom "sristi/internal/domain/order"
	paymentdom "sristi/internal/domain/payment"
	productdom "sristi/internal/domain/product"
	reviewdom "sristi/internal/domain/review"
	userdom "sristi/internal/domain/user"
)

// in-memory fakes backing the real usecases under httptest

type memUserRepo struct {
	users map[string]*userdom.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*userdom.User{}}
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

func (r *memUserRepo) GetByID(_ context.Context, uid string) (*userdom.User, error) {
	return cloneUser(r.users[uid]), nil
}

func (r *memUserRepo) Create(_ context.Context, u *userdom.User) error {
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *memUserRepo) MutateCart(_ context.Context, uid string, fn userdom.CartMutation) (*userdom.User, error) {
	u, ok := r.users[uid]
	if !ok {
		return nil, userdom.ErrNotFound
	}
	cp := cloneUser(u)
	if err := fn(cp); err != nil {
		return nil, err
	}
	r.users[uid] = cp
	return cloneUser(cp), nil
}

func (r *memUserRepo) AddWishlist(_ context.Context, uid, productID string) error {
	u, ok := r.users[uid]
	if !ok {
		return userdom.ErrNotFound
	}
	for _, w := range u.Wishlist {
		if w == productID {
			return nil
		}
	}
	u.Wishlist = append(u.Wishlist, productID)
	return nil
}

func (r *memUserRepo) RemoveWishlist(_ context.Context, uid, productID string) error {
	u, ok := r.users[uid]
	if !ok {
		return userdom.ErrNotFound
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

func (r *memUserRepo) UpdateContactInfo(_ context.Context, uid string, address, phone *string) error {
	u, ok := r.users[uid]
	if !ok {
		return userdom.ErrNotFound
	}
	if address != nil {
		u.Address = *address
	}
	if phone != nil {
		u.PhoneNumber = *phone
	}
	return nil
}

type memProductRepo struct {
	products []productdom.Product
}

func (r *memProductRepo) List(_ context.Context) ([]productdom.Product, error) {
	return append([]productdom.Product{}, r.products...), nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*productdom.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Subscribe(ctx context.Context) (<-chan []productdom.Product, func(), error) {
	ch := make(chan []productdom.Product, 1)
	ch <- append([]productdom.Product{}, r.products...)
	close(ch)
	return ch, func() {}, nil
}

type memOrderRepo struct {
	users  *memUserRepo
	orders map[string]*orderdom.Order
	seq    int
}

func newMemOrderRepo(users *memUserRepo) *memOrderRepo {
	return &memOrderRepo{users: users, orders: map[string]*orderdom.Order{}}
}

func (r *memOrderRepo) Place(_ context.Context, o *orderdom.Order) (string, error) {
	u, ok := r.users.users[o.UserID]
	if !ok {
		return "", userdom.ErrNotFound
	}
	r.seq++
	id := fmt.Sprintf("order-%d", r.seq)
	cp := *o
	cp.ID = id
	cp.CreatedAt = time.Now()
	r.orders[id] = &cp
	u.Cart = []userdom.CartItem{}
	u.Orders = append(u.Orders, id)
	return id, nil
}

func (r *memOrderRepo) GetByID(_ context.Context, id string) (*orderdom.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *memOrderRepo) ListByIDs(_ context.Context, ids []string) ([]orderdom.Order, error) {
	out := make([]orderdom.Order, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		if o, ok := r.orders[ids[i]]; ok {
			out = append(out, *o)
		}
	}
	return out, nil
}

type memReviewRepo struct {
	reviews map[string]map[string]*reviewdom.Review // productId -> userId
}

func newMemReviewRepo() *memReviewRepo {
	return &memReviewRepo{reviews: map[string]map[string]*reviewdom.Review{}}
}

func (r *memReviewRepo) ListByProductID(_ context.Context, productID string) ([]reviewdom.Review, error) {
	out := []reviewdom.Review{}
	for _, rv := range r.reviews[productID] {
		out = append(out, *rv)
	}
	return out, nil
}

func (r *memReviewRepo) Create(_ context.Context, rv *reviewdom.Review) error {
	byUser, ok := r.reviews[rv.ProductID]
	if !ok {
		byUser = map[string]*reviewdom.Review{}
		r.reviews[rv.ProductID] = byUser
	}
	if _, exists := byUser[rv.UserID]; exists {
		return reviewdom.ErrAlreadyReviewed
	}
	cp := *rv
	cp.CreatedAt = time.Now()
	byUser[rv.UserID] = &cp
	return nil
}

type memBannerRepo struct {
	posters []string
}

func (r *memBannerRepo) GetHome(_ context.Context) (*bannerdom.Banner, error) {
	return &bannerdom.Banner{Posters: append([]string{}, r.posters...)}, nil
}

func (r *memBannerRepo) SubscribeHome(ctx context.Context) (<-chan []string, func(), error) {
	ch := make(chan []string, 1)
	ch <- append([]string{}, r.posters...)
	close(ch)
	return ch, func() {}, nil
}

var errGatewayDown = errors.New("gateway down")

type stubGateway struct {
	lastAmount int
	err        error
}

func (g *stubGateway) CreateOrder(_ context.Context, amount int) (*paymentdom.GatewayOrder, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.lastAmount = amount
	return &paymentdom.GatewayOrder{ID: "order_rzp_1", Amount: amount * 100, Currency: "INR"}, nil
}

type stubAuth struct{ nextUID string }

func (a *stubAuth) CreateUser(_ context.Context, email, password string) (string, error) {
	if a.nextUID == "" {
		a.nextUID = "uid-new"
	}
	return a.nextUID, nil
}

// env bundles the real usecases over the fakes for a handler test.
type env struct {
	users    *memUserRepo
	products *memProductRepo
	orders   *memOrderRepo
	reviews  *memReviewRepo
	gateway  *stubGateway

	userUC     *usecase.UserUsecase
	cartUC     *usecase.CartUsecase
	catalogUC  *usecase.CatalogUsecase
	reviewUC   *usecase.ReviewUsecase
	orderUC    *usecase.OrderUsecase
	checkoutUC *usecase.CheckoutUsecase
}

func newEnv() *env {
	users := newMemUserRepo()
	products := &memProductRepo{products: []productdom.Product{
		{ID: "p1", Name: "Lavender Soap", Price: 499},
		{ID: "p2", Name: "Rose Candle", Price: 699},
	}}
	orders := newMemOrderRepo(users)
	reviews := newMemReviewRepo()
	gateway := &stubGateway{}

	userUC := usecase.NewUserUsecase(users, &stubAuth{})
	return &env{
		users:    users,
		products: products,
		orders:   orders,
		reviews:  reviews,
		gateway:  gateway,

		userUC:    userUC,
		cartUC:    usecase.NewCartUsecase(users),
		catalogUC: usecase.NewCatalogUsecase(products),
		reviewUC:  usecase.NewReviewUsecase(reviews),
		orderUC:   usecase.NewOrderUsecase(orders, users),
		checkoutUC: usecase.NewCheckoutUsecase(
			users, products, orders, gateway, nil,
			"Sristi Enterprises", "rzp_test_key", "secret",
		),
	}
}

func (e *env) seedUser(uid, email string) *userdom.User {
	u, _ := userdom.NewUser(uid, email, "tester", time.Now())
	_ = e.users.Create(context.Background(), u)
	return u
}
