// internal/platform/di/store/container.go
package store

import (
	"context"
	"errors"
	"log"

	fsrepo "sristi/internal/adapters/out/firestore"
	httpout "sristi/internal/adapters/out/http"
	mailout "sristi/internal/adapters/out/mail"
	usecase "sristi/internal/application/usecase"
	bannerdom "sristi/internal/domain/banner"
	paymentdom "sristi/internal/domain/payment"
	shared "sristi/internal/platform/di/shared"
)

// Container wires the storefront service: Firestore repositories, the
// Razorpay gateway, the order mailer and the usecases on top of them.
type Container struct {
	Infra *shared.Infra

	// repositories
	BannerRepo bannerdom.Repository

	// outbound
	Gateway paymentdom.Gateway

	// usecases
	UserUC     *usecase.UserUsecase
	CartUC     *usecase.CartUsecase
	CatalogUC  *usecase.CatalogUsecase
	ReviewUC   *usecase.ReviewUsecase
	OrderUC    *usecase.OrderUsecase
	CheckoutUC *usecase.CheckoutUsecase
}

// NewContainer builds the store container from shared infra.
// Firestore is required; Razorpay and mail degrade to disabled with a WARN.
func NewContainer(ctx context.Context, infra *shared.Infra) (*Container, error) {
	if infra == nil || infra.Firestore == nil || infra.Firestore.Client == nil {
		return nil, errors.New("di.store: firestore client is required")
	}

	client := infra.Firestore.Client

	userRepo := fsrepo.NewUserRepositoryFS(client)
	productRepo := fsrepo.NewProductRepositoryFS(client)
	reviewRepo := fsrepo.NewReviewRepositoryFS(client)
	orderRepo := fsrepo.NewOrderRepositoryFS(client)
	bannerRepo := fsrepo.NewBannerRepositoryFS(client)

	// payment gateway (nil when credentials incomplete; relay reports 503)
	var gateway paymentdom.Gateway
	if infra.RazorpayKeyID != "" && infra.RazorpayKeySecret != "" {
		gateway = httpout.NewRazorpayClient(infra.RazorpayKeyID, infra.RazorpayKeySecret)
		log.Printf("[di.store] razorpay gateway initialized")
	} else {
		log.Printf("[di.store] WARN: razorpay gateway not configured")
	}

	// order confirmation mail (best-effort at send time)
	mailer := mailout.NewOrderMailerWithSendGrid()

	// auth provider for sign-up (nil-tolerant: SignUp reports config error)
	var authProvider usecase.AuthProvider
	if infra.FirebaseAuth != nil {
		authProvider = shared.NewFirebaseAuthProvider(infra.FirebaseAuth)
	} else {
		log.Printf("[di.store] WARN: firebase auth unavailable; signup disabled")
	}

	cont := &Container{
		Infra:      infra,
		BannerRepo: bannerRepo,
		Gateway:    gateway,
		UserUC:     usecase.NewUserUsecase(userRepo, authProvider),
		CartUC:     usecase.NewCartUsecase(userRepo),
		CatalogUC:  usecase.NewCatalogUsecase(productRepo),
		ReviewUC:   usecase.NewReviewUsecase(reviewRepo),
		OrderUC:    usecase.NewOrderUsecase(orderRepo, userRepo),
		CheckoutUC: usecase.NewCheckoutUsecase(
			userRepo, productRepo, orderRepo, gateway, mailer,
			infra.StoreName, infra.RazorpayKeyID, infra.RazorpayKeySecret,
		),
	}

	log.Printf("[di.store] container initialized")
	return cont, nil
}

// Close releases container-owned resources. Clients are owned by Infra, so
// there is nothing to close here yet; the method keeps the lifecycle hook.
func (c *Container) Close() error {
	return nil
}
