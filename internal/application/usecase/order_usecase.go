// internal/application/usecase/order_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"

	orderdom "sristi/internal/domain/order"
	userdom "sristi/internal/domain/user"
)

var (
	ErrOrderInvalidArgument = errors.New("order_usecase: invalid argument")
	ErrOrderNotFound        = errors.New("order_usecase: not found")
	ErrOrderForbidden       = errors.New("order_usecase: order belongs to another user")
)

// OrderUsecase serves order reads. Orders are immutable here; status is
// advanced by fulfillment tooling out of band.
type OrderUsecase struct {
	orders orderdom.Repository
	users  userdom.Repository
}

func NewOrderUsecase(orders orderdom.Repository, users userdom.Repository) *OrderUsecase {
	return &OrderUsecase{orders: orders, users: users}
}

// Get returns one order, restricted to its owner.
func (uc *OrderUsecase) Get(ctx context.Context, uid, orderID string) (*orderdom.Order, error) {
	id := strings.TrimSpace(orderID)
	owner := strings.TrimSpace(uid)
	if id == "" || owner == "" {
		return nil, ErrOrderInvalidArgument
	}

	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	if o.UserID != owner {
		return nil, ErrOrderForbidden
	}
	return o, nil
}

// ListForUser resolves the user's order-id list, newest first.
func (uc *OrderUsecase) ListForUser(ctx context.Context, uid string) ([]orderdom.Order, error) {
	owner := strings.TrimSpace(uid)
	if owner == "" {
		return nil, ErrOrderInvalidArgument
	}

	u, err := uc.users.GetByID(ctx, owner)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	if len(u.Orders) == 0 {
		return []orderdom.Order{}, nil
	}
	return uc.orders.ListByIDs(ctx, u.Orders)
}
