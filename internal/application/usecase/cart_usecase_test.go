package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userdom "sristi/internal/domain/user"
)

func TestCartUsecase_AddItem_DefaultQty(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewCartUsecase(repo)
	seedUser(t, repo, "uid-1")

	u, err := uc.AddItem(context.Background(), "uid-1", "p1", 0)
	require.NoError(t, err)
	require.Len(t, u.Cart, 1)
	assert.Equal(t, userdom.CartItem{ProductID: "p1", Qty: 1}, u.Cart[0])
}

func TestCartUsecase_AddItem_IncrementsExistingLine(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewCartUsecase(repo)
	seedUser(t, repo, "uid-1")

	_, err := uc.AddItem(context.Background(), "uid-1", "p1", 2)
	require.NoError(t, err)
	u, err := uc.AddItem(context.Background(), "uid-1", "p1", 3)
	require.NoError(t, err)

	require.Len(t, u.Cart, 1)
	assert.Equal(t, 5, u.Cart[0].Qty)
}

func TestCartUsecase_RemoveItem(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewCartUsecase(repo)
	seedUser(t, repo, "uid-1")

	_, err := uc.AddItem(context.Background(), "uid-1", "p1", 4)
	require.NoError(t, err)

	u, err := uc.RemoveItem(context.Background(), "uid-1", "p1")
	require.NoError(t, err)
	assert.Empty(t, u.Cart)
}

func TestCartUsecase_SetItemQty_ZeroRemoves(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewCartUsecase(repo)
	seedUser(t, repo, "uid-1")

	_, err := uc.AddItem(context.Background(), "uid-1", "p1", 2)
	require.NoError(t, err)

	u, err := uc.SetItemQty(context.Background(), "uid-1", "p1", 9)
	require.NoError(t, err)
	assert.Equal(t, 9, u.Cart[0].Qty)

	u, err = uc.SetItemQty(context.Background(), "uid-1", "p1", 0)
	require.NoError(t, err)
	assert.Empty(t, u.Cart)
}

func TestCartUsecase_Clear(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewCartUsecase(repo)
	seedUser(t, repo, "uid-1")

	_, err := uc.AddItem(context.Background(), "uid-1", "p1", 1)
	require.NoError(t, err)
	_, err = uc.AddItem(context.Background(), "uid-1", "p2", 1)
	require.NoError(t, err)

	u, err := uc.Clear(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Empty(t, u.Cart)
}

func TestCartUsecase_InvalidArguments(t *testing.T) {
	uc := NewCartUsecase(newFakeUserRepo())

	_, err := uc.AddItem(context.Background(), "", "p1", 1)
	assert.ErrorIs(t, err, ErrCartInvalidArgument)

	_, err = uc.AddItem(context.Background(), "uid-1", " ", 1)
	assert.ErrorIs(t, err, ErrCartInvalidArgument)

	_, err = uc.AddItem(context.Background(), "uid-1", "p1", -2)
	assert.ErrorIs(t, err, ErrCartInvalidArgument)

	_, err = uc.Get(context.Background(), " ")
	assert.ErrorIs(t, err, ErrCartInvalidArgument)
}

func TestCartUsecase_Get_EmptyCart(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewCartUsecase(repo)
	seedUser(t, repo, "uid-1")

	items, err := uc.Get(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
