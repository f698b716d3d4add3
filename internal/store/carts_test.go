package store

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"spicemart-backend/internal/domain"
)

// These tests exercise the real Mongo adapter, whose update operators
// carry the semantics the in-memory test stores only mirror. They need
// a running MongoDB; set MONGO_TEST_URI to enable them, e.g.
// MONGO_TEST_URI=mongodb://localhost:27017 go test ./internal/store/...
func setupCartStore(t *testing.T) (CartStore, UserStore) {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx := context.Background()
	db, err := Connect(ctx, uri, "spicemart_test")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Collection("users").Drop(ctx)
	})
	return NewCartStore(db), NewUserStore(db)
}

func insertCartUser(t *testing.T, users UserStore) primitive.ObjectID {
	t.Helper()
	u := &domain.User{Name: "Asha", Phone: "9876543210", Password: "x"}
	require.NoError(t, users.Insert(context.Background(), u))
	return u.ID
}

func TestCartStoreAddItemMerges(t *testing.T) {
	carts, users := setupCartStore(t)
	ctx := context.Background()
	uid := insertCartUser(t, users)
	pid := primitive.NewObjectID()

	require.NoError(t, carts.AddItem(ctx, uid, pid, 2))
	require.NoError(t, carts.AddItem(ctx, uid, pid, 3))

	cart, err := carts.GetCart(ctx, uid)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, 5, cart[0].Quantity)
}

func TestCartStoreRemoveMissingLine(t *testing.T) {
	carts, users := setupCartStore(t)
	ctx := context.Background()
	uid := insertCartUser(t, users)

	require.NoError(t, carts.AddItem(ctx, uid, primitive.NewObjectID(), 1))

	// Removing a line that is not in the cart must be a NotFound even
	// though the user document itself exists.
	err := carts.RemoveItem(ctx, uid, primitive.NewObjectID())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	cart, err := carts.GetCart(ctx, uid)
	require.NoError(t, err)
	assert.Len(t, cart, 1)
}

func TestCartStoreRemoveExistingLine(t *testing.T) {
	carts, users := setupCartStore(t)
	ctx := context.Background()
	uid := insertCartUser(t, users)
	keep := primitive.NewObjectID()
	drop := primitive.NewObjectID()

	require.NoError(t, carts.AddItem(ctx, uid, keep, 1))
	require.NoError(t, carts.AddItem(ctx, uid, drop, 2))

	require.NoError(t, carts.RemoveItem(ctx, uid, drop))

	cart, err := carts.GetCart(ctx, uid)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, keep, cart[0].ProductID)
}

func TestCartStoreUnknownUser(t *testing.T) {
	carts, _ := setupCartStore(t)
	ctx := context.Background()
	uid := primitive.NewObjectID()
	pid := primitive.NewObjectID()

	assert.ErrorIs(t, carts.AddItem(ctx, uid, pid, 1), domain.ErrNotFound)
	assert.ErrorIs(t, carts.RemoveItem(ctx, uid, pid), domain.ErrNotFound)
	assert.ErrorIs(t, carts.SetItemQuantity(ctx, uid, pid, 1), domain.ErrNotFound)
	assert.ErrorIs(t, carts.ClearCart(ctx, uid), domain.ErrNotFound)

	_, err := carts.GetCart(ctx, uid)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
