package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thanhngo/glowcare-backend/internal/app/model"
	"github.com/thanhngo/glowcare-backend/internal/app/repository"
	"github.com/thanhngo/glowcare-backend/internal/db"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (CartService, *gorm.DB, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	cartService := NewCartService(cartRepo, productRepo)

	user := &model.User{
		Email:        "customer@example.com",
		PasswordHash: "hash",
		Name:         "Test Customer",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	product := &model.Product{
		Name:            "Vitamin C Serum",
		Category:        model.CategorySerum,
		Price:           450000,
		DiscountedPrice: 380000,
		Quantity:        10,
	}
	testDB.Create(product)

	return cartService, testDB, user, product
}

func TestCartService_AddItem(t *testing.T) {
	cartService, _, user, product := setupCartServiceTest(t)

	cart, err := cartService.AddItem(user.ID, product.ID, 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, float64(760000), cart.Items[0].Price)
	assert.Equal(t, float64(760000), cart.Subtotal())
}

func TestCartService_AddItem_MergesExistingLine(t *testing.T) {
	cartService, _, user, product := setupCartServiceTest(t)

	_, err := cartService.AddItem(user.ID, product.ID, 2)
	require.NoError(t, err)

	cart, err := cartService.AddItem(user.ID, product.ID, 3)
	require.NoError(t, err)

	// Still one line, quantities merged, price recomputed for the total.
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, float64(1900000), cart.Items[0].Price)
}

func TestCartService_AddItem_StockExceeded(t *testing.T) {
	cartService, _, user, product := setupCartServiceTest(t)

	_, err := cartService.AddItem(user.ID, product.ID, 8)
	require.NoError(t, err)

	// 8 already in the cart plus 3 more exceeds the 10 in stock.
	_, err = cartService.AddItem(user.ID, product.ID, 3)
	assert.ErrorIs(t, err, ErrStockExceeded)

	var stockErr *StockExceededError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 10, stockErr.Available)
}

func TestCartService_AddItem_ProductNotFound(t *testing.T) {
	cartService, _, user, _ := setupCartServiceTest(t)

	_, err := cartService.AddItem(user.ID, 9999, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartService_UpdateItem_RepricesFromCurrentPrice(t *testing.T) {
	cartService, testDB, user, product := setupCartServiceTest(t)

	cart, err := cartService.AddItem(user.ID, product.ID, 2)
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	// Price drop after the item was added.
	testDB.Model(product).Update("discounted_price", 300000)

	cart, err = cartService.UpdateItem(user.ID, itemID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, float64(900000), cart.Items[0].Price)
}

func TestCartService_UpdateItem_NoStockCheck(t *testing.T) {
	cartService, _, user, product := setupCartServiceTest(t)

	cart, err := cartService.AddItem(user.ID, product.ID, 1)
	require.NoError(t, err)

	// Quantity above stock is accepted here; checkout enforces stock.
	cart, err = cartService.UpdateItem(user.ID, cart.Items[0].ID, 25)
	require.NoError(t, err)
	assert.Equal(t, 25, cart.Items[0].Quantity)
}

func TestCartService_UpdateItem_OtherUsersItem(t *testing.T) {
	cartService, testDB, user, product := setupCartServiceTest(t)

	other := &model.User{
		Email:        "other@example.com",
		PasswordHash: "hash",
		Name:         "Other",
		Role:         model.RoleUser,
	}
	testDB.Create(other)

	cart, err := cartService.AddItem(user.ID, product.ID, 1)
	require.NoError(t, err)

	// Give the other user a cart so lookup reaches the ownership check.
	_, err = cartService.AddItem(other.ID, product.ID, 1)
	require.NoError(t, err)

	_, err = cartService.UpdateItem(other.ID, cart.Items[0].ID, 2)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartService_RemoveItem(t *testing.T) {
	cartService, _, user, product := setupCartServiceTest(t)

	cart, err := cartService.AddItem(user.ID, product.ID, 2)
	require.NoError(t, err)

	cart, err = cartService.RemoveItem(user.ID, cart.Items[0].ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 0)
	assert.Equal(t, float64(0), cart.Subtotal())
}

func TestCartService_ClearCart(t *testing.T) {
	cartService, _, user, product := setupCartServiceTest(t)

	_, err := cartService.AddItem(user.ID, product.ID, 2)
	require.NoError(t, err)

	require.NoError(t, cartService.ClearCart(user.ID))

	cart, err := cartService.GetCart(user.ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 0)
}

func TestCartService_ReAddAfterClear(t *testing.T) {
	cartService, _, user, product := setupCartServiceTest(t)

	_, err := cartService.AddItem(user.ID, product.ID, 2)
	require.NoError(t, err)
	require.NoError(t, cartService.ClearCart(user.ID))

	// The (cart, product) unique index must not block re-adding a product
	// whose line was cleared.
	cart, err := cartService.AddItem(user.ID, product.ID, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}
