package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thanhngo/glowcare-backend/internal/app/model"
	"github.com/thanhngo/glowcare-backend/internal/app/repository"
	"github.com/thanhngo/glowcare-backend/internal/db"
	"gorm.io/gorm"
)

func setupVoucherServiceTest(t *testing.T) (VoucherService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	return NewVoucherService(repository.NewVoucherRepository(testDB)), testDB
}

func seedVoucher(t *testing.T, testDB *gorm.DB, code string, start, expiry time.Time, status model.VoucherStatus) *model.Voucher {
	t.Helper()
	voucher := &model.Voucher{
		Code:           code,
		DiscountAmount: 50000,
		Status:         status,
		StartDate:      start,
		ExpiryDate:     expiry,
	}
	require.NoError(t, testDB.Create(voucher).Error)
	return voucher
}

func TestVoucherService_Evaluate_InsideWindow(t *testing.T) {
	voucherService, testDB := setupVoucherServiceTest(t)

	now := time.Now()
	voucher := seedVoucher(t, testDB, "GLOW50", now.AddDate(0, 0, -1), now.AddDate(0, 0, 7), model.VoucherStatusActive)

	discount, applied, err := voucherService.Evaluate(voucher.ID, now)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, float64(50000), discount)
}

func TestVoucherService_Evaluate_BeforeStart(t *testing.T) {
	voucherService, testDB := setupVoucherServiceTest(t)

	now := time.Now()
	voucher := seedVoucher(t, testDB, "SOON", now.AddDate(0, 0, 1), now.AddDate(0, 0, 7), model.VoucherStatusActive)

	discount, applied, err := voucherService.Evaluate(voucher.ID, now)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, float64(0), discount)
}

func TestVoucherService_Evaluate_Expired(t *testing.T) {
	voucherService, testDB := setupVoucherServiceTest(t)

	now := time.Now()
	voucher := seedVoucher(t, testDB, "OLD", now.AddDate(0, 0, -14), now.AddDate(0, 0, -7), model.VoucherStatusActive)

	discount, applied, err := voucherService.Evaluate(voucher.ID, now)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, float64(0), discount)
}

func TestVoucherService_Evaluate_NotFound(t *testing.T) {
	voucherService, _ := setupVoucherServiceTest(t)

	_, _, err := voucherService.Evaluate(9999, time.Now())
	assert.ErrorIs(t, err, ErrVoucherNotFound)
}

func TestVoucherService_GetVoucher_ReconcilesStaleStatus(t *testing.T) {
	voucherService, testDB := setupVoucherServiceTest(t)

	now := time.Now()
	// Stored as active although the window has already closed.
	voucher := seedVoucher(t, testDB, "STALE", now.AddDate(0, 0, -14), now.AddDate(0, 0, -7), model.VoucherStatusActive)

	got, err := voucherService.GetVoucherByID(voucher.ID)
	require.NoError(t, err)
	assert.Equal(t, model.VoucherStatusInactive, got.Status)

	// The stored column was corrected too.
	var reloaded model.Voucher
	require.NoError(t, testDB.First(&reloaded, voucher.ID).Error)
	assert.Equal(t, model.VoucherStatusInactive, reloaded.Status)
}

func TestVoucherService_GetVoucherByCode(t *testing.T) {
	voucherService, testDB := setupVoucherServiceTest(t)

	now := time.Now()
	seedVoucher(t, testDB, "GLOW50", now.AddDate(0, 0, -1), now.AddDate(0, 0, 7), model.VoucherStatusActive)

	got, err := voucherService.GetVoucherByCode("GLOW50")
	require.NoError(t, err)
	assert.Equal(t, "GLOW50", got.Code)
	assert.Equal(t, model.VoucherStatusActive, got.Status)

	_, err = voucherService.GetVoucherByCode("NOPE")
	assert.ErrorIs(t, err, ErrVoucherNotFound)
}

func TestVoucherService_GetVoucherByCode_ReconcilesStaleStatus(t *testing.T) {
	voucherService, testDB := setupVoucherServiceTest(t)

	now := time.Now()
	seedVoucher(t, testDB, "STALECODE", now.AddDate(0, 0, -14), now.AddDate(0, 0, -7), model.VoucherStatusActive)

	got, err := voucherService.GetVoucherByCode("STALECODE")
	require.NoError(t, err)
	assert.Equal(t, model.VoucherStatusInactive, got.Status)
}

func TestVoucherService_RefreshStatuses(t *testing.T) {
	voucherService, testDB := setupVoucherServiceTest(t)

	now := time.Now()
	seedVoucher(t, testDB, "EXPIRED1", now.AddDate(0, 0, -14), now.AddDate(0, 0, -7), model.VoucherStatusActive)
	seedVoucher(t, testDB, "EXPIRED2", now.AddDate(0, 0, -10), now.AddDate(0, 0, -1), model.VoucherStatusActive)
	seedVoucher(t, testDB, "LIVE", now.AddDate(0, 0, -1), now.AddDate(0, 0, 7), model.VoucherStatusActive)

	count, err := voucherService.RefreshStatuses(now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	var live model.Voucher
	require.NoError(t, testDB.Where("code = ?", "LIVE").First(&live).Error)
	assert.Equal(t, model.VoucherStatusActive, live.Status)
}

func TestVoucherService_CreateVoucher_Validation(t *testing.T) {
	voucherService, _ := setupVoucherServiceTest(t)

	now := time.Now()

	err := voucherService.CreateVoucher(&model.Voucher{
		Code:           "",
		DiscountAmount: 1000,
		StartDate:      now,
		ExpiryDate:     now.AddDate(0, 0, 7),
	})
	assert.ErrorIs(t, err, ErrInvalidVoucher)

	// Expiry before start.
	err = voucherService.CreateVoucher(&model.Voucher{
		Code:           "BACKWARDS",
		DiscountAmount: 1000,
		StartDate:      now,
		ExpiryDate:     now.AddDate(0, 0, -7),
	})
	assert.ErrorIs(t, err, ErrInvalidVoucher)
}
