package service_test

import (
	"context"
	"testing"

	"github.com/crestline-build/bidtrack-api/internal/domain"
	"github.com/crestline-build/bidtrack-api/internal/repository"
	"github.com/crestline-build/bidtrack-api/internal/service"
	"github.com/crestline-build/bidtrack-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newVendorService(t *testing.T) (*service.VendorService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := service.NewVendorService(
		db,
		repository.NewVendorRepository(db),
		repository.NewContactRepository(db),
		zap.NewNop(),
	)
	return svc, db
}

func TestVendorService_CreateAndGet(t *testing.T) {
	svc, _ := newVendorService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.CreateVendorRequest{
		CompanyName: "Apex Mechanical",
		Specialty:   "HVAC",
		IsPriority:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Apex Mechanical", created.CompanyName)
	assert.True(t, created.IsPriority)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestVendorService_AddContactPromotesFirstPrimary(t *testing.T) {
	svc, _ := newVendorService(t)
	ctx := context.Background()

	vendor, err := svc.Create(ctx, &domain.CreateVendorRequest{CompanyName: "Apex"})
	require.NoError(t, err)

	contact, err := svc.AddContact(ctx, vendor.ID, &domain.CreateVendorContactRequest{
		Name:      "Dana",
		Email:     "dana@apex.example",
		IsPrimary: true,
	})
	require.NoError(t, err)
	assert.True(t, contact.IsPrimary)

	got, err := svc.GetWithContacts(ctx, vendor.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PrimaryContactID)
	assert.Equal(t, contact.ID, *got.PrimaryContactID)
}

func TestVendorService_SetPrimaryContactDemotesOthers(t *testing.T) {
	svc, db := newVendorService(t)
	ctx := context.Background()

	vendor, err := svc.Create(ctx, &domain.CreateVendorRequest{CompanyName: "Apex"})
	require.NoError(t, err)

	first, err := svc.AddContact(ctx, vendor.ID, &domain.CreateVendorContactRequest{Name: "Dana", IsPrimary: true})
	require.NoError(t, err)
	second, err := svc.AddContact(ctx, vendor.ID, &domain.CreateVendorContactRequest{Name: "Riley"})
	require.NoError(t, err)

	require.NoError(t, svc.SetPrimaryContact(ctx, vendor.ID, second.ID))

	// Exactly one contact may be primary
	var primaries []domain.VendorContact
	require.NoError(t, db.Where("vendor_id = ? AND is_primary = ?", vendor.ID, true).Find(&primaries).Error)
	require.Len(t, primaries, 1)
	assert.Equal(t, second.ID, primaries[0].ID)

	var demoted domain.VendorContact
	require.NoError(t, db.First(&demoted, "id = ?", first.ID).Error)
	assert.False(t, demoted.IsPrimary)

	got, err := svc.GetByID(ctx, vendor.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PrimaryContactID)
	assert.Equal(t, second.ID, *got.PrimaryContactID)
}

func TestVendorService_SetPrimaryContactRejectsForeignContact(t *testing.T) {
	svc, _ := newVendorService(t)
	ctx := context.Background()

	vendorA, err := svc.Create(ctx, &domain.CreateVendorRequest{CompanyName: "A"})
	require.NoError(t, err)
	vendorB, err := svc.Create(ctx, &domain.CreateVendorRequest{CompanyName: "B"})
	require.NoError(t, err)

	contactB, err := svc.AddContact(ctx, vendorB.ID, &domain.CreateVendorContactRequest{Name: "Riley"})
	require.NoError(t, err)

	err = svc.SetPrimaryContact(ctx, vendorA.ID, contactB.ID)
	assert.Error(t, err)
}

func TestVendorService_DeleteContactClearsPrimaryPointer(t *testing.T) {
	svc, _ := newVendorService(t)
	ctx := context.Background()

	vendor, err := svc.Create(ctx, &domain.CreateVendorRequest{CompanyName: "Apex"})
	require.NoError(t, err)
	contact, err := svc.AddContact(ctx, vendor.ID, &domain.CreateVendorContactRequest{Name: "Dana", IsPrimary: true})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteContact(ctx, vendor.ID, contact.ID))

	got, err := svc.GetWithContacts(ctx, vendor.ID)
	require.NoError(t, err)
	assert.Nil(t, got.PrimaryContactID)
	assert.Empty(t, got.Contacts)
}

func TestVendorService_GetMissingVendor(t *testing.T) {
	svc, _ := newVendorService(t)

	_, err := svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrVendorNotFound)
}

func TestVendorService_UpdatePartial(t *testing.T) {
	svc, _ := newVendorService(t)
	ctx := context.Background()

	vendor, err := svc.Create(ctx, &domain.CreateVendorRequest{
		CompanyName: "Apex",
		Specialty:   "HVAC",
	})
	require.NoError(t, err)

	newName := "Apex Mechanical"
	updated, err := svc.Update(ctx, vendor.ID, &domain.UpdateVendorRequest{CompanyName: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Apex Mechanical", updated.CompanyName)
	// Fields not in the request stay untouched
	assert.Equal(t, "HVAC", updated.Specialty)
}
