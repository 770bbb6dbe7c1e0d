package users

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bahzadkaka/mv-marketplace/pkg/db/models"
	"github.com/bahzadkaka/mv-marketplace/pkg/enums"
	pkgerrors "github.com/bahzadkaka/mv-marketplace/pkg/errors"
	"github.com/bahzadkaka/mv-marketplace/pkg/types"
)

type txRunnerFunc func(ctx context.Context, fn func(tx *gorm.DB) error) error

func (f txRunnerFunc) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return f(ctx, fn)
}

type productCleanerStub struct {
	deletedVendors []uuid.UUID
}

func (p *productCleanerStub) DeleteByVendor(_ context.Context, _ *gorm.DB, vendorID uuid.UUID) error {
	p.deletedVendors = append(p.deletedVendors, vendorID)
	return nil
}

func setupUsersTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.User{}, &models.Address{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func newTestService(t *testing.T, conn *gorm.DB, cleaner *productCleanerStub) Service {
	t.Helper()
	runner := txRunnerFunc(func(ctx context.Context, fn func(tx *gorm.DB) error) error {
		return conn.WithContext(ctx).Transaction(fn)
	})
	svc, err := NewService(runner, NewRepository(conn), cleaner)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func seedUser(t *testing.T, conn *gorm.DB, role enums.Role, status enums.UserStatus) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.New(),
		Role:         role,
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "hash",
		Name:         "Someone",
		Status:       status,
	}
	if err := conn.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestSetStatusActivatesPendingVendor(t *testing.T) {
	conn := setupUsersTestDB(t)
	svc := newTestService(t, conn, &productCleanerStub{})
	vendor := seedUser(t, conn, enums.RoleVendor, enums.UserStatusPending)

	updated, err := svc.SetStatus(context.Background(), vendor.ID, enums.UserStatusActive)
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if updated.Status != enums.UserStatusActive {
		t.Fatalf("expected active got %s", updated.Status)
	}
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	conn := setupUsersTestDB(t)
	svc := newTestService(t, conn, &productCleanerStub{})
	vendor := seedUser(t, conn, enums.RoleVendor, enums.UserStatusPending)

	_, err := svc.SetStatus(context.Background(), vendor.ID, enums.UserStatus("bogus"))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error got %v", err)
	}
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	conn := setupUsersTestDB(t)
	svc := newTestService(t, conn, &productCleanerStub{})
	customer := seedUser(t, conn, enums.RoleCustomer, enums.UserStatusActive)

	name := "Renamed"
	updated, err := svc.Update(context.Background(), customer.ID, UserPatch{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Fatalf("expected renamed got %s", updated.Name)
	}
	if updated.Email != customer.Email {
		t.Fatalf("email should be untouched, got %s", updated.Email)
	}
}

func TestDeleteVendorAlsoRemovesItsProducts(t *testing.T) {
	conn := setupUsersTestDB(t)
	cleaner := &productCleanerStub{}
	svc := newTestService(t, conn, cleaner)
	vendor := seedUser(t, conn, enums.RoleVendor, enums.UserStatusActive)

	if err := svc.Delete(context.Background(), vendor.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(cleaner.deletedVendors) != 1 || cleaner.deletedVendors[0] != vendor.ID {
		t.Fatalf("expected product cleanup for vendor %s", vendor.ID)
	}
	if _, err := svc.Get(context.Background(), vendor.ID); err == nil {
		t.Fatalf("expected user to be gone")
	}
}

func TestDeleteCustomerSkipsProductCleanup(t *testing.T) {
	conn := setupUsersTestDB(t)
	cleaner := &productCleanerStub{}
	svc := newTestService(t, conn, cleaner)
	customer := seedUser(t, conn, enums.RoleCustomer, enums.UserStatusActive)

	if err := svc.Delete(context.Background(), customer.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(cleaner.deletedVendors) != 0 {
		t.Fatalf("customer delete must not touch products")
	}
}

func TestUpdateVendorProfileReplacesShippingList(t *testing.T) {
	conn := setupUsersTestDB(t)
	svc := newTestService(t, conn, &productCleanerStub{})
	vendor := seedUser(t, conn, enums.RoleVendor, enums.UserStatusActive)

	shipping := types.ShippingMethods{
		{Name: "Standard", Rate: decimalFromString(t, "5")},
		{Name: "Express", Rate: decimalFromString(t, "12")},
	}
	updated, err := svc.UpdateVendorProfile(context.Background(), vendor.ID, VendorProfilePatch{Shipping: &shipping})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if len(updated.Shipping) != 2 || updated.Shipping[0].Name != "Standard" {
		t.Fatalf("expected shipping list to be replaced, got %+v", updated.Shipping)
	}
}

func TestUpdateVendorProfileRejectsNonVendor(t *testing.T) {
	conn := setupUsersTestDB(t)
	svc := newTestService(t, conn, &productCleanerStub{})
	customer := seedUser(t, conn, enums.RoleCustomer, enums.UserStatusActive)

	_, err := svc.UpdateVendorProfile(context.Background(), customer.ID, VendorProfilePatch{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden got %v", err)
	}
}

func decimalFromString(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", value, err)
	}
	return d
}
