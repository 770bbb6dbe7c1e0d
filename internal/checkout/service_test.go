package checkout

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bahzadkaka/mv-marketplace/internal/address"
	"github.com/bahzadkaka/mv-marketplace/internal/catalog"
	"github.com/bahzadkaka/mv-marketplace/internal/orders"
	"github.com/bahzadkaka/mv-marketplace/internal/users"
	"github.com/bahzadkaka/mv-marketplace/pkg/db/models"
	"github.com/bahzadkaka/mv-marketplace/pkg/enums"
	pkgerrors "github.com/bahzadkaka/mv-marketplace/pkg/errors"
	"github.com/bahzadkaka/mv-marketplace/pkg/types"
)

type engineFixture struct {
	conn      *gorm.DB
	svc       Service
	orders    orders.Repository
	customers uuid.UUID
	addressID uuid.UUID
}

type txRunnerFunc func(ctx context.Context, fn func(tx *gorm.DB) error) error

func (f txRunnerFunc) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return f(ctx, fn)
}

func setupEngine(t *testing.T) *engineFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=10000", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("raw db: %v", err)
	}
	// One writer at a time keeps sqlite's shared-cache locking out of the
	// concurrency test; callers still run concurrently.
	sqlDB.SetMaxOpenConns(1)

	customerID := uuid.New()
	if err := conn.Create(&models.User{
		ID:           customerID,
		Role:         enums.RoleCustomer,
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "hash",
		Name:         "Customer",
		Status:       enums.UserStatusActive,
	}).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	addrSvc, err := address.NewService(conn)
	if err != nil {
		t.Fatalf("address service: %v", err)
	}
	addr, err := addrSvc.Add(context.Background(), customerID, address.AddressInput{
		Label: "Home", Line1: "1 Main St", City: "Erbil", Country: "Iraq", Phone: "+964",
	})
	if err != nil {
		t.Fatalf("seed address: %v", err)
	}

	ordersRepo := orders.NewRepository(conn)
	runner := txRunnerFunc(func(ctx context.Context, fn func(tx *gorm.DB) error) error {
		return conn.WithContext(ctx).Transaction(fn)
	})
	svc, err := NewService(runner, catalog.NewRepository(conn), users.NewRepository(conn), addrSvc, ordersRepo)
	if err != nil {
		t.Fatalf("checkout service: %v", err)
	}

	return &engineFixture{
		conn:      conn,
		svc:       svc,
		orders:    ordersRepo,
		customers: customerID,
		addressID: addr.ID,
	}
}

func (f *engineFixture) seedVendor(t *testing.T, shipping types.ShippingMethods) uuid.UUID {
	t.Helper()
	vendor := &models.User{
		ID:           uuid.New(),
		Role:         enums.RoleVendor,
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "hash",
		Name:         "Vendor",
		Status:       enums.UserStatusActive,
		Store:        &types.StoreProfile{Name: "Shop"},
		Shipping:     shipping,
	}
	if err := f.conn.Create(vendor).Error; err != nil {
		t.Fatalf("seed vendor: %v", err)
	}
	return vendor.ID
}

func (f *engineFixture) seedProduct(t *testing.T, vendorID uuid.UUID, title, price string) uuid.UUID {
	t.Helper()
	product := &models.Product{
		ID:       uuid.New(),
		VendorID: vendorID,
		Title:    title,
		Price:    decimal.RequireFromString(price),
	}
	if err := f.conn.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product.ID
}

func TestResolveShippingFallbackChain(t *testing.T) {
	t.Parallel()
	methods := types.ShippingMethods{
		{Name: "Standard", Rate: decimal.NewFromInt(5)},
		{Name: "Express", Rate: decimal.NewFromInt(12)},
	}

	method, rate := resolveShipping(methods, "")
	if method == nil || *method != "Standard" || !rate.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("no choice: expected Standard/5 got %v/%s", method, rate)
	}

	method, rate = resolveShipping(methods, "Express")
	if method == nil || *method != "Express" || !rate.Equal(decimal.NewFromInt(12)) {
		t.Fatalf("choice Express: expected Express/12 got %v/%s", method, rate)
	}

	method, rate = resolveShipping(methods, "Nonexistent")
	if method == nil || *method != "Standard" || !rate.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("bad choice: expected Standard/5 got %v/%s", method, rate)
	}

	method, rate = resolveShipping(nil, "")
	if method != nil || !rate.IsZero() {
		t.Fatalf("empty list: expected nil/0 got %v/%s", method, rate)
	}
}

func TestResolveShippingFirstEntryFallbackWithoutStandard(t *testing.T) {
	t.Parallel()
	methods := types.ShippingMethods{
		{Name: "Economy", Rate: decimal.NewFromInt(3)},
		{Name: "Express", Rate: decimal.NewFromInt(12)},
	}
	method, rate := resolveShipping(methods, "")
	if method == nil || *method != "Economy" || !rate.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("expected Economy/3 got %v/%s", method, rate)
	}
}

func TestPlaceOrderEndToEndTwoVendors(t *testing.T) {
	f := setupEngine(t)
	v1 := f.seedVendor(t, types.ShippingMethods{{Name: "Standard", Rate: decimal.NewFromInt(5)}})
	v2 := f.seedVendor(t, nil)
	p1 := f.seedProduct(t, v1, "Widget", "10")
	p2 := f.seedProduct(t, v2, "Gadget", "7")

	order, err := f.svc.PlaceOrder(context.Background(), f.customers, PlaceOrderInput{
		Items:     []CartItemInput{{ProductID: p1, Qty: 2}, {ProductID: p2, Qty: 1}},
		AddressID: f.addressID,
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}

	if order.Status != enums.OrderStatusPending {
		t.Fatalf("expected pending got %s", order.Status)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 items got %d", len(order.Items))
	}
	if order.Items[0].ProductID != p1 || order.Items[0].Qty != 2 || order.Items[0].VendorID != v1 {
		t.Fatalf("first item wrong: %+v", order.Items[0])
	}
	if order.Items[1].ProductID != p2 || order.Items[1].Qty != 1 || order.Items[1].VendorID != v2 {
		t.Fatalf("second item wrong: %+v", order.Items[1])
	}

	if len(order.Shipping.Breakdown) != 2 {
		t.Fatalf("expected 2 breakdown entries got %d", len(order.Shipping.Breakdown))
	}
	first := order.Shipping.Breakdown[0]
	if first.VendorID != v1 || first.Method == nil || *first.Method != "Standard" || !first.Rate.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("breakdown[0] wrong: %+v", first)
	}
	second := order.Shipping.Breakdown[1]
	if second.VendorID != v2 || second.Method != nil || !second.Rate.IsZero() {
		t.Fatalf("breakdown[1] wrong: %+v", second)
	}

	if !order.Shipping.Total.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("shipping total expected 5 got %s", order.Shipping.Total)
	}
	if !order.Total.Equal(decimal.RequireFromString("32")) {
		t.Fatalf("total expected 32.00 got %s", order.Total)
	}
}

func TestPlaceOrderTotalInvariantAndNoRowMerging(t *testing.T) {
	f := setupEngine(t)
	vendor := f.seedVendor(t, types.ShippingMethods{{Name: "Standard", Rate: decimal.RequireFromString("4.99")}})
	product := f.seedProduct(t, vendor, "Widget", "3.33")

	// Same product twice stays two line items.
	order, err := f.svc.PlaceOrder(context.Background(), f.customers, PlaceOrderInput{
		Items:     []CartItemInput{{ProductID: product, Qty: 1}, {ProductID: product, Qty: 2}},
		AddressID: f.addressID,
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if len(order.Items) != 2 {
		t.Fatalf("cart rows merged: %+v", order.Items)
	}

	sum := decimal.Zero
	for _, item := range order.Items {
		sum = sum.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Qty))))
	}
	expected := sum.Add(order.Shipping.Total).Round(2)
	if !order.Total.Equal(expected) {
		t.Fatalf("total invariant broken: total=%s expected=%s", order.Total, expected)
	}
	if len(order.Shipping.Breakdown) != 1 {
		t.Fatalf("one vendor must yield one breakdown entry, got %d", len(order.Shipping.Breakdown))
	}
}

func TestPlaceOrderSnapshotIsolation(t *testing.T) {
	f := setupEngine(t)
	vendor := f.seedVendor(t, types.ShippingMethods{{Name: "Standard", Rate: decimal.NewFromInt(5)}})
	product := f.seedProduct(t, vendor, "Widget", "10")

	order, err := f.svc.PlaceOrder(context.Background(), f.customers, PlaceOrderInput{
		Items:     []CartItemInput{{ProductID: product, Qty: 1}},
		AddressID: f.addressID,
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}

	// Mutate the sources after placement.
	if err := f.conn.Model(&models.Product{}).Where("id = ?", product).
		Updates(map[string]any{"price": "999.99", "title": "Renamed"}).Error; err != nil {
		t.Fatalf("edit product: %v", err)
	}
	if err := f.conn.Model(&models.Address{}).Where("id = ?", f.addressID).
		Update("line1", "Somewhere Else").Error; err != nil {
		t.Fatalf("edit address: %v", err)
	}

	stored, err := f.orders.FindByID(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("reload order: %v", err)
	}
	if !stored.Items[0].Price.Equal(decimal.NewFromInt(10)) || stored.Items[0].Title != "Widget" {
		t.Fatalf("line item snapshot changed: %+v", stored.Items[0])
	}
	if stored.Address.Line1 != "1 Main St" {
		t.Fatalf("address snapshot changed: %+v", stored.Address)
	}
	if !stored.Total.Equal(decimal.RequireFromString("15")) {
		t.Fatalf("total changed: %s", stored.Total)
	}
}

func TestPlaceOrderRejectsUnknownProductWithoutWriting(t *testing.T) {
	f := setupEngine(t)
	vendor := f.seedVendor(t, nil)
	known := f.seedProduct(t, vendor, "Widget", "10")
	missing := uuid.New()

	before, err := f.orders.Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}

	_, err = f.svc.PlaceOrder(context.Background(), f.customers, PlaceOrderInput{
		Items:     []CartItemInput{{ProductID: known, Qty: 1}, {ProductID: missing, Qty: 1}},
		AddressID: f.addressID,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error got %v", err)
	}
	if typed.Message() != fmt.Sprintf("product %s not found", missing) {
		t.Fatalf("error must identify the offending product, got %q", typed.Message())
	}

	after, err := f.orders.Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if before != after {
		t.Fatalf("order collection changed on rejected cart: %d -> %d", before, after)
	}
}

func TestPlaceOrderRejectsForeignAddress(t *testing.T) {
	f := setupEngine(t)
	vendor := f.seedVendor(t, nil)
	product := f.seedProduct(t, vendor, "Widget", "10")

	_, err := f.svc.PlaceOrder(context.Background(), f.customers, PlaceOrderInput{
		Items:     []CartItemInput{{ProductID: product, Qty: 1}},
		AddressID: uuid.New(),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error got %v", err)
	}

	count, err := f.orders.Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("nothing may be persisted on invalid address")
	}
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	f := setupEngine(t)

	_, err := f.svc.PlaceOrder(context.Background(), f.customers, PlaceOrderInput{AddressID: f.addressID})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error got %v", err)
	}
}

// The original design read and rewrote the whole store per request, which
// could drop one of two concurrently placed orders. The transactional store
// closes that gap: both writers must survive.
func TestConcurrentPlacementsBothSurvive(t *testing.T) {
	f := setupEngine(t)
	vendor := f.seedVendor(t, types.ShippingMethods{{Name: "Standard", Rate: decimal.NewFromInt(5)}})
	product := f.seedProduct(t, vendor, "Widget", "10")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			_, errs[slot] = f.svc.PlaceOrder(context.Background(), f.customers, PlaceOrderInput{
				Items:     []CartItemInput{{ProductID: product, Qty: 1}},
				AddressID: f.addressID,
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("placement %d failed: %v", i, err)
		}
	}

	count, err := f.orders.Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected both concurrent orders to survive, got %d", count)
	}
}

func TestPlaceOrderUsesCallerClock(t *testing.T) {
	f := setupEngine(t)
	vendor := f.seedVendor(t, nil)
	product := f.seedProduct(t, vendor, "Widget", "10")

	fixed := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	f.svc.(*service).now = func() time.Time { return fixed }

	order, err := f.svc.PlaceOrder(context.Background(), f.customers, PlaceOrderInput{
		Items:     []CartItemInput{{ProductID: product, Qty: 1}},
		AddressID: f.addressID,
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if !order.CreatedAt.Equal(fixed) {
		t.Fatalf("expected caller timestamp %s got %s", fixed, order.CreatedAt)
	}
}
