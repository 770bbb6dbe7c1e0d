package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	addresssvc "github.com/bahzadkaka/mv-marketplace/internal/address"
	authsvc "github.com/bahzadkaka/mv-marketplace/internal/auth"
	backupsvc "github.com/bahzadkaka/mv-marketplace/internal/backup"
	bannersvc "github.com/bahzadkaka/mv-marketplace/internal/banners"
	catalogsvc "github.com/bahzadkaka/mv-marketplace/internal/catalog"
	checkoutsvc "github.com/bahzadkaka/mv-marketplace/internal/checkout"
	invoicesvc "github.com/bahzadkaka/mv-marketplace/internal/invoices"
	usersvc "github.com/bahzadkaka/mv-marketplace/internal/users"
	pkgauth "github.com/bahzadkaka/mv-marketplace/pkg/auth"
	"github.com/bahzadkaka/mv-marketplace/pkg/config"
	"github.com/bahzadkaka/mv-marketplace/pkg/db/models"
	"github.com/bahzadkaka/mv-marketplace/pkg/enums"
	"github.com/bahzadkaka/mv-marketplace/pkg/logger"
	"github.com/bahzadkaka/mv-marketplace/pkg/types"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) Register(context.Context, authsvc.RegisterInput) (*models.User, error) {
	return &models.User{ID: uuid.New()}, nil
}

func (stubAuthService) Login(context.Context, string, string) (*authsvc.LoginResult, error) {
	return &authsvc.LoginResult{Token: "token", User: &models.User{ID: uuid.New()}}, nil
}

type stubUsersService struct{}

func (stubUsersService) List(context.Context) ([]models.User, error) {
	return nil, nil
}

func (stubUsersService) Get(context.Context, uuid.UUID) (*models.User, error) {
	return &models.User{ID: uuid.New()}, nil
}

func (stubUsersService) SetStatus(context.Context, uuid.UUID, enums.UserStatus) (*models.User, error) {
	return &models.User{}, nil
}

func (stubUsersService) Update(context.Context, uuid.UUID, usersvc.UserPatch) (*models.User, error) {
	return &models.User{}, nil
}

func (stubUsersService) Delete(context.Context, uuid.UUID) error {
	return nil
}

func (stubUsersService) UpdateVendorProfile(context.Context, uuid.UUID, usersvc.VendorProfilePatch) (*models.User, error) {
	return &models.User{}, nil
}

func (stubUsersService) UpdateCustomerProfile(context.Context, uuid.UUID, usersvc.CustomerProfilePatch) (*models.User, error) {
	return &models.User{}, nil
}

type stubAddressService struct{}

func (stubAddressService) Add(context.Context, uuid.UUID, addresssvc.AddressInput) (*models.Address, error) {
	return &models.Address{ID: uuid.New()}, nil
}

func (stubAddressService) Remove(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

func (stubAddressService) List(context.Context, uuid.UUID) ([]models.Address, error) {
	return nil, nil
}

func (stubAddressService) ResolveOwned(context.Context, uuid.UUID, uuid.UUID) (*types.AddressSnapshot, error) {
	return &types.AddressSnapshot{}, nil
}

type stubCatalogService struct{}

func (stubCatalogService) CreateProduct(context.Context, uuid.UUID, catalogsvc.CreateProductInput) (*models.Product, error) {
	return &models.Product{}, nil
}

func (stubCatalogService) UpdateProduct(context.Context, uuid.UUID, enums.Role, uuid.UUID, catalogsvc.ProductPatch) (*models.Product, error) {
	return &models.Product{}, nil
}

func (stubCatalogService) DeleteProduct(context.Context, uuid.UUID, enums.Role, uuid.UUID) error {
	return nil
}

func (stubCatalogService) ListVendorProducts(context.Context, uuid.UUID) ([]models.Product, error) {
	return nil, nil
}

func (stubCatalogService) ListPublicProducts(context.Context, *uuid.UUID) ([]models.Product, error) {
	return []models.Product{}, nil
}

func (stubCatalogService) CreateCategory(context.Context, string) (*models.Category, error) {
	return &models.Category{}, nil
}

func (stubCatalogService) UpdateCategory(context.Context, uuid.UUID, catalogsvc.CategoryPatch) (*models.Category, error) {
	return &models.Category{}, nil
}

func (stubCatalogService) DeleteCategory(context.Context, uuid.UUID) error {
	return nil
}

func (stubCatalogService) ListCategories(context.Context) ([]models.Category, error) {
	return []models.Category{}, nil
}

func (stubCatalogService) DeleteByVendor(context.Context, *gorm.DB, uuid.UUID) error {
	return nil
}

type stubBannersService struct{}

func (stubBannersService) Create(context.Context, bannersvc.CreateBannerInput) (*models.Banner, error) {
	return &models.Banner{}, nil
}

func (stubBannersService) Update(context.Context, uuid.UUID, bannersvc.BannerPatch) (*models.Banner, error) {
	return &models.Banner{}, nil
}

func (stubBannersService) Delete(context.Context, uuid.UUID) error {
	return nil
}

func (stubBannersService) List(context.Context) ([]models.Banner, error) {
	return []models.Banner{}, nil
}

type stubMediaService struct{}

func (stubMediaService) SaveImage(context.Context, string, io.Reader) (string, error) {
	return "/uploads/test.png", nil
}

type stubCheckoutService struct {
	placeFn func(ctx context.Context, customerID uuid.UUID, input checkoutsvc.PlaceOrderInput) (*models.Order, error)
}

func (s stubCheckoutService) PlaceOrder(ctx context.Context, customerID uuid.UUID, input checkoutsvc.PlaceOrderInput) (*models.Order, error) {
	if s.placeFn != nil {
		return s.placeFn(ctx, customerID, input)
	}
	return &models.Order{ID: uuid.New(), CustomerID: customerID}, nil
}

type stubOrdersService struct{}

func (stubOrdersService) Get(context.Context, uuid.UUID) (*models.Order, error) {
	return &models.Order{}, nil
}

func (stubOrdersService) ListForCustomer(context.Context, uuid.UUID) ([]models.Order, error) {
	return nil, nil
}

func (stubOrdersService) ListAll(context.Context) ([]models.Order, error) {
	return nil, nil
}

func (stubOrdersService) TransitionStatus(context.Context, uuid.UUID, string) (*models.Order, error) {
	return &models.Order{}, nil
}

type stubInvoiceService struct{}

func (stubInvoiceService) Render(_ context.Context, orderID uuid.UUID) (*invoicesvc.Invoice, error) {
	return &invoicesvc.Invoice{Filename: "invoice-" + orderID.String() + ".pdf", PDF: []byte("%PDF-1.3")}, nil
}

type stubBackupService struct{}

func (stubBackupService) Export(context.Context) (*backupsvc.Snapshot, error) {
	return &backupsvc.Snapshot{}, nil
}

func (stubBackupService) Import(context.Context, *backupsvc.Snapshot) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
		Uploads: config.UploadsConfig{Dir: "uploads", PublicBase: "/uploads"},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: zerolog.DebugLevel, Output: io.Discard})
	return NewRouter(cfg, logg, stubPinger{}, nil, Services{
		Auth:     stubAuthService{},
		Users:    stubUsersService{},
		Address:  stubAddressService{},
		Catalog:  stubCatalogService{},
		Banners:  stubBannersService{},
		Media:    stubMediaService{},
		Checkout: stubCheckoutService{},
		Orders:   stubOrdersService{},
		Invoices: stubInvoiceService{},
		Backup:   stubBackupService{},
	})
}

func mintToken(t *testing.T, cfg *config.Config, role enums.Role) (string, uuid.UUID) {
	t.Helper()
	userID := uuid.New()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID: userID,
		Role:   role,
		Email:  "router@example.com",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token, userID
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestStoreHomeIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/store/home", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestAdminGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAdminGroupRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	token, _ := mintToken(t, cfg, enums.RoleCustomer)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestAdminGroupAcceptsAdminJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	token, _ := mintToken(t, cfg, enums.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestVendorGroupRejectsCustomerRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	token, _ := mintToken(t, cfg, enums.RoleCustomer)

	req := httptest.NewRequest(http.MethodGet, "/api/vendor/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestCustomerPlacesOrderThroughRouter(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	token, _ := mintToken(t, cfg, enums.RoleCustomer)

	body := `{"items":[{"productId":"` + uuid.NewString() + `","qty":1}],"addressId":"` + uuid.NewString() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/customer/orders", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestInvoiceRouteRequiresJWT(t *testing.T) {
	router := newTestRouter(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+uuid.NewString()+"/invoice.pdf", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestInvoiceRouteServesPDFForAdmin(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	token, _ := mintToken(t, cfg, enums.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+uuid.NewString()+"/invoice.pdf", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if got := resp.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("unexpected content type %q", got)
	}
}
