package routes

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bahzadkaka/mv-marketplace/api/controllers"
	"github.com/bahzadkaka/mv-marketplace/api/middleware"
	addresssvc "github.com/bahzadkaka/mv-marketplace/internal/address"
	authsvc "github.com/bahzadkaka/mv-marketplace/internal/auth"
	backupsvc "github.com/bahzadkaka/mv-marketplace/internal/backup"
	bannersvc "github.com/bahzadkaka/mv-marketplace/internal/banners"
	catalogsvc "github.com/bahzadkaka/mv-marketplace/internal/catalog"
	checkoutsvc "github.com/bahzadkaka/mv-marketplace/internal/checkout"
	invoicesvc "github.com/bahzadkaka/mv-marketplace/internal/invoices"
	mediasvc "github.com/bahzadkaka/mv-marketplace/internal/media"
	ordersvc "github.com/bahzadkaka/mv-marketplace/internal/orders"
	usersvc "github.com/bahzadkaka/mv-marketplace/internal/users"
	"github.com/bahzadkaka/mv-marketplace/pkg/config"
	"github.com/bahzadkaka/mv-marketplace/pkg/db"
	"github.com/bahzadkaka/mv-marketplace/pkg/enums"
	"github.com/bahzadkaka/mv-marketplace/pkg/logger"
	pkgredis "github.com/bahzadkaka/mv-marketplace/pkg/redis"
)

// Services bundles everything the router wires into handlers.
type Services struct {
	Auth     authsvc.Service
	Users    usersvc.Service
	Address  addresssvc.Service
	Catalog  catalogsvc.Service
	Banners  bannersvc.Service
	Media    mediasvc.Service
	Checkout checkoutsvc.Service
	Orders   ordersvc.Service
	Invoices invoicesvc.Service
	Backup   backupsvc.Service
}

// NewRouter assembles the full HTTP surface: public storefront, auth,
// per-role API groups and the static uploads tree.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	idemStore pkgredis.IdempotencyStore,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	idempotency := middleware.Idempotency(idemStore, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP))
	})

	uploadsPrefix := strings.TrimSuffix(cfg.Uploads.PublicBase, "/")
	r.Handle(uploadsPrefix+"/*", http.StripPrefix(uploadsPrefix+"/",
		http.FileServer(http.Dir(cfg.Uploads.Dir))))

	r.Route("/api/auth", func(r chi.Router) {
		r.With(idempotency).Post("/register", controllers.Register(svcs.Auth, logg))
		r.Post("/login", controllers.Login(svcs.Auth, logg))
	})

	r.Route("/api/store", func(r chi.Router) {
		r.Get("/home", controllers.StoreHome(svcs.Catalog, svcs.Banners, logg))
		r.Get("/products", controllers.StoreProducts(svcs.Catalog, logg))
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(enums.RoleAdmin.String(), logg))

		r.Get("/users", controllers.AdminListUsers(svcs.Users, logg))
		r.Post("/users/{id}/status", controllers.AdminSetUserStatus(svcs.Users, logg))
		r.Put("/users/{id}", controllers.AdminUpdateUser(svcs.Users, logg))
		r.Delete("/users/{id}", controllers.AdminDeleteUser(svcs.Users, logg))

		r.Get("/categories", controllers.ListCategories(svcs.Catalog, logg))
		r.Post("/categories", controllers.AdminCreateCategory(svcs.Catalog, logg))
		r.Put("/categories/{id}", controllers.AdminUpdateCategory(svcs.Catalog, logg))
		r.Delete("/categories/{id}", controllers.AdminDeleteCategory(svcs.Catalog, logg))

		r.Get("/banners", controllers.AdminListBanners(svcs.Banners, logg))
		r.Post("/banners", controllers.AdminCreateBanner(svcs.Banners, svcs.Media, logg))
		r.Put("/banners/{id}", controllers.AdminUpdateBanner(svcs.Banners, svcs.Media, logg))
		r.Delete("/banners/{id}", controllers.AdminDeleteBanner(svcs.Banners, logg))

		r.Get("/orders", controllers.AdminListOrders(svcs.Orders, logg))
		r.Post("/orders/{id}/status", controllers.AdminSetOrderStatus(svcs.Orders, logg))

		r.Get("/backup", controllers.AdminExportBackup(svcs.Backup, logg))
		r.Post("/import", controllers.AdminImportBackup(svcs.Backup, logg))
	})

	r.Route("/api/vendor", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(enums.RoleVendor.String(), logg))

		r.Get("/me", controllers.GetVendorProfile(svcs.Users, logg))
		r.Put("/me", controllers.UpdateVendorProfile(svcs.Users, logg))

		r.Get("/products", controllers.ListVendorProducts(svcs.Catalog, logg))
		r.Post("/products", controllers.CreateVendorProduct(svcs.Catalog, svcs.Media, logg))
		r.Put("/products/{id}", controllers.UpdateVendorProduct(svcs.Catalog, svcs.Media, logg))
		r.Delete("/products/{id}", controllers.DeleteVendorProduct(svcs.Catalog, logg))
	})

	r.Route("/api/customer", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(enums.RoleCustomer.String(), logg))

		r.Get("/me", controllers.CustomerMe(svcs.Users, logg))
		r.Put("/me", controllers.UpdateCustomerProfile(svcs.Users, logg))

		r.Post("/address", controllers.AddCustomerAddress(svcs.Address, logg))
		r.Delete("/address/{id}", controllers.DeleteCustomerAddress(svcs.Address, logg))

		r.With(idempotency).Post("/orders", controllers.PlaceOrder(svcs.Checkout, logg))
		r.Get("/orders", controllers.ListCustomerOrders(svcs.Orders, logg))
	})

	r.Route("/api/orders", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Get("/{id}/invoice.pdf", controllers.DownloadInvoice(svcs.Orders, svcs.Invoices, logg))
	})

	return r
}
