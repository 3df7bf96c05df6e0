package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/minliz/udacimarket-backend/api/controllers"
	"github.com/minliz/udacimarket-backend/api/middleware"
	"github.com/minliz/udacimarket-backend/internal/aisles"
	internalauth "github.com/minliz/udacimarket-backend/internal/auth"
	"github.com/minliz/udacimarket-backend/internal/customers"
	"github.com/minliz/udacimarket-backend/internal/departments"
	"github.com/minliz/udacimarket-backend/internal/employees"
	"github.com/minliz/udacimarket-backend/internal/products"
	"github.com/minliz/udacimarket-backend/internal/purchases"
	"github.com/minliz/udacimarket-backend/internal/suppliers"
	pkgauth "github.com/minliz/udacimarket-backend/pkg/auth"
	"github.com/minliz/udacimarket-backend/pkg/auth/session"
	"github.com/minliz/udacimarket-backend/pkg/config"
	"github.com/minliz/udacimarket-backend/pkg/db"
	"github.com/minliz/udacimarket-backend/pkg/enums"
	"github.com/minliz/udacimarket-backend/pkg/logger"
	"github.com/minliz/udacimarket-backend/pkg/metrics"
	"github.com/minliz/udacimarket-backend/pkg/redis"
)

// NewRouter wires every route behind the shared middleware stack. Login,
// logout, health, and metrics stay public; the inventory surface sits
// behind token verification plus a per-route permission.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient redis.Pinger,
	httpMetrics *metrics.HTTPMetrics,
	verifier *pkgauth.Verifier,
	authenticator *internalauth.Authenticator,
	sessions *session.Manager,
	aisleService aisles.Service,
	customerService customers.Service,
	departmentService departments.Service,
	employeeService employees.Service,
	productService products.Service,
	supplierService suppliers.Service,
	purchaseService purchases.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)
	if httpMetrics != nil {
		r.Use(httpMetrics.Middleware)
		r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())
	}

	r.Get("/health/live", controllers.HealthLive(cfg))
	r.Get("/health/ready", controllers.HealthReady(cfg, dbP, redisClient))

	if authenticator != nil && sessions != nil {
		r.Get("/login", controllers.Login(authenticator, sessions, logg))
		r.Get("/callback", controllers.Callback(authenticator, sessions, logg))
		r.Get("/logout", controllers.Logout(cfg, sessions, logg))
		r.With(middleware.RequireLogin(sessions, logg)).Get("/me", controllers.Me(sessions, logg))
	}

	// A nil *session.Manager must stay a nil interface, or the bypass
	// path inside Auth would call through it.
	var sessionTokens middleware.SessionTokenSource
	if sessions != nil {
		sessionTokens = sessions
	}
	authed := middleware.Auth(cfg, verifier, sessionTokens, logg)
	perm := func(p enums.Permission) func(http.Handler) http.Handler {
		return middleware.RequirePermission(logg, p)
	}

	r.Route("/aisles", func(r chi.Router) {
		r.Use(authed)
		r.With(perm(enums.PermissionGetAisle)).Get("/", controllers.ListAisles(aisleService, logg))
		r.With(perm(enums.PermissionPostAisle)).Post("/create", controllers.CreateAisle(aisleService, logg))
		r.With(perm(enums.PermissionPutAisle)).Post("/{aisle_number}", controllers.UpdateAisle(aisleService, logg))
		r.With(perm(enums.PermissionPutAisle)).Put("/{aisle_number}", controllers.UpdateAisle(aisleService, logg))
		r.With(perm(enums.PermissionDeleteAisle)).Delete("/{aisle_number}", controllers.DeleteAisle(aisleService, logg))
	})

	r.Route("/customers", func(r chi.Router) {
		r.Use(authed)
		r.With(perm(enums.PermissionGetCustomer)).Get("/", controllers.ListCustomers(customerService, logg))
		r.With(perm(enums.PermissionPostCustomer)).Post("/create", controllers.CreateCustomer(customerService, logg))
		r.With(perm(enums.PermissionPutCustomer)).Post("/{id}", controllers.UpdateCustomer(customerService, logg))
		r.With(perm(enums.PermissionPutCustomer)).Put("/{id}", controllers.UpdateCustomer(customerService, logg))
	})

	r.Route("/departments", func(r chi.Router) {
		r.Use(authed)
		r.With(perm(enums.PermissionGetDepartment)).Get("/", controllers.ListDepartments(departmentService, logg))
		r.With(perm(enums.PermissionPostDepartment)).Post("/create", controllers.CreateDepartment(departmentService, logg))
		r.With(perm(enums.PermissionPutDepartment)).Post("/{id}", controllers.UpdateDepartment(departmentService, logg))
		r.With(perm(enums.PermissionPutDepartment)).Put("/{id}", controllers.UpdateDepartment(departmentService, logg))
	})

	r.Route("/employees", func(r chi.Router) {
		r.Use(authed)
		r.With(perm(enums.PermissionGetEmployee)).Get("/", controllers.ListEmployees(employeeService, logg))
		r.With(perm(enums.PermissionPostEmployee)).Post("/create", controllers.CreateEmployee(employeeService, logg))
		r.With(perm(enums.PermissionPutEmployee)).Post("/{id}", controllers.UpdateEmployee(employeeService, logg))
		r.With(perm(enums.PermissionPutEmployee)).Put("/{id}", controllers.UpdateEmployee(employeeService, logg))
	})

	r.Route("/products", func(r chi.Router) {
		r.Use(authed)
		r.With(perm(enums.PermissionGetProduct)).Get("/", controllers.ListProducts(productService, logg))
		r.With(perm(enums.PermissionPostProduct)).Post("/create", controllers.CreateProduct(productService, logg))
		r.With(perm(enums.PermissionPutProduct)).Post("/{id}", controllers.UpdateProduct(productService, logg))
		r.With(perm(enums.PermissionPutProduct)).Put("/{id}", controllers.UpdateProduct(productService, logg))
	})

	r.Route("/suppliers", func(r chi.Router) {
		r.Use(authed)
		r.With(perm(enums.PermissionGetSupplier)).Get("/", controllers.ListSuppliers(supplierService, logg))
		r.With(perm(enums.PermissionPostSupplier)).Post("/create", controllers.CreateSupplier(supplierService, logg))
		r.With(perm(enums.PermissionPutSupplier)).Post("/{id}", controllers.UpdateSupplier(supplierService, logg))
		r.With(perm(enums.PermissionPutSupplier)).Put("/{id}", controllers.UpdateSupplier(supplierService, logg))
	})

	r.Route("/purchases", func(r chi.Router) {
		r.Use(authed)
		r.With(perm(enums.PermissionGetPurchase)).Get("/", controllers.ListPurchases(purchaseService, logg))
		r.With(perm(enums.PermissionPostPurchase)).Post("/create", controllers.CreatePurchase(purchaseService, logg))
		r.With(perm(enums.PermissionPutPurchase)).Post("/{id}", controllers.UpdatePurchase(purchaseService, logg))
		r.With(perm(enums.PermissionPutPurchase)).Put("/{id}", controllers.UpdatePurchase(purchaseService, logg))
	})

	return r
}
