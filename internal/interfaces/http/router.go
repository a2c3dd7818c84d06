package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/erp-multitenant/internal/application/audit"
	"github.com/tu-usuario/erp-multitenant/internal/application/auth"
	"github.com/tu-usuario/erp-multitenant/internal/application/inventory"
	"github.com/tu-usuario/erp-multitenant/internal/application/sales"
	"github.com/tu-usuario/erp-multitenant/internal/application/usecase"
	"github.com/tu-usuario/erp-multitenant/internal/domain/access"
	"github.com/tu-usuario/erp-multitenant/internal/domain/entity"
	"github.com/tu-usuario/erp-multitenant/internal/infrastructure/ratelimit"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	CompanyUC    *usecase.CompanyUseCase
	UserUC       *usecase.UserUseCase
	RoleReqUC    *usecase.RoleRequestUseCase
	ProductUC    *usecase.ProductUseCase
	CustomerUC   *usecase.CustomerUseCase
	InventoryUC  *inventory.UseCase
	SalesUC      *sales.UseCase
	PDFUC        *sales.PDFUseCase
	Audit        *audit.Recorder
	LoginLimiter ratelimit.Limiter
	JWTSecret    string
	CookieMins   int
	SecureCookie bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	authn := AuthMiddleware(deps.JWTSecret)

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.CookieMins, deps.SecureCookie)
	authGroup.Post("/login", LoginRateLimit(deps.LoginLimiter), authHandler.Login)
	authGroup.Post("/logout", authn, authHandler.Logout)
	authGroup.Get("/profile", authn, authHandler.Profile)
	authGroup.Put("/profile", authn, authHandler.UpdateProfile)
	authGroup.Put("/password", authn, authHandler.UpdatePassword)

	// Companies: el registro es público; el resto del ciclo de vida es del
	// super admin, salvo lectura/actualización de la propia empresa.
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/register", companyHandler.Register)
	companies.Get("/", authn, RequireRole(entity.RoleSuperAdmin), companyHandler.List)
	companies.Get("/:id", authn, RequirePermission(access.ResourceCompany, access.ActionRead), companyHandler.GetByID)
	companies.Put("/:id", authn, RequirePermission(access.ResourceCompany, access.ActionUpdate),
		Audited(deps.Audit, "UPDATE_COMPANY", access.ResourceCompany), companyHandler.Update)
	companies.Post("/:id/approve", authn, RequireRole(entity.RoleSuperAdmin),
		Audited(deps.Audit, "APPROVE_COMPANY", access.ResourceCompany), companyHandler.Approve)
	companies.Post("/:id/reject", authn, RequireRole(entity.RoleSuperAdmin),
		Audited(deps.Audit, "REJECT_COMPANY", access.ResourceCompany), companyHandler.Reject)
	companies.Post("/:id/suspend", authn, RequireRole(entity.RoleSuperAdmin),
		Audited(deps.Audit, "SUSPEND_COMPANY", access.ResourceCompany), companyHandler.Suspend)
	companies.Delete("/:id", authn, RequireRole(entity.RoleSuperAdmin),
		Audited(deps.Audit, "DELETE_COMPANY", access.ResourceCompany), companyHandler.Delete)

	// Users (tenant)
	users := api.Group("/users", authn)
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", RequirePermission(access.ResourceUser, access.ActionCreate),
		Audited(deps.Audit, "CREATE_USER", access.ResourceUser), userHandler.Create)
	users.Get("/", RequirePermission(access.ResourceUser, access.ActionRead), userHandler.List)
	users.Get("/:id", RequirePermission(access.ResourceUser, access.ActionRead), userHandler.GetByID)
	users.Put("/:id/role", RequirePermission(access.ResourceUser, access.ActionUpdate),
		Audited(deps.Audit, "UPDATE_USER_ROLE", access.ResourceUser), userHandler.UpdateRole)
	users.Post("/:id/activate", RequirePermission(access.ResourceUser, access.ActionUpdate),
		Audited(deps.Audit, "ACTIVATE_USER", access.ResourceUser), userHandler.Activate)
	users.Post("/:id/deactivate", RequirePermission(access.ResourceUser, access.ActionUpdate),
		Audited(deps.Audit, "DEACTIVATE_USER", access.ResourceUser), userHandler.Deactivate)
	users.Delete("/:id", RequirePermission(access.ResourceUser, access.ActionDelete),
		Audited(deps.Audit, "DELETE_USER", access.ResourceUser), userHandler.Delete)

	// Role requests: el USER pide ascender a MANAGER; el COMPANY_ADMIN revisa.
	roleReqs := api.Group("/role-requests", authn)
	roleReqHandler := NewRoleRequestHandler(deps.RoleReqUC)
	roleReqs.Post("/", RequirePermission(access.ResourceRoleRequest, access.ActionCreate),
		Audited(deps.Audit, "CREATE_ROLE_REQUEST", access.ResourceRoleRequest), roleReqHandler.Create)
	roleReqs.Get("/my-requests", RequirePermission(access.ResourceRoleRequest, access.ActionRead), roleReqHandler.ListMine)
	roleReqs.Get("/", RequireRole(entity.RoleCompanyAdmin), roleReqHandler.List)
	roleReqs.Post("/:id/approve", RequirePermission(access.ResourceManager, access.ActionApprove),
		Audited(deps.Audit, "APPROVE_ROLE_REQUEST", access.ResourceRoleRequest), roleReqHandler.Approve)
	roleReqs.Post("/:id/reject", RequirePermission(access.ResourceManager, access.ActionReject),
		Audited(deps.Audit, "REJECT_ROLE_REQUEST", access.ResourceRoleRequest), roleReqHandler.Reject)

	// Products
	products := api.Group("/products", authn)
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", RequirePermission(access.ResourceProduct, access.ActionCreate),
		Audited(deps.Audit, "CREATE_PRODUCT", access.ResourceProduct), productHandler.Create)
	products.Get("/", RequirePermission(access.ResourceProduct, access.ActionRead), productHandler.List)
	products.Get("/:id", RequirePermission(access.ResourceProduct, access.ActionRead), productHandler.GetByID)
	products.Put("/:id", RequirePermission(access.ResourceProduct, access.ActionUpdate),
		Audited(deps.Audit, "UPDATE_PRODUCT", access.ResourceProduct), productHandler.Update)
	products.Delete("/:id", RequirePermission(access.ResourceProduct, access.ActionDelete),
		Audited(deps.Audit, "DELETE_PRODUCT", access.ResourceProduct), productHandler.Delete)

	// Customers
	customers := api.Group("/customers", authn)
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", RequirePermission(access.ResourceCustomer, access.ActionCreate),
		Audited(deps.Audit, "CREATE_CUSTOMER", access.ResourceCustomer), customerHandler.Create)
	customers.Get("/", RequirePermission(access.ResourceCustomer, access.ActionRead), customerHandler.List)
	customers.Get("/:id", RequirePermission(access.ResourceCustomer, access.ActionRead), customerHandler.GetByID)
	customers.Put("/:id", RequirePermission(access.ResourceCustomer, access.ActionUpdate),
		Audited(deps.Audit, "UPDATE_CUSTOMER", access.ResourceCustomer), customerHandler.Update)

	// Inventory
	invGroup := api.Group("/inventory", authn)
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup.Post("/stock-in", RequirePermission(access.ResourceInventory, access.ActionCreate),
		Audited(deps.Audit, "STOCK_IN", access.ResourceInventory), inventoryHandler.StockIn)
	invGroup.Post("/stock-out", RequirePermission(access.ResourceInventory, access.ActionCreate),
		Audited(deps.Audit, "STOCK_OUT", access.ResourceInventory), inventoryHandler.StockOut)
	invGroup.Post("/adjust", RequirePermission(access.ResourceInventory, access.ActionAdjust),
		Audited(deps.Audit, "ADJUST_STOCK", access.ResourceInventory), inventoryHandler.Adjust)
	invGroup.Get("/", RequirePermission(access.ResourceInventory, access.ActionRead), inventoryHandler.List)
	invGroup.Get("/movements", RequirePermission(access.ResourceInventory, access.ActionRead), inventoryHandler.Movements)

	// Invoices (ventas)
	invoices := api.Group("/invoices", authn)
	invoiceHandler := NewInvoiceHandler(deps.SalesUC, deps.PDFUC)
	invoices.Post("/", RequirePermission(access.ResourceSales, access.ActionCreate),
		Audited(deps.Audit, "CREATE_INVOICE", access.ResourceSales), invoiceHandler.Create)
	invoices.Get("/", RequirePermission(access.ResourceSales, access.ActionRead), invoiceHandler.List)
	invoices.Get("/:id", RequirePermission(access.ResourceSales, access.ActionRead), invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", RequirePermission(access.ResourceSales, access.ActionRead), invoiceHandler.DownloadPDF)
	invoices.Post("/:id/cancel", RequirePermission(access.ResourceSales, access.ActionUpdate),
		Audited(deps.Audit, "CANCEL_INVOICE", access.ResourceSales), invoiceHandler.Cancel)
	invoices.Post("/:id/refund", RequirePermission(access.ResourceSales, access.ActionRefund),
		Audited(deps.Audit, "REFUND_INVOICE", access.ResourceSales), invoiceHandler.Refund)

	// Audit trail
	logs := api.Group("/logs", authn)
	activityHandler := NewActivityHandler(deps.Audit)
	logs.Get("/", RequirePermission(access.ResourceLogs, access.ActionRead), activityHandler.List)
}
