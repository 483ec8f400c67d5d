package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/RoseMODA/rosema-pos-sub001/internal/application/auth"
	"github.com/RoseMODA/rosema-pos-sub001/internal/application/catalog"
	"github.com/RoseMODA/rosema-pos-sub001/internal/application/crm"
	"github.com/RoseMODA/rosema-pos-sub001/internal/application/sales"
	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/entity"
	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *catalog.ProductUseCase
	CommitSale *sales.CommitSaleUseCase
	ReturnUC   *sales.ReturnUseCase
	PendingUC  *sales.PendingSaleUseCase
	CustomerUC *crm.CustomerUseCase
	AuthUC     *auth.AuthUseCase
	SaleRepo   repository.SaleRepository
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/search", productHandler.Search)
	products.Get("/stock-by-size", productHandler.StockBySize)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	// Sales (protegido)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.CommitSale, deps.SaleRepo)
	salesGroup.Post("/", saleHandler.Commit)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)

	// Returns (protegido)
	returns := protected.Group("/returns")
	returnHandler := NewReturnHandler(deps.ReturnUC)
	returns.Post("/", returnHandler.Process)
	returns.Post("/exchange-line", returnHandler.ExchangeLine)

	// Pending sales (protegido)
	pending := protected.Group("/pending-sales")
	pendingHandler := NewPendingSaleHandler(deps.PendingUC)
	pending.Put("/:slot", pendingHandler.Park)
	pending.Get("/:slot", pendingHandler.Recall)
	pending.Delete("/:slot", pendingHandler.Release)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
}
