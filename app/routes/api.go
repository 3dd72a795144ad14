// Package routes registers every HTTP endpoint of the Santhai store.
package routes

import (
	"github.com/muthuvel/santhai/app/controllers"
	"github.com/muthuvel/santhai/app/models"
	"github.com/muthuvel/santhai/app/services"
	"github.com/muthuvel/santhai/pkg/database"
	"github.com/muthuvel/santhai/pkg/logger"
	"github.com/muthuvel/santhai/pkg/metrics"
	"github.com/muthuvel/santhai/pkg/middleware"
	"github.com/muthuvel/santhai/pkg/rbac"
	"github.com/muthuvel/santhai/pkg/router"
	"github.com/muthuvel/santhai/pkg/session"
)

// RegisterAPI wires services, controllers and middleware onto the router.
// Anonymous carts live in the session, so the session middleware wraps the
// whole /api group and MaybeAuth makes the token optional on the storefront.
func RegisterAPI(r *router.Router) {
	db := database.DB

	settings := services.NewSettingsService(db)
	catalog := services.NewCatalogService(db)
	carts := services.NewCartService(db, settings)
	checkout := services.NewCheckoutService(db, settings)
	invoices := services.NewInvoiceService(settings)
	orders := services.NewOrderService(db, invoices)
	notifier := services.NewNotifierService(db, settings)
	campaigns := services.NewCampaignService(db, settings, notifier)
	users := services.NewUserService(db)
	dashboard := services.NewDashboardService(db)

	authCtrl := controllers.NewAuthController(db, carts)
	catalogCtrl := controllers.NewCatalogController(catalog, settings)
	cartCtrl := controllers.NewCartController(carts, catalog)
	checkoutCtrl := controllers.NewCheckoutController(checkout, carts, users)
	orderCtrl := controllers.NewOrderController(orders)
	profileCtrl := controllers.NewProfileController(users)
	dashboardCtrl := controllers.NewDashboardController(dashboard)
	adminProducts := controllers.NewAdminProductController(catalog)
	adminCategories := controllers.NewAdminCategoryController(catalog)
	adminOrders := controllers.NewAdminOrderController(orders, db)
	adminUsers := controllers.NewAdminUserController(users)
	adminSettings := controllers.NewAdminSettingsController(settings, notifier)
	adminCampaigns := controllers.NewAdminCampaignController(campaigns)

	r.Get("/metrics", "metrics", metrics.Handler())

	api := r.Group("/api", session.Middleware(session.DefaultOptions()), middleware.MaybeAuth)

	// ─── Storefront ───────────────────────────────────────────────────────

	api.Get("/home", "store.home", catalogCtrl.Home)
	api.Get("/categories", "store.categories", catalogCtrl.Categories)
	api.Get("/products", "store.products", catalogCtrl.Products)
	api.Get("/products/{id}", "store.products.show", catalogCtrl.Show)

	if gqlCtrl, err := controllers.NewGraphQLController(catalog); err != nil {
		logger.Error("graphql schema build failed", "error", err)
	} else {
		api.Post("/graphql", "store.graphql", gqlCtrl.Query)
	}

	api.Post("/register", "auth.register", authCtrl.Register, rbac.Guest)
	api.Post("/login", "auth.login", authCtrl.Login, rbac.Guest)

	// Cart works for guests (session) and customers (database).
	api.Get("/cart", "cart.show", cartCtrl.Show)
	api.Post("/cart", "cart.add", cartCtrl.Add)

	// ─── Authenticated ────────────────────────────────────────────────────

	account := api.Group("", middleware.Auth)
	account.Post("/logout", "auth.logout", authCtrl.Logout)
	account.Get("/me", "auth.me", authCtrl.Me)
	account.Post("/change-password", "auth.password", authCtrl.ChangePassword)

	// {id} is the cart item id, not the product id.
	account.Put("/cart/{id}", "cart.update", cartCtrl.Update)
	account.Delete("/cart/{id}", "cart.remove", cartCtrl.Remove)

	account.Get("/checkout", "checkout.show", checkoutCtrl.Show)
	account.Post("/checkout", "checkout.place", checkoutCtrl.Place)

	account.Get("/orders", "orders.index", orderCtrl.Index)
	account.Get("/orders/{id}", "orders.show", orderCtrl.Show)
	account.Get("/orders/{id}/invoice", "orders.invoice", orderCtrl.Invoice)

	account.Put("/profile", "profile.update", profileCtrl.Update)
	account.Get("/addresses", "profile.addresses", profileCtrl.Addresses)
	account.Post("/addresses", "profile.addresses.add", profileCtrl.AddAddress)

	// ─── Admin ────────────────────────────────────────────────────────────

	// Storekeepers run the day-to-day: catalog, orders, dashboard.
	staff := api.Group("/admin", middleware.Auth, rbac.HasRole(models.RoleAdmin, models.RoleStorekeeper))
	staff.Get("/dashboard", "admin.dashboard", dashboardCtrl.Stats)
	staff.Get("/orders/feed", "admin.orders.feed", dashboardCtrl.Feed)
	staff.Get("/orders/feed/sse", "admin.orders.feed_sse", dashboardCtrl.FeedSSE)

	staff.Get("/products", "admin.products.index", adminProducts.Index)
	staff.Post("/products", "admin.products.create", adminProducts.Create)
	staff.Get("/products/{id}", "admin.products.show", adminProducts.Show)
	staff.Put("/products/{id}", "admin.products.update", adminProducts.Update)
	staff.Delete("/products/{id}", "admin.products.delete", adminProducts.Delete)
	staff.Post("/products/{id}/toggle", "admin.products.toggle", adminProducts.Toggle)
	staff.Post("/products/{id}/duplicate", "admin.products.duplicate", adminProducts.Duplicate)
	staff.Post("/products/bulk", "admin.products.bulk", adminProducts.Bulk)

	staff.Get("/categories", "admin.categories.index", adminCategories.Index)
	staff.Post("/categories", "admin.categories.create", adminCategories.Create)
	staff.Put("/categories/{id}", "admin.categories.update", adminCategories.Update)
	staff.Delete("/categories/{id}", "admin.categories.delete", adminCategories.Delete)

	staff.Get("/orders", "admin.orders.index", adminOrders.Index)
	staff.Get("/orders/{id}", "admin.orders.show", adminOrders.Show)
	staff.Put("/orders/{id}/status", "admin.orders.status", adminOrders.UpdateStatus)
	staff.Put("/orders/{id}/payment", "admin.orders.payment", adminOrders.UpdatePayment)
	staff.Put("/orders/{id}/tracking", "admin.orders.tracking", adminOrders.UpdateTracking)
	staff.Get("/orders/{id}/invoice", "admin.orders.invoice", adminOrders.Invoice)
	staff.Post("/orders/{id}/resend", "admin.orders.resend", adminOrders.Resend)

	// Store configuration, staff accounts and marketing stay admin-only.
	admin := api.Group("/admin", middleware.Auth, rbac.HasRole(models.RoleAdmin))
	admin.Get("/users", "admin.users.index", adminUsers.Index)
	admin.Post("/users", "admin.users.create", adminUsers.Create)
	admin.Put("/users/{id}/active", "admin.users.active", adminUsers.SetActive)

	admin.Get("/settings", "admin.settings.show", adminSettings.Show)
	admin.Put("/settings", "admin.settings.update", adminSettings.Update)
	admin.Post("/settings/test-email", "admin.settings.test_email", adminSettings.TestEmail)
	admin.Post("/settings/test-whatsapp", "admin.settings.test_whatsapp", adminSettings.TestWhatsApp)

	admin.Get("/campaigns", "admin.campaigns.index", adminCampaigns.Index)
	admin.Post("/campaigns", "admin.campaigns.create", adminCampaigns.Create)
	admin.Get("/campaigns/{id}", "admin.campaigns.show", adminCampaigns.Show)
	admin.Post("/campaigns/{id}/send", "admin.campaigns.send", adminCampaigns.Send)
}
