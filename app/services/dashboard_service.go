package services

import (
	"time"

	"github.com/muthuvel/santhai/app/models"
	"github.com/muthuvel/santhai/app/repositories"
	"github.com/muthuvel/santhai/pkg/logger"
	"gorm.io/gorm"
)

const lowStockThreshold = 2.0

// DashboardStats is everything the admin landing page shows.
type DashboardStats struct {
	TotalOrders   int64 `json:"total_orders"`
	PendingOrders int64 `json:"pending_orders"`
	TotalProducts int64 `json:"total_products"`
	TotalCategories int64 `json:"total_categories"`
	TotalCustomers  int64 `json:"total_customers"`

	TodaySales float64 `json:"today_sales"`

	RecentOrders []models.Order   `json:"recent_orders"`
	LowStock     []models.Product `json:"low_stock"`
}

// DashboardService aggregates the counters for the admin dashboard.
type DashboardService struct {
	orders     *repositories.OrderRepository
	products   *repositories.ProductRepository
	categories *repositories.CategoryRepository
	users      *repositories.UserRepository
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{
		orders:     repositories.NewOrderRepository(db),
		products:   repositories.NewProductRepository(db),
		categories: repositories.NewCategoryRepository(db),
		users:      repositories.NewUserRepository(db),
	}
}

// Stats gathers the dashboard numbers. Individual counter failures are
// logged and leave a zero; the dashboard renders with what it has.
func (s *DashboardService) Stats() DashboardStats {
	var stats DashboardStats
	var err error

	if stats.TotalOrders, err = s.orders.Count(); err != nil {
		logger.Error("dashboard: order count", "error", err)
	}
	if stats.PendingOrders, err = s.orders.CountByStatus(models.OrderStatusPending); err != nil {
		logger.Error("dashboard: pending count", "error", err)
	}
	if stats.TotalProducts, err = s.products.Count(); err != nil {
		logger.Error("dashboard: product count", "error", err)
	}
	if stats.TotalCategories, err = s.categories.Count(); err != nil {
		logger.Error("dashboard: category count", "error", err)
	}
	if stats.TotalCustomers, err = s.users.CountByRole(models.RoleCustomer); err != nil {
		logger.Error("dashboard: customer count", "error", err)
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if stats.TodaySales, err = s.orders.PaidTotalSince(midnight); err != nil {
		logger.Error("dashboard: today's sales", "error", err)
	}

	if stats.RecentOrders, err = s.orders.Recent(10); err != nil {
		logger.Error("dashboard: recent orders", "error", err)
	}
	if stats.LowStock, err = s.products.LowStock(lowStockThreshold, 10); err != nil {
		logger.Error("dashboard: low stock", "error", err)
	}

	return stats
}
