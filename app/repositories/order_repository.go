package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/mkhalid-dev/rukhsar-storefront/app/models"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByCode(ctx context.Context, orderCode string) (*models.Order, error)
	GetAllOrders(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status int) error
}

type gormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

// Create persists the order together with its items and customer in
// one transaction, so a half-written order never becomes visible.
func (r *gormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("OrderItems", "Customer").Create(order).Error; err != nil {
			return err
		}
		for i := range order.OrderItems {
			order.OrderItems[i].OrderID = order.ID
		}
		if len(order.OrderItems) > 0 {
			if err := tx.Create(&order.OrderItems).Error; err != nil {
				return err
			}
		}
		if order.Customer != nil {
			order.Customer.OrderID = order.ID
			if err := tx.Create(order.Customer).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *gormOrderRepository) FindByCode(ctx context.Context, orderCode string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("OrderItems").
		Preload("Customer").
		First(&order, "order_code = ?", orderCode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("OrderItems").
		Preload("Customer").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *gormOrderRepository) UpdateStatus(ctx context.Context, orderID string, status int) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}).Error
}
