package repository

import (
	"context"
	"time"

	"bookstore-service/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderRepository defines the interface for the order ledger.
type OrderRepository interface {
	CreateWithItems(ctx context.Context, order *models.Order, items []models.OrderItem) error
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	FindByUser(ctx context.Context, email string) ([]models.Order, error)
	FindItem(ctx context.Context, itemID uint) (*models.OrderItem, error)
	MarkReturnRequested(ctx context.Context, itemID uint, at time.Time) error
}

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository.
func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

// CreateWithItems writes the header and its items in one transaction. On
// success order.Items holds the persisted items.
func (r *GormOrderRepository) CreateWithItems(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		order.Items = items
		return nil
	})
}

// FindByID loads an order with its items.
func (r *GormOrderRepository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_item_id ASC")
		}).
		First(&order, "order_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByUser lists a user's orders, newest first, without items.
func (r *GormOrderRepository) FindByUser(ctx context.Context, email string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("user_email = ?", email).
		Order("created_at DESC, order_id DESC").
		Find(&orders).Error
	return orders, err
}

func (r *GormOrderRepository) FindItem(ctx context.Context, itemID uint) (*models.OrderItem, error) {
	var item models.OrderItem
	if err := r.db.WithContext(ctx).First(&item, "order_item_id = ?", itemID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// MarkReturnRequested flags an item for return. It only matches items that
// are not flagged yet, so a second request reports ErrRecordNotFound.
func (r *GormOrderRepository) MarkReturnRequested(ctx context.Context, itemID uint, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Where("order_item_id = ? AND return_requested = ?", itemID, false).
		Updates(map[string]interface{}{
			"return_requested": true,
			"return_date":      at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
