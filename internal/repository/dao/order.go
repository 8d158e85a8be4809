package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("order not found")

type Order struct {
	ID uint `gorm:"primaryKey"`

	Reference string `gorm:"unique;not null"`
	UserID    uint   `gorm:"not null;index"`
	RaffleID  uint   `gorm:"not null"`
	Quantity  int    `gorm:"not null"`

	CheckoutSessionID string `gorm:"not null"`

	Status string `gorm:"not null;default:pending"` // "pending" or "completed"

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type OrderDAO struct {
	db *gorm.DB
}

func NewOrderDAO(db *gorm.DB) *OrderDAO {
	return &OrderDAO{
		db: db,
	}
}

func (d *OrderDAO) Insert(ctx context.Context, order Order) (Order, error) {
	result := d.db.WithContext(ctx).Create(&order)
	if result.Error != nil {
		return Order{}, result.Error
	}

	return order, nil
}

func (d *OrderDAO) FindByID(ctx context.Context, id uint) (Order, error) {
	var order Order

	result := d.db.WithContext(ctx).First(&order, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Order{}, ErrOrderNotFound
		}

		return Order{}, result.Error
	}

	return order, nil
}

func (d *OrderDAO) MarkCompleted(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).
		Model(&Order{}).
		Where("id = ?", id).
		Update("status", "completed")
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

func (d *OrderDAO) ListByUserID(ctx context.Context, userID uint) ([]Order, error) {
	var orders []Order

	result := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders)
	if result.Error != nil {
		return nil, result.Error
	}

	return orders, nil
}
