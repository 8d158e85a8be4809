package repository

import (
	"context"
	"fmt"

	"github.com/hearthside/events-api/internal/domain"
	"github.com/hearthside/events-api/internal/repository/dao"
)

var ErrOrderNotFound = dao.ErrOrderNotFound

type OrderDAO interface {
	Insert(ctx context.Context, order dao.Order) (dao.Order, error)
	FindByID(ctx context.Context, id uint) (dao.Order, error)
	MarkCompleted(ctx context.Context, id uint) error
	ListByUserID(ctx context.Context, userID uint) ([]dao.Order, error)
}

type OrderRepository struct {
	dao OrderDAO
}

func NewOrderRepository(dao OrderDAO) *OrderRepository {
	return &OrderRepository{
		dao: dao,
	}
}

func (r *OrderRepository) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	created, err := r.dao.Insert(ctx, dao.Order{
		Reference:         order.Reference,
		UserID:            order.UserID,
		RaffleID:          order.RaffleID,
		Quantity:          order.Quantity,
		CheckoutSessionID: order.CheckoutSessionID,
		Status:            order.Status,
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint) (domain.Order, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *OrderRepository) MarkCompleted(ctx context.Context, id uint) error {
	if err := r.dao.MarkCompleted(ctx, id); err != nil {
		return fmt.Errorf("r.dao.MarkCompleted -> %w", err)
	}

	return nil
}

func (r *OrderRepository) ListByUserID(ctx context.Context, userID uint) ([]domain.Order, error) {
	found, err := r.dao.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListByUserID -> %w", err)
	}

	orders := make([]domain.Order, len(found))
	for i, o := range found {
		orders[i] = r.daoToDomain(o)
	}

	return orders, nil
}

func (r *OrderRepository) daoToDomain(o dao.Order) domain.Order {
	return domain.Order{
		ID:                o.ID,
		Reference:         o.Reference,
		UserID:            o.UserID,
		RaffleID:          o.RaffleID,
		Quantity:          o.Quantity,
		CheckoutSessionID: o.CheckoutSessionID,
		Status:            o.Status,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}
