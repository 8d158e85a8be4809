package repository

import (
	"context"
	"fmt"

	"github.com/hearthside/events-api/internal/domain"
	"github.com/hearthside/events-api/internal/repository/dao"
)

var (
	ErrTicketNotFound    = dao.ErrTicketNotFound
	ErrTicketNumberTaken = dao.ErrTicketNumberTaken
)

type TicketDAO interface {
	NextNumber(ctx context.Context, raffleID uint) (int, error)
	InsertBatch(ctx context.Context, tickets []dao.Ticket) ([]dao.Ticket, error)
	FindByOrderID(ctx context.Context, orderID uint) ([]dao.Ticket, error)
	FindByOwnerID(ctx context.Context, ownerID uint) ([]dao.Ticket, error)
	FindOwnedActive(ctx context.Context, ownerID, raffleID uint, ids []uint) ([]dao.Ticket, error)
	Allocate(ctx context.Context, ids []uint, artistID uint) (int64, error)
	FindAllocated(ctx context.Context, raffleID, artistID uint) ([]dao.Ticket, error)
	FindByID(ctx context.Context, id uint) (dao.Ticket, error)
}

type TicketRepository struct {
	dao TicketDAO
}

func NewTicketRepository(dao TicketDAO) *TicketRepository {
	return &TicketRepository{
		dao: dao,
	}
}

func (r *TicketRepository) NextNumber(ctx context.Context, raffleID uint) (int, error) {
	next, err := r.dao.NextNumber(ctx, raffleID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.NextNumber -> %w", err)
	}

	return next, nil
}

func (r *TicketRepository) CreateBatch(ctx context.Context, tickets []domain.Ticket) ([]domain.Ticket, error) {
	daoTickets := make([]dao.Ticket, len(tickets))
	for i, t := range tickets {
		daoTickets[i] = dao.Ticket{
			OrderID:      t.OrderID,
			OwnerID:      t.OwnerID,
			RaffleID:     t.RaffleID,
			ArtistID:     t.ArtistID,
			TicketNumber: t.TicketNumber,
			Status:       t.Status,
		}
	}

	created, err := r.dao.InsertBatch(ctx, daoTickets)
	if err != nil {
		return nil, fmt.Errorf("r.dao.InsertBatch -> %w", err)
	}

	return r.daosToDomain(created), nil
}

func (r *TicketRepository) FindByOrderID(ctx context.Context, orderID uint) ([]domain.Ticket, error) {
	found, err := r.dao.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByOrderID -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *TicketRepository) FindByOwnerID(ctx context.Context, ownerID uint) ([]domain.Ticket, error) {
	found, err := r.dao.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByOwnerID -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *TicketRepository) FindOwnedActive(ctx context.Context, ownerID, raffleID uint, ids []uint) ([]domain.Ticket, error) {
	found, err := r.dao.FindOwnedActive(ctx, ownerID, raffleID, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindOwnedActive -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *TicketRepository) Allocate(ctx context.Context, ids []uint, artistID uint) (int64, error) {
	moved, err := r.dao.Allocate(ctx, ids, artistID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Allocate -> %w", err)
	}

	return moved, nil
}

func (r *TicketRepository) FindAllocated(ctx context.Context, raffleID, artistID uint) ([]domain.Ticket, error) {
	found, err := r.dao.FindAllocated(ctx, raffleID, artistID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllocated -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *TicketRepository) FindByID(ctx context.Context, id uint) (domain.Ticket, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *TicketRepository) daosToDomain(tickets []dao.Ticket) []domain.Ticket {
	result := make([]domain.Ticket, len(tickets))
	for i, t := range tickets {
		result[i] = r.daoToDomain(t)
	}

	return result
}

func (r *TicketRepository) daoToDomain(t dao.Ticket) domain.Ticket {
	return domain.Ticket{
		ID:           t.ID,
		OrderID:      t.OrderID,
		OwnerID:      t.OwnerID,
		RaffleID:     t.RaffleID,
		ArtistID:     t.ArtistID,
		TicketNumber: t.TicketNumber,
		Status:       t.Status,
		CreatedAt:    t.CreatedAt,
	}
}
