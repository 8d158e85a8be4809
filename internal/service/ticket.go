package service

import (
	"context"
	"fmt"

	"github.com/hearthside/events-api/internal/domain"
)

type OwnerTicketRepository interface {
	FindByOwnerID(ctx context.Context, ownerID uint) ([]domain.Ticket, error)
}

type TicketService struct {
	repo OwnerTicketRepository
}

func NewTicketService(repo OwnerTicketRepository) *TicketService {
	return &TicketService{
		repo: repo,
	}
}

func (s *TicketService) GetUserTickets(ctx context.Context, userID uint) ([]domain.Ticket, error) {
	tickets, err := s.repo.FindByOwnerID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByOwnerID -> %w", err)
	}

	return tickets, nil
}
