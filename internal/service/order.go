package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hearthside/events-api/internal/domain"
	"github.com/hearthside/events-api/internal/pkg/payments"
	"github.com/hearthside/events-api/internal/repository"
)

var (
	ErrOrderNotFound     = repository.ErrOrderNotFound
	ErrOrderForbidden    = errors.New("order belongs to another user")
	ErrPaymentIncomplete = errors.New("payment has not settled")
	ErrTicketNumbering   = errors.New("could not assign ticket numbers, try again")
)

// issueAttempts bounds the numbering retry loop. Two concurrent issuances
// for the same raffle can compute the same next number; the unique index
// rejects the loser, which recomputes and retries.
const issueAttempts = 3

type OrderRepository interface {
	Create(ctx context.Context, order domain.Order) (domain.Order, error)
	FindByID(ctx context.Context, id uint) (domain.Order, error)
	MarkCompleted(ctx context.Context, id uint) error
	ListByUserID(ctx context.Context, userID uint) ([]domain.Order, error)
}

type IssuerTicketRepository interface {
	NextNumber(ctx context.Context, raffleID uint) (int, error)
	CreateBatch(ctx context.Context, tickets []domain.Ticket) ([]domain.Ticket, error)
	FindByOrderID(ctx context.Context, orderID uint) ([]domain.Ticket, error)
}

type PaymentProvider interface {
	CreateCheckoutSession(ctx context.Context, in payments.CheckoutParams) (payments.CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, id string) (payments.CheckoutSession, error)
}

type OrderService struct {
	repo     OrderRepository
	tickets  IssuerTicketRepository
	payments PaymentProvider
}

func NewOrderService(repo OrderRepository, tickets IssuerTicketRepository, provider PaymentProvider) *OrderService {
	return &OrderService{
		repo:     repo,
		tickets:  tickets,
		payments: provider,
	}
}

// CreateCheckout opens a Stripe checkout session for quantity tickets and
// records a pending order carrying the session id.
func (s *OrderService) CreateCheckout(ctx context.Context, userID, raffleID uint, quantity int) (domain.Order, error) {
	sess, err := s.payments.CreateCheckoutSession(ctx, payments.CheckoutParams{
		UserID:   userID,
		RaffleID: raffleID,
		Quantity: quantity,
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.payments.CreateCheckoutSession -> %w", err)
	}

	order, err := s.repo.Create(ctx, domain.Order{
		Reference:         uuid.NewString(),
		UserID:            userID,
		RaffleID:          raffleID,
		Quantity:          quantity,
		CheckoutSessionID: sess.ID,
		Status:            domain.OrderStatusPending,
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	order.CheckoutURL = sess.URL

	return order, nil
}

// IssueTickets converts a paid order into sequentially numbered tickets.
// Re-invoking it on an already-issued order returns the existing tickets
// without writing anything.
func (s *OrderService) IssueTickets(ctx context.Context, userID, orderID uint) ([]domain.Ticket, domain.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domain.Order{}, ErrOrderNotFound
		}

		return nil, domain.Order{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if order.UserID != userID {
		return nil, domain.Order{}, ErrOrderForbidden
	}

	existing, err := s.tickets.FindByOrderID(ctx, order.ID)
	if err != nil {
		return nil, domain.Order{}, fmt.Errorf("s.tickets.FindByOrderID -> %w", err)
	}
	if len(existing) > 0 {
		return existing, order, nil
	}

	sess, err := s.payments.GetCheckoutSession(ctx, order.CheckoutSessionID)
	if err != nil {
		return nil, domain.Order{}, fmt.Errorf("s.payments.GetCheckoutSession -> %w", err)
	}
	if sess.PaymentStatus != payments.StatusPaid {
		return nil, domain.Order{}, ErrPaymentIncomplete
	}

	for attempt := 0; attempt < issueAttempts; attempt++ {
		next, err := s.tickets.NextNumber(ctx, order.RaffleID)
		if err != nil {
			return nil, domain.Order{}, fmt.Errorf("s.tickets.NextNumber -> %w", err)
		}

		batch := make([]domain.Ticket, order.Quantity)
		for i := range batch {
			batch[i] = domain.Ticket{
				OrderID:      order.ID,
				OwnerID:      order.UserID,
				RaffleID:     order.RaffleID,
				TicketNumber: next + i,
				Status:       domain.TicketStatusActive,
			}
		}

		created, err := s.tickets.CreateBatch(ctx, batch)
		if errors.Is(err, repository.ErrTicketNumberTaken) {
			continue
		}
		if err != nil {
			return nil, domain.Order{}, fmt.Errorf("s.tickets.CreateBatch -> %w", err)
		}

		if err = s.repo.MarkCompleted(ctx, order.ID); err != nil {
			return nil, domain.Order{}, fmt.Errorf("s.repo.MarkCompleted -> %w", err)
		}
		order.Status = domain.OrderStatusCompleted

		return created, order, nil
	}

	return nil, domain.Order{}, ErrTicketNumbering
}

func (s *OrderService) GetOrders(ctx context.Context, userID uint) ([]domain.Order, error) {
	orders, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByUserID -> %w", err)
	}

	return orders, nil
}
