package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthside/events-api/internal/domain"
	"github.com/hearthside/events-api/internal/pkg/payments"
	"github.com/hearthside/events-api/internal/repository"
)

type mockOrderRepo struct {
	orders map[uint]domain.Order
	nextID uint
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{
		orders: make(map[uint]domain.Order),
		nextID: 1,
	}
}

func (m *mockOrderRepo) Create(_ context.Context, order domain.Order) (domain.Order, error) {
	order.ID = m.nextID
	m.nextID++
	m.orders[order.ID] = order

	return order, nil
}

func (m *mockOrderRepo) FindByID(_ context.Context, id uint) (domain.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return domain.Order{}, repository.ErrOrderNotFound
	}

	return order, nil
}

func (m *mockOrderRepo) MarkCompleted(_ context.Context, id uint) error {
	order, ok := m.orders[id]
	if !ok {
		return repository.ErrOrderNotFound
	}

	order.Status = domain.OrderStatusCompleted
	m.orders[id] = order

	return nil
}

func (m *mockOrderRepo) ListByUserID(_ context.Context, userID uint) ([]domain.Order, error) {
	var orders []domain.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}

	return orders, nil
}

// mockIssuerTickets keeps the (raffle, number) uniqueness the real store
// enforces, and can be told to reject a number of inserts so the retry path
// is exercised.
type mockIssuerTickets struct {
	tickets   []domain.Ticket
	nextID    uint
	conflicts int
	inserts   int
}

func newMockIssuerTickets() *mockIssuerTickets {
	return &mockIssuerTickets{
		nextID: 1,
	}
}

func (m *mockIssuerTickets) NextNumber(_ context.Context, raffleID uint) (int, error) {
	max := 0
	for _, t := range m.tickets {
		if t.RaffleID == raffleID && t.TicketNumber > max {
			max = t.TicketNumber
		}
	}

	return max + 1, nil
}

func (m *mockIssuerTickets) CreateBatch(_ context.Context, batch []domain.Ticket) ([]domain.Ticket, error) {
	m.inserts++
	if m.conflicts > 0 {
		m.conflicts--

		return nil, repository.ErrTicketNumberTaken
	}

	for _, t := range batch {
		for _, existing := range m.tickets {
			if existing.RaffleID == t.RaffleID && existing.TicketNumber == t.TicketNumber {
				return nil, repository.ErrTicketNumberTaken
			}
		}
	}

	created := make([]domain.Ticket, len(batch))
	for i, t := range batch {
		t.ID = m.nextID
		m.nextID++
		m.tickets = append(m.tickets, t)
		created[i] = t
	}

	return created, nil
}

func (m *mockIssuerTickets) FindByOrderID(_ context.Context, orderID uint) ([]domain.Ticket, error) {
	var found []domain.Ticket
	for _, t := range m.tickets {
		if t.OrderID == orderID {
			found = append(found, t)
		}
	}

	return found, nil
}

type mockPaymentProvider struct {
	paymentStatus string
	sessions      int
}

func (m *mockPaymentProvider) CreateCheckoutSession(_ context.Context, _ payments.CheckoutParams) (payments.CheckoutSession, error) {
	m.sessions++

	return payments.CheckoutSession{
		ID:  "cs_test_123",
		URL: "https://checkout.stripe.com/c/pay/cs_test_123",
	}, nil
}

func (m *mockPaymentProvider) GetCheckoutSession(_ context.Context, id string) (payments.CheckoutSession, error) {
	return payments.CheckoutSession{
		ID:            id,
		PaymentStatus: m.paymentStatus,
	}, nil
}

func TestOrderService_CreateCheckout(t *testing.T) {
	repo := newMockOrderRepo()
	provider := &mockPaymentProvider{}
	svc := NewOrderService(repo, newMockIssuerTickets(), provider)

	order, err := svc.CreateCheckout(context.Background(), 7, 3, 2)

	require.NoError(t, err)
	assert.Equal(t, 1, provider.sessions)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, uint(7), order.UserID)
	assert.Equal(t, uint(3), order.RaffleID)
	assert.Equal(t, 2, order.Quantity)
	assert.NotEmpty(t, order.Reference)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_123", order.CheckoutURL)
}

func TestOrderService_IssueTickets(t *testing.T) {
	newPaidOrder := func(repo *mockOrderRepo, userID, raffleID uint, quantity int) domain.Order {
		order, _ := repo.Create(context.Background(), domain.Order{
			Reference:         "ref",
			UserID:            userID,
			RaffleID:          raffleID,
			Quantity:          quantity,
			CheckoutSessionID: "cs_test_123",
			Status:            domain.OrderStatusPending,
		})

		return order
	}

	t.Run("issues sequentially numbered tickets", func(t *testing.T) {
		repo := newMockOrderRepo()
		tickets := newMockIssuerTickets()
		svc := NewOrderService(repo, tickets, &mockPaymentProvider{paymentStatus: payments.StatusPaid})
		order := newPaidOrder(repo, 1, 5, 3)

		issued, updated, err := svc.IssueTickets(context.Background(), 1, order.ID)

		require.NoError(t, err)
		require.Len(t, issued, 3)
		for i, ticket := range issued {
			assert.Equal(t, i+1, ticket.TicketNumber)
			assert.Equal(t, domain.TicketStatusActive, ticket.Status)
			assert.Equal(t, uint(5), ticket.RaffleID)
			assert.Equal(t, uint(1), ticket.OwnerID)
		}
		assert.Equal(t, domain.OrderStatusCompleted, updated.Status)
	})

	t.Run("continues numbering after earlier orders", func(t *testing.T) {
		repo := newMockOrderRepo()
		tickets := newMockIssuerTickets()
		svc := NewOrderService(repo, tickets, &mockPaymentProvider{paymentStatus: payments.StatusPaid})

		first := newPaidOrder(repo, 1, 5, 2)
		_, _, err := svc.IssueTickets(context.Background(), 1, first.ID)
		require.NoError(t, err)

		second := newPaidOrder(repo, 2, 5, 2)
		issued, _, err := svc.IssueTickets(context.Background(), 2, second.ID)

		require.NoError(t, err)
		require.Len(t, issued, 2)
		assert.Equal(t, 3, issued[0].TicketNumber)
		assert.Equal(t, 4, issued[1].TicketNumber)
	})

	t.Run("is idempotent", func(t *testing.T) {
		repo := newMockOrderRepo()
		tickets := newMockIssuerTickets()
		svc := NewOrderService(repo, tickets, &mockPaymentProvider{paymentStatus: payments.StatusPaid})
		order := newPaidOrder(repo, 1, 5, 2)

		first, _, err := svc.IssueTickets(context.Background(), 1, order.ID)
		require.NoError(t, err)
		insertsAfterFirst := tickets.inserts

		second, _, err := svc.IssueTickets(context.Background(), 1, order.ID)

		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, insertsAfterFirst, tickets.inserts, "re-issuing must not write")
	})

	t.Run("rejects an unknown order", func(t *testing.T) {
		svc := NewOrderService(newMockOrderRepo(), newMockIssuerTickets(), &mockPaymentProvider{paymentStatus: payments.StatusPaid})

		_, _, err := svc.IssueTickets(context.Background(), 1, 99)

		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("rejects another user's order", func(t *testing.T) {
		repo := newMockOrderRepo()
		svc := NewOrderService(repo, newMockIssuerTickets(), &mockPaymentProvider{paymentStatus: payments.StatusPaid})
		order := newPaidOrder(repo, 1, 5, 1)

		_, _, err := svc.IssueTickets(context.Background(), 2, order.ID)

		assert.ErrorIs(t, err, ErrOrderForbidden)
	})

	t.Run("rejects an unpaid order", func(t *testing.T) {
		repo := newMockOrderRepo()
		tickets := newMockIssuerTickets()
		svc := NewOrderService(repo, tickets, &mockPaymentProvider{paymentStatus: "unpaid"})
		order := newPaidOrder(repo, 1, 5, 1)

		_, _, err := svc.IssueTickets(context.Background(), 1, order.ID)

		assert.ErrorIs(t, err, ErrPaymentIncomplete)
		assert.Zero(t, tickets.inserts)
	})

	t.Run("retries numbering after a conflict", func(t *testing.T) {
		repo := newMockOrderRepo()
		tickets := newMockIssuerTickets()
		tickets.conflicts = 1
		svc := NewOrderService(repo, tickets, &mockPaymentProvider{paymentStatus: payments.StatusPaid})
		order := newPaidOrder(repo, 1, 5, 2)

		issued, _, err := svc.IssueTickets(context.Background(), 1, order.ID)

		require.NoError(t, err)
		assert.Len(t, issued, 2)
		assert.Equal(t, 2, tickets.inserts)
	})

	t.Run("gives up after repeated conflicts", func(t *testing.T) {
		repo := newMockOrderRepo()
		tickets := newMockIssuerTickets()
		tickets.conflicts = issueAttempts
		svc := NewOrderService(repo, tickets, &mockPaymentProvider{paymentStatus: payments.StatusPaid})
		order := newPaidOrder(repo, 1, 5, 2)

		_, _, err := svc.IssueTickets(context.Background(), 1, order.ID)

		assert.ErrorIs(t, err, ErrTicketNumbering)
	})
}
