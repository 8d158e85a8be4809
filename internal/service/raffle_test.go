package service

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthside/events-api/internal/domain"
	"github.com/hearthside/events-api/internal/repository"
)

type mockRaffleRepo struct {
	raffles      map[uint]domain.Raffle
	memberships  map[string]domain.RaffleArtist
	nextRaffleID uint
	nextArtistID uint
}

func newMockRaffleRepo() *mockRaffleRepo {
	return &mockRaffleRepo{
		raffles:      make(map[uint]domain.Raffle),
		memberships:  make(map[string]domain.RaffleArtist),
		nextRaffleID: 1,
		nextArtistID: 1,
	}
}

func membershipKey(raffleID, artistID uint) string {
	return fmt.Sprintf("%v/%v", raffleID, artistID)
}

func (m *mockRaffleRepo) Create(_ context.Context, raffle domain.Raffle) (domain.Raffle, error) {
	raffle.ID = m.nextRaffleID
	m.nextRaffleID++
	m.raffles[raffle.ID] = raffle

	return raffle, nil
}

func (m *mockRaffleRepo) FindByID(_ context.Context, id uint) (domain.Raffle, error) {
	raffle, ok := m.raffles[id]
	if !ok {
		return domain.Raffle{}, repository.ErrRaffleNotFound
	}

	return raffle, nil
}

func (m *mockRaffleRepo) List(_ context.Context) ([]domain.Raffle, error) {
	var raffles []domain.Raffle
	for _, r := range m.raffles {
		raffles = append(raffles, r)
	}

	return raffles, nil
}

func (m *mockRaffleRepo) UpdateStatus(_ context.Context, id uint, status string) error {
	raffle, ok := m.raffles[id]
	if !ok {
		return repository.ErrRaffleNotFound
	}

	raffle.Status = status
	m.raffles[id] = raffle

	return nil
}

func (m *mockRaffleRepo) AddArtist(_ context.Context, raffleID uint, artist domain.Artist) (domain.Artist, error) {
	artist.ID = m.nextArtistID
	m.nextArtistID++
	m.memberships[membershipKey(raffleID, artist.ID)] = domain.RaffleArtist{
		RaffleID: raffleID,
		ArtistID: artist.ID,
	}

	return artist, nil
}

func (m *mockRaffleRepo) FindMembership(_ context.Context, raffleID, artistID uint) (domain.RaffleArtist, error) {
	membership, ok := m.memberships[membershipKey(raffleID, artistID)]
	if !ok {
		return domain.RaffleArtist{}, repository.ErrArtistNotEntered
	}

	return membership, nil
}

func (m *mockRaffleRepo) RecordWinner(_ context.Context, raffleID, artistID, ticketID uint, selectedAt time.Time) error {
	key := membershipKey(raffleID, artistID)
	membership, ok := m.memberships[key]
	if !ok {
		return repository.ErrArtistNotEntered
	}

	membership.WinnerTicketID = &ticketID
	membership.WinnerSelectedAt = &selectedAt
	m.memberships[key] = membership

	return nil
}

func (m *mockRaffleRepo) ListMemberships(_ context.Context, raffleID uint) ([]domain.RaffleArtist, error) {
	var memberships []domain.RaffleArtist
	for _, membership := range m.memberships {
		if membership.RaffleID == raffleID {
			memberships = append(memberships, membership)
		}
	}

	return memberships, nil
}

type mockAllocatorTickets struct {
	tickets map[uint]domain.Ticket
}

func newMockAllocatorTickets(tickets ...domain.Ticket) *mockAllocatorTickets {
	m := &mockAllocatorTickets{
		tickets: make(map[uint]domain.Ticket),
	}
	for _, t := range tickets {
		m.tickets[t.ID] = t
	}

	return m
}

func (m *mockAllocatorTickets) FindOwnedActive(_ context.Context, ownerID, raffleID uint, ids []uint) ([]domain.Ticket, error) {
	var found []domain.Ticket
	for _, id := range ids {
		t, ok := m.tickets[id]
		if ok && t.OwnerID == ownerID && t.RaffleID == raffleID && t.Status == domain.TicketStatusActive {
			found = append(found, t)
		}
	}

	return found, nil
}

func (m *mockAllocatorTickets) Allocate(_ context.Context, ids []uint, artistID uint) (int64, error) {
	var moved int64
	for _, id := range ids {
		t, ok := m.tickets[id]
		if !ok || t.Status != domain.TicketStatusActive {
			continue
		}

		artist := artistID
		t.ArtistID = &artist
		t.Status = domain.TicketStatusUsed
		m.tickets[id] = t
		moved++
	}

	return moved, nil
}

func (m *mockAllocatorTickets) FindAllocated(_ context.Context, raffleID, artistID uint) ([]domain.Ticket, error) {
	var found []domain.Ticket
	for _, t := range m.tickets {
		if t.RaffleID == raffleID && t.ArtistID != nil && *t.ArtistID == artistID {
			found = append(found, t)
		}
	}

	return found, nil
}

type mockUsers struct {
	users map[uint]domain.User
}

func (m *mockUsers) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func activeRaffleWithArtist(t *testing.T, repo *mockRaffleRepo) (domain.Raffle, domain.Artist) {
	t.Helper()

	raffle, err := repo.Create(context.Background(), domain.Raffle{
		EventID: 1,
		Name:    "Autumn Fair Raffle",
		Status:  domain.RaffleStatusActive,
	})
	require.NoError(t, err)

	artist, err := repo.AddArtist(context.Background(), raffle.ID, domain.Artist{Name: "The Paper Lanterns"})
	require.NoError(t, err)

	return raffle, artist
}

func activeTicket(id, ownerID uint, number int) domain.Ticket {
	return domain.Ticket{
		ID:           id,
		OrderID:      1,
		OwnerID:      ownerID,
		RaffleID:     1,
		TicketNumber: number,
		Status:       domain.TicketStatusActive,
	}
}

func TestRaffleService_AllocateTickets(t *testing.T) {
	t.Run("allocates every ticket in the set", func(t *testing.T) {
		repo := newMockRaffleRepo()
		raffle, artist := activeRaffleWithArtist(t, repo)
		tickets := newMockAllocatorTickets(
			activeTicket(1, 9, 1),
			activeTicket(2, 9, 2),
		)
		svc := NewRaffleService(repo, tickets, &mockUsers{})

		err := svc.AllocateTickets(context.Background(), 9, raffle.ID, artist.ID, []uint{1, 2})

		require.NoError(t, err)
		allocated, _ := tickets.FindAllocated(context.Background(), raffle.ID, artist.ID)
		assert.Len(t, allocated, 2)
		for _, ticket := range allocated {
			assert.Equal(t, domain.TicketStatusUsed, ticket.Status)
		}
	})

	t.Run("rejects an empty set", func(t *testing.T) {
		repo := newMockRaffleRepo()
		raffle, artist := activeRaffleWithArtist(t, repo)
		svc := NewRaffleService(repo, newMockAllocatorTickets(), &mockUsers{})

		err := svc.AllocateTickets(context.Background(), 9, raffle.ID, artist.ID, nil)

		assert.ErrorIs(t, err, ErrInvalidTicketSet)
	})

	t.Run("rejects an unknown raffle", func(t *testing.T) {
		svc := NewRaffleService(newMockRaffleRepo(), newMockAllocatorTickets(), &mockUsers{})

		err := svc.AllocateTickets(context.Background(), 9, 42, 1, []uint{1})

		assert.ErrorIs(t, err, ErrRaffleNotFound)
	})

	t.Run("rejects a raffle that is not active", func(t *testing.T) {
		repo := newMockRaffleRepo()
		raffle, _ := repo.Create(context.Background(), domain.Raffle{Name: "Draft", Status: domain.RaffleStatusDraft})
		svc := NewRaffleService(repo, newMockAllocatorTickets(), &mockUsers{})

		err := svc.AllocateTickets(context.Background(), 9, raffle.ID, 1, []uint{1})

		assert.ErrorIs(t, err, ErrRaffleNotActive)
	})

	t.Run("rejects an artist outside the raffle", func(t *testing.T) {
		repo := newMockRaffleRepo()
		raffle, _ := activeRaffleWithArtist(t, repo)
		svc := NewRaffleService(repo, newMockAllocatorTickets(), &mockUsers{})

		err := svc.AllocateTickets(context.Background(), 9, raffle.ID, 77, []uint{1})

		assert.ErrorIs(t, err, ErrArtistNotInRaffle)
	})

	t.Run("rejects the whole set when one ticket is spent", func(t *testing.T) {
		repo := newMockRaffleRepo()
		raffle, artist := activeRaffleWithArtist(t, repo)
		spent := activeTicket(2, 9, 2)
		spent.Status = domain.TicketStatusUsed
		tickets := newMockAllocatorTickets(activeTicket(1, 9, 1), spent)
		svc := NewRaffleService(repo, tickets, &mockUsers{})

		err := svc.AllocateTickets(context.Background(), 9, raffle.ID, artist.ID, []uint{1, 2})

		assert.ErrorIs(t, err, ErrInvalidTicketSet)
		remaining, _ := tickets.FindOwnedActive(context.Background(), 9, raffle.ID, []uint{1})
		assert.Len(t, remaining, 1, "the valid ticket must stay unallocated")
	})

	t.Run("rejects tickets owned by someone else", func(t *testing.T) {
		repo := newMockRaffleRepo()
		raffle, artist := activeRaffleWithArtist(t, repo)
		tickets := newMockAllocatorTickets(activeTicket(1, 30, 1))
		svc := NewRaffleService(repo, tickets, &mockUsers{})

		err := svc.AllocateTickets(context.Background(), 9, raffle.ID, artist.ID, []uint{1})

		assert.ErrorIs(t, err, ErrInvalidTicketSet)
	})

	t.Run("rejects tickets issued for another raffle", func(t *testing.T) {
		repo := newMockRaffleRepo()
		_, _ = activeRaffleWithArtist(t, repo)
		other, err := repo.Create(context.Background(), domain.Raffle{
			EventID: 1,
			Name:    "Winter Raffle",
			Status:  domain.RaffleStatusActive,
		})
		require.NoError(t, err)
		otherArtist, err := repo.AddArtist(context.Background(), other.ID, domain.Artist{Name: "The Tin Whistles"})
		require.NoError(t, err)

		// The ticket was minted for raffle 1.
		tickets := newMockAllocatorTickets(activeTicket(1, 9, 1))
		svc := NewRaffleService(repo, tickets, &mockUsers{})

		err = svc.AllocateTickets(context.Background(), 9, other.ID, otherArtist.ID, []uint{1})

		assert.ErrorIs(t, err, ErrInvalidTicketSet)
		pool, _ := tickets.FindAllocated(context.Background(), other.ID, otherArtist.ID)
		assert.Empty(t, pool, "the ticket must not enter the other raffle's pool")
		remaining, _ := tickets.FindOwnedActive(context.Background(), 9, 1, []uint{1})
		assert.Len(t, remaining, 1, "the ticket stays active in its own raffle")
	})
}

func TestRaffleService_SelectWinner(t *testing.T) {
	seededService := func(repo *mockRaffleRepo, tickets *mockAllocatorTickets, users *mockUsers) *RaffleService {
		return NewRaffleService(repo, tickets, users).WithRand(rand.New(rand.NewSource(1)))
	}

	setupAllocated := func(t *testing.T, ownerIDs ...uint) (*mockRaffleRepo, *mockAllocatorTickets, domain.Raffle, domain.Artist) {
		t.Helper()

		repo := newMockRaffleRepo()
		raffle, artist := activeRaffleWithArtist(t, repo)

		tickets := newMockAllocatorTickets()
		svc := NewRaffleService(repo, tickets, &mockUsers{})
		for i, ownerID := range ownerIDs {
			id := uint(i + 1)
			tickets.tickets[id] = activeTicket(id, ownerID, i+1)
			require.NoError(t, svc.AllocateTickets(context.Background(), ownerID, raffle.ID, artist.ID, []uint{id}))
		}

		return repo, tickets, raffle, artist
	}

	t.Run("draws a winner and records it", func(t *testing.T) {
		repo, tickets, raffle, artist := setupAllocated(t, 9, 9, 10)
		users := &mockUsers{users: map[uint]domain.User{
			9:  {ID: 9, Name: "Ada Lovelace"},
			10: {ID: 10, Name: "Grace Hopper"},
		}}
		svc := seededService(repo, tickets, users)

		result, err := svc.SelectWinner(context.Background(), raffle.ID, artist.ID, false)

		require.NoError(t, err)
		assert.False(t, result.Redrawn)
		assert.NotZero(t, result.Ticket.ID)
		assert.Contains(t, []string{"Ada L.", "Grace H."}, result.DisplayName)

		membership, err := repo.FindMembership(context.Background(), raffle.ID, artist.ID)
		require.NoError(t, err)
		require.NotNil(t, membership.WinnerTicketID)
		assert.Equal(t, result.Ticket.ID, *membership.WinnerTicketID)
		assert.NotNil(t, membership.WinnerSelectedAt)
	})

	t.Run("refuses a second draw without the redraw flag", func(t *testing.T) {
		repo, tickets, raffle, artist := setupAllocated(t, 9)
		svc := seededService(repo, tickets, &mockUsers{users: map[uint]domain.User{9: {ID: 9, Name: "Ada Lovelace"}}})

		_, err := svc.SelectWinner(context.Background(), raffle.ID, artist.ID, false)
		require.NoError(t, err)

		_, err = svc.SelectWinner(context.Background(), raffle.ID, artist.ID, false)

		assert.ErrorIs(t, err, ErrWinnerAlreadySelected)
	})

	t.Run("redraw overwrites the recorded winner", func(t *testing.T) {
		repo, tickets, raffle, artist := setupAllocated(t, 9, 9)
		svc := seededService(repo, tickets, &mockUsers{users: map[uint]domain.User{9: {ID: 9, Name: "Ada Lovelace"}}})

		_, err := svc.SelectWinner(context.Background(), raffle.ID, artist.ID, false)
		require.NoError(t, err)

		result, err := svc.SelectWinner(context.Background(), raffle.ID, artist.ID, true)

		require.NoError(t, err)
		assert.True(t, result.Redrawn)

		membership, err := repo.FindMembership(context.Background(), raffle.ID, artist.ID)
		require.NoError(t, err)
		require.NotNil(t, membership.WinnerTicketID)
		assert.Equal(t, result.Ticket.ID, *membership.WinnerTicketID)
	})

	t.Run("fails when the artist has no tickets", func(t *testing.T) {
		repo := newMockRaffleRepo()
		raffle, artist := activeRaffleWithArtist(t, repo)
		svc := seededService(repo, newMockAllocatorTickets(), &mockUsers{})

		_, err := svc.SelectWinner(context.Background(), raffle.ID, artist.ID, false)

		assert.ErrorIs(t, err, ErrNoTickets)
	})

	t.Run("fails for an artist outside the raffle", func(t *testing.T) {
		repo := newMockRaffleRepo()
		raffle, _ := activeRaffleWithArtist(t, repo)
		svc := seededService(repo, newMockAllocatorTickets(), &mockUsers{})

		_, err := svc.SelectWinner(context.Background(), raffle.ID, 77, false)

		assert.ErrorIs(t, err, ErrArtistNotInRaffle)
	})

	t.Run("keeps the result when the winner's account is gone", func(t *testing.T) {
		repo, tickets, raffle, artist := setupAllocated(t, 9)
		svc := seededService(repo, tickets, &mockUsers{users: map[uint]domain.User{}})

		result, err := svc.SelectWinner(context.Background(), raffle.ID, artist.ID, false)

		require.NoError(t, err)
		assert.Empty(t, result.DisplayName)
	})

	t.Run("every allocated ticket can win", func(t *testing.T) {
		repo, tickets, raffle, artist := setupAllocated(t, 9, 9, 9)
		svc := seededService(repo, tickets, &mockUsers{users: map[uint]domain.User{9: {ID: 9, Name: "Ada Lovelace"}}})

		seen := make(map[uint]bool)
		for i := 0; i < 200; i++ {
			result, err := svc.SelectWinner(context.Background(), raffle.ID, artist.ID, true)
			require.NoError(t, err)
			seen[result.Ticket.ID] = true
		}

		assert.Len(t, seen, 3)
	})
}

func TestWinnerDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		fullName string
		want     string
	}{
		{"empty", "", ""},
		{"blank", "   ", ""},
		{"single token", "Ada", "Ada"},
		{"first and last", "Ada Lovelace", "Ada L."},
		{"middle names collapse to the last initial", "Mary Ann Evans", "Mary E."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, winnerDisplayName(tc.fullName))
		})
	}
}
