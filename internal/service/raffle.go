package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/hearthside/events-api/internal/domain"
	"github.com/hearthside/events-api/internal/repository"
)

var (
	ErrRaffleNotFound        = repository.ErrRaffleNotFound
	ErrRaffleNotActive       = errors.New("raffle is not active")
	ErrArtistNotInRaffle     = repository.ErrArtistNotEntered
	ErrInvalidTicketSet      = errors.New("tickets do not match your unallocated tickets")
	ErrNoTickets             = errors.New("no tickets allocated to this artist")
	ErrWinnerAlreadySelected = errors.New("winner already selected, pass redraw to overwrite")
)

type RaffleRepository interface {
	Create(ctx context.Context, raffle domain.Raffle) (domain.Raffle, error)
	FindByID(ctx context.Context, id uint) (domain.Raffle, error)
	List(ctx context.Context) ([]domain.Raffle, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	AddArtist(ctx context.Context, raffleID uint, artist domain.Artist) (domain.Artist, error)
	FindMembership(ctx context.Context, raffleID, artistID uint) (domain.RaffleArtist, error)
	RecordWinner(ctx context.Context, raffleID, artistID, ticketID uint, selectedAt time.Time) error
	ListMemberships(ctx context.Context, raffleID uint) ([]domain.RaffleArtist, error)
}

type AllocatorTicketRepository interface {
	FindOwnedActive(ctx context.Context, ownerID, raffleID uint, ids []uint) ([]domain.Ticket, error)
	Allocate(ctx context.Context, ids []uint, artistID uint) (int64, error)
	FindAllocated(ctx context.Context, raffleID, artistID uint) ([]domain.Ticket, error)
}

type RaffleService struct {
	repo    RaffleRepository
	tickets AllocatorTicketRepository
	users   UserRepository
	rng     *rand.Rand
}

func NewRaffleService(repo RaffleRepository, tickets AllocatorTicketRepository, users UserRepository) *RaffleService {
	return &RaffleService{
		repo:    repo,
		tickets: tickets,
		users:   users,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithRand swaps the draw source. Tests use a seeded source.
func (s *RaffleService) WithRand(rng *rand.Rand) *RaffleService {
	s.rng = rng

	return s
}

func (s *RaffleService) CreateRaffle(ctx context.Context, raffle domain.Raffle) (domain.Raffle, error) {
	raffle.Status = domain.RaffleStatusDraft

	created, err := s.repo.Create(ctx, raffle)
	if err != nil {
		return domain.Raffle{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *RaffleService) ActivateRaffle(ctx context.Context, raffleID uint) error {
	if err := s.repo.UpdateStatus(ctx, raffleID, domain.RaffleStatusActive); err != nil {
		if errors.Is(err, repository.ErrRaffleNotFound) {
			return ErrRaffleNotFound
		}

		return fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	return nil
}

func (s *RaffleService) AddArtist(ctx context.Context, raffleID uint, artist domain.Artist) (domain.Artist, error) {
	if _, err := s.repo.FindByID(ctx, raffleID); err != nil {
		if errors.Is(err, repository.ErrRaffleNotFound) {
			return domain.Artist{}, ErrRaffleNotFound
		}

		return domain.Artist{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	created, err := s.repo.AddArtist(ctx, raffleID, artist)
	if err != nil {
		return domain.Artist{}, fmt.Errorf("s.repo.AddArtist -> %w", err)
	}

	return created, nil
}

func (s *RaffleService) GetRaffle(ctx context.Context, raffleID uint) (domain.Raffle, error) {
	raffle, err := s.repo.FindByID(ctx, raffleID)
	if err != nil {
		if errors.Is(err, repository.ErrRaffleNotFound) {
			return domain.Raffle{}, ErrRaffleNotFound
		}

		return domain.Raffle{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return raffle, nil
}

func (s *RaffleService) GetRaffles(ctx context.Context) ([]domain.Raffle, error) {
	raffles, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return raffles, nil
}

// AllocateTickets commits the caller's tickets to an artist in an active
// raffle. The whole request is rejected unless the supplied ids exactly
// match tickets the caller owns that were issued for this raffle and are
// still unallocated; the commit itself is a single UPDATE over the id set.
func (s *RaffleService) AllocateTickets(ctx context.Context, userID, raffleID, artistID uint, ticketIDs []uint) error {
	if len(ticketIDs) == 0 {
		return ErrInvalidTicketSet
	}

	raffle, err := s.repo.FindByID(ctx, raffleID)
	if err != nil {
		if errors.Is(err, repository.ErrRaffleNotFound) {
			return ErrRaffleNotFound
		}

		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if raffle.Status != domain.RaffleStatusActive {
		return ErrRaffleNotActive
	}

	if _, err = s.repo.FindMembership(ctx, raffleID, artistID); err != nil {
		if errors.Is(err, repository.ErrArtistNotEntered) {
			return ErrArtistNotInRaffle
		}

		return fmt.Errorf("s.repo.FindMembership -> %w", err)
	}

	owned, err := s.tickets.FindOwnedActive(ctx, userID, raffleID, ticketIDs)
	if err != nil {
		return fmt.Errorf("s.tickets.FindOwnedActive -> %w", err)
	}
	if len(owned) != len(ticketIDs) {
		return ErrInvalidTicketSet
	}

	moved, err := s.tickets.Allocate(ctx, ticketIDs, artistID)
	if err != nil {
		return fmt.Errorf("s.tickets.Allocate -> %w", err)
	}
	if moved != int64(len(ticketIDs)) {
		// A ticket was spent between the check and the update.
		return ErrInvalidTicketSet
	}

	return nil
}

// SelectWinner draws one ticket uniformly at random among those allocated to
// the artist and records it on the membership row. A second draw requires
// the explicit redraw flag; without it the previous winner stands.
func (s *RaffleService) SelectWinner(ctx context.Context, raffleID, artistID uint, redraw bool) (domain.WinnerResult, error) {
	if _, err := s.repo.FindByID(ctx, raffleID); err != nil {
		if errors.Is(err, repository.ErrRaffleNotFound) {
			return domain.WinnerResult{}, ErrRaffleNotFound
		}

		return domain.WinnerResult{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	membership, err := s.repo.FindMembership(ctx, raffleID, artistID)
	if err != nil {
		if errors.Is(err, repository.ErrArtistNotEntered) {
			return domain.WinnerResult{}, ErrArtistNotInRaffle
		}

		return domain.WinnerResult{}, fmt.Errorf("s.repo.FindMembership -> %w", err)
	}

	if membership.WinnerTicketID != nil && !redraw {
		return domain.WinnerResult{}, ErrWinnerAlreadySelected
	}

	tickets, err := s.tickets.FindAllocated(ctx, raffleID, artistID)
	if err != nil {
		return domain.WinnerResult{}, fmt.Errorf("s.tickets.FindAllocated -> %w", err)
	}
	if len(tickets) == 0 {
		return domain.WinnerResult{}, ErrNoTickets
	}

	winner := tickets[s.rng.Intn(len(tickets))]

	if err = s.repo.RecordWinner(ctx, raffleID, artistID, winner.ID, time.Now()); err != nil {
		return domain.WinnerResult{}, fmt.Errorf("s.repo.RecordWinner -> %w", err)
	}

	result := domain.WinnerResult{
		Ticket:  winner,
		Redrawn: membership.WinnerTicketID != nil,
	}

	owner, err := s.users.FindByID(ctx, winner.OwnerID)
	switch {
	case err == nil:
		result.DisplayName = winnerDisplayName(owner.Name)
	case errors.Is(err, repository.ErrUserNotFound):
		// Keep the result, just without a display name.
	default:
		return domain.WinnerResult{}, fmt.Errorf("s.users.FindByID -> %w", err)
	}

	return result, nil
}

func (s *RaffleService) GetWinners(ctx context.Context, raffleID uint) ([]domain.RaffleArtist, error) {
	if _, err := s.repo.FindByID(ctx, raffleID); err != nil {
		if errors.Is(err, repository.ErrRaffleNotFound) {
			return nil, ErrRaffleNotFound
		}

		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	memberships, err := s.repo.ListMemberships(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListMemberships -> %w", err)
	}

	return memberships, nil
}

// winnerDisplayName reduces a full name to "First L." for public display.
// A single-token name is returned as-is.
func winnerDisplayName(fullName string) string {
	fields := strings.Fields(fullName)
	switch len(fields) {
	case 0:
		return ""
	case 1:
		return fields[0]
	}

	initial := []rune(fields[len(fields)-1])[0]

	return fmt.Sprintf("%v %c.", fields[0], initial)
}
