package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/hearthside/events-api/internal/domain"
	"github.com/hearthside/events-api/internal/repository/dao"
)

var (
	ErrRaffleNotFound   = dao.ErrRaffleNotFound
	ErrArtistNotEntered = dao.ErrArtistNotEntered
)

type RaffleDAO interface {
	Insert(ctx context.Context, raffle dao.Raffle) (dao.Raffle, error)
	FindByID(ctx context.Context, id uint) (dao.Raffle, error)
	List(ctx context.Context) ([]dao.Raffle, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	AddArtist(ctx context.Context, raffleID uint, artist dao.Artist) (dao.Artist, error)
	FindMembership(ctx context.Context, raffleID, artistID uint) (dao.RaffleArtist, error)
	RecordWinner(ctx context.Context, raffleID, artistID, ticketID uint, selectedAt time.Time) error
	ListMemberships(ctx context.Context, raffleID uint) ([]dao.RaffleArtist, error)
}

type RaffleRepository struct {
	dao RaffleDAO
}

func NewRaffleRepository(dao RaffleDAO) *RaffleRepository {
	return &RaffleRepository{
		dao: dao,
	}
}

func (r *RaffleRepository) Create(ctx context.Context, raffle domain.Raffle) (domain.Raffle, error) {
	created, err := r.dao.Insert(ctx, dao.Raffle{
		EventID: raffle.EventID,
		Name:    raffle.Name,
		Status:  raffle.Status,
	})
	if err != nil {
		return domain.Raffle{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *RaffleRepository) FindByID(ctx context.Context, id uint) (domain.Raffle, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Raffle{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *RaffleRepository) List(ctx context.Context) ([]domain.Raffle, error) {
	found, err := r.dao.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	raffles := make([]domain.Raffle, len(found))
	for i, raffle := range found {
		raffles[i] = r.daoToDomain(raffle)
	}

	return raffles, nil
}

func (r *RaffleRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	if err := r.dao.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

func (r *RaffleRepository) AddArtist(ctx context.Context, raffleID uint, artist domain.Artist) (domain.Artist, error) {
	created, err := r.dao.AddArtist(ctx, raffleID, dao.Artist{
		Name: artist.Name,
		Bio:  artist.Bio,
		Link: artist.Link,
	})
	if err != nil {
		return domain.Artist{}, fmt.Errorf("r.dao.AddArtist -> %w", err)
	}

	return r.artistDaoToDomain(created), nil
}

func (r *RaffleRepository) FindMembership(ctx context.Context, raffleID, artistID uint) (domain.RaffleArtist, error) {
	found, err := r.dao.FindMembership(ctx, raffleID, artistID)
	if err != nil {
		return domain.RaffleArtist{}, fmt.Errorf("r.dao.FindMembership -> %w", err)
	}

	return r.membershipDaoToDomain(found), nil
}

func (r *RaffleRepository) RecordWinner(ctx context.Context, raffleID, artistID, ticketID uint, selectedAt time.Time) error {
	if err := r.dao.RecordWinner(ctx, raffleID, artistID, ticketID, selectedAt); err != nil {
		return fmt.Errorf("r.dao.RecordWinner -> %w", err)
	}

	return nil
}

func (r *RaffleRepository) ListMemberships(ctx context.Context, raffleID uint) ([]domain.RaffleArtist, error) {
	found, err := r.dao.ListMemberships(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListMemberships -> %w", err)
	}

	memberships := make([]domain.RaffleArtist, len(found))
	for i, m := range found {
		memberships[i] = r.membershipDaoToDomain(m)
	}

	return memberships, nil
}

func (r *RaffleRepository) daoToDomain(raffle dao.Raffle) domain.Raffle {
	artists := make([]domain.Artist, len(raffle.Artists))
	for i, a := range raffle.Artists {
		artists[i] = r.artistDaoToDomain(a)
	}

	return domain.Raffle{
		ID:        raffle.ID,
		EventID:   raffle.EventID,
		Name:      raffle.Name,
		Status:    raffle.Status,
		Artists:   artists,
		CreatedAt: raffle.CreatedAt,
		UpdatedAt: raffle.UpdatedAt,
	}
}

func (r *RaffleRepository) artistDaoToDomain(a dao.Artist) domain.Artist {
	return domain.Artist{
		ID:   a.ID,
		Name: a.Name,
		Bio:  a.Bio,
		Link: a.Link,
	}
}

func (r *RaffleRepository) membershipDaoToDomain(m dao.RaffleArtist) domain.RaffleArtist {
	return domain.RaffleArtist{
		RaffleID:         m.RaffleID,
		ArtistID:         m.ArtistID,
		WinnerTicketID:   m.WinnerTicketID,
		WinnerSelectedAt: m.WinnerSelectedAt,
	}
}
