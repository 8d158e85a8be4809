package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/hearthside/events-api/internal/domain"
	"github.com/hearthside/events-api/internal/repository/dao"
)

var (
	ErrRSVPNotFound = dao.ErrRSVPNotFound
	ErrRSVPExists   = dao.ErrRSVPExists
)

type RSVPDAO interface {
	Insert(ctx context.Context, rsvp dao.RSVP) (dao.RSVP, error)
	FindByID(ctx context.Context, id uint) (dao.RSVP, error)
	FindByEventAndEmail(ctx context.Context, eventID uint, email string) (dao.RSVP, error)
	CountConfirmed(ctx context.Context, eventID uint) (int64, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	SetAttendedAt(ctx context.Context, id uint, attendedAt *time.Time) error
	ListByEventID(ctx context.Context, eventID uint) ([]dao.RSVP, error)
}

type RSVPRepository struct {
	dao RSVPDAO
}

func NewRSVPRepository(dao RSVPDAO) *RSVPRepository {
	return &RSVPRepository{
		dao: dao,
	}
}

func (r *RSVPRepository) Create(ctx context.Context, rsvp domain.RSVP) (domain.RSVP, error) {
	created, err := r.dao.Insert(ctx, dao.RSVP{
		EventID: rsvp.EventID,
		Email:   rsvp.Email,
		Handle:  rsvp.Handle,
		Name:    rsvp.Name,
		Phone:   rsvp.Phone,
		Status:  rsvp.Status,
	})
	if err != nil {
		return domain.RSVP{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *RSVPRepository) FindByID(ctx context.Context, id uint) (domain.RSVP, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.RSVP{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *RSVPRepository) FindByEventAndEmail(ctx context.Context, eventID uint, email string) (domain.RSVP, error) {
	found, err := r.dao.FindByEventAndEmail(ctx, eventID, email)
	if err != nil {
		return domain.RSVP{}, fmt.Errorf("r.dao.FindByEventAndEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *RSVPRepository) CountConfirmed(ctx context.Context, eventID uint) (int64, error) {
	count, err := r.dao.CountConfirmed(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountConfirmed -> %w", err)
	}

	return count, nil
}

func (r *RSVPRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	if err := r.dao.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

func (r *RSVPRepository) SetAttendedAt(ctx context.Context, id uint, attendedAt *time.Time) error {
	if err := r.dao.SetAttendedAt(ctx, id, attendedAt); err != nil {
		return fmt.Errorf("r.dao.SetAttendedAt -> %w", err)
	}

	return nil
}

func (r *RSVPRepository) ListByEventID(ctx context.Context, eventID uint) ([]domain.RSVP, error) {
	found, err := r.dao.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListByEventID -> %w", err)
	}

	rsvps := make([]domain.RSVP, len(found))
	for i, rsvp := range found {
		rsvps[i] = r.daoToDomain(rsvp)
	}

	return rsvps, nil
}

func (r *RSVPRepository) daoToDomain(rsvp dao.RSVP) domain.RSVP {
	return domain.RSVP{
		ID:         rsvp.ID,
		EventID:    rsvp.EventID,
		Handle:     rsvp.Handle,
		Name:       rsvp.Name,
		Email:      rsvp.Email,
		Phone:      rsvp.Phone,
		Status:     rsvp.Status,
		AttendedAt: rsvp.AttendedAt,
		CreatedAt:  rsvp.CreatedAt,
		UpdatedAt:  rsvp.UpdatedAt,
	}
}
