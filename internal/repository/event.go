package repository

import (
	"context"
	"fmt"

	"github.com/hearthside/events-api/internal/domain"
	"github.com/hearthside/events-api/internal/repository/dao"
)

var ErrEventNotFound = dao.ErrEventNotFound

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	ListByStatus(ctx context.Context, status string) ([]dao.Event, error)
	List(ctx context.Context) ([]dao.Event, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, dao.Event{
		Name:            event.Name,
		Description:     event.Description,
		Venue:           event.Venue,
		StartsAt:        event.StartsAt,
		AttendanceLimit: event.AttendanceLimit,
		Status:          event.Status,
	})
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *EventRepository) ListPublished(ctx context.Context) ([]domain.Event, error) {
	found, err := r.dao.ListByStatus(ctx, domain.EventStatusPublished)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListByStatus -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *EventRepository) List(ctx context.Context) ([]domain.Event, error) {
	found, err := r.dao.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *EventRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	if err := r.dao.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

func (r *EventRepository) daosToDomain(events []dao.Event) []domain.Event {
	result := make([]domain.Event, len(events))
	for i, e := range events {
		result[i] = r.daoToDomain(e)
	}

	return result
}

func (r *EventRepository) daoToDomain(e dao.Event) domain.Event {
	return domain.Event{
		ID:              e.ID,
		Name:            e.Name,
		Description:     e.Description,
		Venue:           e.Venue,
		StartsAt:        e.StartsAt,
		AttendanceLimit: e.AttendanceLimit,
		Status:          e.Status,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}
