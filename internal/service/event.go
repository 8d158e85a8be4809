package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hearthside/events-api/internal/domain"
	"github.com/hearthside/events-api/internal/repository"
)

var ErrEventNotFound = repository.ErrEventNotFound

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	ListPublished(ctx context.Context) ([]domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

type EventService struct {
	repo EventRepository
}

func NewEventService(repo EventRepository) *EventService {
	return &EventService{
		repo: repo,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	if event.Status == "" {
		event.Status = domain.EventStatusDraft
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Event{}, ErrEventNotFound
		}

		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return event, nil
}

func (s *EventService) GetPublishedEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListPublished -> %w", err)
	}

	return events, nil
}

func (s *EventService) GetAllEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return events, nil
}

func (s *EventService) PublishEvent(ctx context.Context, id uint) error {
	if err := s.repo.UpdateStatus(ctx, id, domain.EventStatusPublished); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return ErrEventNotFound
		}

		return fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	return nil
}
