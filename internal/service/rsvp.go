package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hearthside/events-api/internal/domain"
	"github.com/hearthside/events-api/internal/repository"
)

var (
	ErrDuplicateRSVP     = errors.New("an rsvp already exists for this email")
	ErrRSVPNotFound      = repository.ErrRSVPNotFound
	ErrInvalidRSVPStatus = errors.New("invalid rsvp status")
)

type RSVPRepository interface {
	Create(ctx context.Context, rsvp domain.RSVP) (domain.RSVP, error)
	FindByID(ctx context.Context, id uint) (domain.RSVP, error)
	FindByEventAndEmail(ctx context.Context, eventID uint, email string) (domain.RSVP, error)
	CountConfirmed(ctx context.Context, eventID uint) (int64, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	SetAttendedAt(ctx context.Context, id uint, attendedAt *time.Time) error
	ListByEventID(ctx context.Context, eventID uint) ([]domain.RSVP, error)
}

type RSVPMailer interface {
	SendRSVPConfirmation(to, eventName, status string) error
}

// RSVPService admits or waitlists RSVPs against an event's attendance limit.
// Canceling a confirmed RSVP never promotes a waitlisted one automatically;
// promotion is a manual admin action through UpdateStatus.
type RSVPService struct {
	repo   RSVPRepository
	events EventRepository
	mailer RSVPMailer
}

func NewRSVPService(repo RSVPRepository, events EventRepository, mailer RSVPMailer) *RSVPService {
	return &RSVPService{
		repo:   repo,
		events: events,
		mailer: mailer,
	}
}

// Submit creates the RSVP with its admission status computed from the
// current confirmed count. The count-then-insert pair is not serialized; an
// over-admit between two simultaneous submissions is accepted, while the
// duplicate check is backed by a unique index so a duplicate race loses
// cleanly.
func (s *RSVPService) Submit(ctx context.Context, eventID uint, rsvp domain.RSVP) (domain.RSVP, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.RSVP{}, ErrEventNotFound
		}

		return domain.RSVP{}, fmt.Errorf("s.events.FindByID -> %w", err)
	}

	_, err = s.repo.FindByEventAndEmail(ctx, eventID, rsvp.Email)
	if err == nil {
		return domain.RSVP{}, ErrDuplicateRSVP
	}
	if !errors.Is(err, repository.ErrRSVPNotFound) {
		return domain.RSVP{}, fmt.Errorf("s.repo.FindByEventAndEmail -> %w", err)
	}

	status := domain.RSVPStatusConfirmed
	if event.AttendanceLimit != nil {
		confirmed, err := s.repo.CountConfirmed(ctx, eventID)
		if err != nil {
			return domain.RSVP{}, fmt.Errorf("s.repo.CountConfirmed -> %w", err)
		}

		if confirmed >= int64(*event.AttendanceLimit) {
			status = domain.RSVPStatusWaitlisted
		}
	}

	rsvp.EventID = eventID
	rsvp.Status = status

	created, err := s.repo.Create(ctx, rsvp)
	if err != nil {
		if errors.Is(err, repository.ErrRSVPExists) {
			return domain.RSVP{}, ErrDuplicateRSVP
		}

		return domain.RSVP{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	// Fire-and-forget; delivery failures are only logged.
	go func() {
		if err := s.mailer.SendRSVPConfirmation(created.Email, event.Name, created.Status); err != nil {
			zap.L().Warn("failed to send rsvp confirmation",
				zap.Uint("rsvp_id", created.ID),
				zap.Error(err))
		}
	}()

	return created, nil
}

func (s *RSVPService) UpdateStatus(ctx context.Context, rsvpID uint, status string) (domain.RSVP, error) {
	switch status {
	case domain.RSVPStatusConfirmed, domain.RSVPStatusWaitlisted,
		domain.RSVPStatusRejected, domain.RSVPStatusCanceled:
	default:
		return domain.RSVP{}, ErrInvalidRSVPStatus
	}

	if err := s.repo.UpdateStatus(ctx, rsvpID, status); err != nil {
		if errors.Is(err, repository.ErrRSVPNotFound) {
			return domain.RSVP{}, ErrRSVPNotFound
		}

		return domain.RSVP{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	updated, err := s.repo.FindByID(ctx, rsvpID)
	if err != nil {
		return domain.RSVP{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return updated, nil
}

func (s *RSVPService) MarkAttendance(ctx context.Context, rsvpID uint, attended bool) (domain.RSVP, error) {
	var attendedAt *time.Time
	if attended {
		now := time.Now()
		attendedAt = &now
	}

	if err := s.repo.SetAttendedAt(ctx, rsvpID, attendedAt); err != nil {
		if errors.Is(err, repository.ErrRSVPNotFound) {
			return domain.RSVP{}, ErrRSVPNotFound
		}

		return domain.RSVP{}, fmt.Errorf("s.repo.SetAttendedAt -> %w", err)
	}

	updated, err := s.repo.FindByID(ctx, rsvpID)
	if err != nil {
		return domain.RSVP{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return updated, nil
}

func (s *RSVPService) GetRSVPs(ctx context.Context, eventID uint) ([]domain.RSVP, error) {
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}

		return nil, fmt.Errorf("s.events.FindByID -> %w", err)
	}

	rsvps, err := s.repo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByEventID -> %w", err)
	}

	return rsvps, nil
}
