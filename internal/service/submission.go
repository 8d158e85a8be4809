package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/hearthside/events-api/internal/domain"
	"github.com/hearthside/events-api/internal/repository"
)

var (
	ErrSubmissionNotFound      = repository.ErrSubmissionNotFound
	ErrInvalidSubmissionStatus = errors.New("invalid submission status")
)

type SubmissionRepository interface {
	Create(ctx context.Context, submission domain.Submission) (domain.Submission, error)
	FindByID(ctx context.Context, id uint) (domain.Submission, error)
	List(ctx context.Context) ([]domain.Submission, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

type SubmissionMailer interface {
	SendSubmissionReceived(to, kind, name string) error
	NotifyCuration(kind, name, email string) error
}

type SubmissionService struct {
	repo   SubmissionRepository
	mailer SubmissionMailer
}

func NewSubmissionService(repo SubmissionRepository, mailer SubmissionMailer) *SubmissionService {
	return &SubmissionService{
		repo:   repo,
		mailer: mailer,
	}
}

func (s *SubmissionService) CreateSubmission(ctx context.Context, submission domain.Submission) (domain.Submission, error) {
	submission.Status = domain.SubmissionStatusPending

	created, err := s.repo.Create(ctx, submission)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	go func() {
		if err := s.mailer.SendSubmissionReceived(created.Email, created.Kind, created.Name); err != nil {
			zap.L().Warn("failed to send submission receipt",
				zap.Uint("submission_id", created.ID),
				zap.Error(err))
		}
		if err := s.mailer.NotifyCuration(created.Kind, created.Name, created.Email); err != nil {
			zap.L().Warn("failed to notify curation",
				zap.Uint("submission_id", created.ID),
				zap.Error(err))
		}
	}()

	return created, nil
}

func (s *SubmissionService) GetSubmissions(ctx context.Context) ([]domain.Submission, error) {
	submissions, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return submissions, nil
}

func (s *SubmissionService) UpdateStatus(ctx context.Context, id uint, status string) (domain.Submission, error) {
	switch status {
	case domain.SubmissionStatusPending, domain.SubmissionStatusApproved, domain.SubmissionStatusRejected:
	default:
		return domain.Submission{}, ErrInvalidSubmissionStatus
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrSubmissionNotFound) {
			return domain.Submission{}, ErrSubmissionNotFound
		}

		return domain.Submission{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return updated, nil
}
