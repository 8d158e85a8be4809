package repository

import (
	"context"
	"fmt"

	"github.com/hearthside/events-api/internal/domain"
	"github.com/hearthside/events-api/internal/repository/dao"
)

var ErrSubmissionNotFound = dao.ErrSubmissionNotFound

type SubmissionDAO interface {
	Insert(ctx context.Context, submission dao.Submission) (dao.Submission, error)
	FindByID(ctx context.Context, id uint) (dao.Submission, error)
	List(ctx context.Context) ([]dao.Submission, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

type SubmissionRepository struct {
	dao SubmissionDAO
}

func NewSubmissionRepository(dao SubmissionDAO) *SubmissionRepository {
	return &SubmissionRepository{
		dao: dao,
	}
}

func (r *SubmissionRepository) Create(ctx context.Context, submission domain.Submission) (domain.Submission, error) {
	created, err := r.dao.Insert(ctx, dao.Submission{
		Kind:        submission.Kind,
		Name:        submission.Name,
		Email:       submission.Email,
		Description: submission.Description,
		Link:        submission.Link,
		Status:      submission.Status,
	})
	if err != nil {
		return domain.Submission{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id uint) (domain.Submission, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *SubmissionRepository) List(ctx context.Context) ([]domain.Submission, error) {
	found, err := r.dao.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	submissions := make([]domain.Submission, len(found))
	for i, s := range found {
		submissions[i] = r.daoToDomain(s)
	}

	return submissions, nil
}

func (r *SubmissionRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	if err := r.dao.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

func (r *SubmissionRepository) daoToDomain(s dao.Submission) domain.Submission {
	return domain.Submission{
		ID:          s.ID,
		Kind:        s.Kind,
		Name:        s.Name,
		Email:       s.Email,
		Description: s.Description,
		Link:        s.Link,
		Status:      s.Status,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
