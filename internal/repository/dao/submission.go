package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrSubmissionNotFound = errors.New("submission not found")

type Submission struct {
	ID uint `gorm:"primaryKey"`

	Kind        string `gorm:"not null"` // "artist" or "vendor"
	Name        string `gorm:"not null"`
	Email       string `gorm:"not null"`
	Description string `gorm:"not null"`
	Link        string

	Status string `gorm:"not null;default:pending"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type SubmissionDAO struct {
	db *gorm.DB
}

func NewSubmissionDAO(db *gorm.DB) *SubmissionDAO {
	return &SubmissionDAO{
		db: db,
	}
}

func (d *SubmissionDAO) Insert(ctx context.Context, submission Submission) (Submission, error) {
	result := d.db.WithContext(ctx).Create(&submission)
	if result.Error != nil {
		return Submission{}, result.Error
	}

	return submission, nil
}

func (d *SubmissionDAO) FindByID(ctx context.Context, id uint) (Submission, error) {
	var submission Submission

	result := d.db.WithContext(ctx).First(&submission, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Submission{}, ErrSubmissionNotFound
		}

		return Submission{}, result.Error
	}

	return submission, nil
}

func (d *SubmissionDAO) List(ctx context.Context) ([]Submission, error) {
	var submissions []Submission

	result := d.db.WithContext(ctx).Order("created_at DESC").Find(&submissions)
	if result.Error != nil {
		return nil, result.Error
	}

	return submissions, nil
}

func (d *SubmissionDAO) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := d.db.WithContext(ctx).
		Model(&Submission{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubmissionNotFound
	}

	return nil
}
