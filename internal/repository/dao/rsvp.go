package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrRSVPNotFound = errors.New("rsvp not found")
	ErrRSVPExists   = errors.New("rsvp already exists for this email")
)

type RSVP struct {
	ID uint `gorm:"primaryKey"`

	EventID uint   `gorm:"not null;uniqueIndex:idx_rsvps_event_email"`
	Email   string `gorm:"not null;uniqueIndex:idx_rsvps_event_email"`

	Handle string `gorm:"not null"`
	Name   string `gorm:"not null"`
	Phone  string

	Status string `gorm:"not null"` // confirmed, waitlisted, rejected or canceled

	AttendedAt *time.Time

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type RSVPDAO struct {
	db *gorm.DB
}

func NewRSVPDAO(db *gorm.DB) *RSVPDAO {
	return &RSVPDAO{
		db: db,
	}
}

func (d *RSVPDAO) Insert(ctx context.Context, rsvp RSVP) (RSVP, error) {
	result := d.db.WithContext(ctx).Create(&rsvp)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, "idx_rsvps_event_email") {
			return RSVP{}, ErrRSVPExists
		}

		return RSVP{}, result.Error
	}

	return rsvp, nil
}

func (d *RSVPDAO) FindByID(ctx context.Context, id uint) (RSVP, error) {
	var rsvp RSVP

	result := d.db.WithContext(ctx).First(&rsvp, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return RSVP{}, ErrRSVPNotFound
		}

		return RSVP{}, result.Error
	}

	return rsvp, nil
}

func (d *RSVPDAO) FindByEventAndEmail(ctx context.Context, eventID uint, email string) (RSVP, error) {
	var rsvp RSVP

	result := d.db.WithContext(ctx).
		Where("event_id = ? AND email = ?", eventID, email).
		First(&rsvp)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return RSVP{}, ErrRSVPNotFound
		}

		return RSVP{}, result.Error
	}

	return rsvp, nil
}

func (d *RSVPDAO) CountConfirmed(ctx context.Context, eventID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&RSVP{}).
		Where("event_id = ? AND status = ?", eventID, "confirmed").
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *RSVPDAO) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := d.db.WithContext(ctx).
		Model(&RSVP{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRSVPNotFound
	}

	return nil
}

func (d *RSVPDAO) SetAttendedAt(ctx context.Context, id uint, attendedAt *time.Time) error {
	result := d.db.WithContext(ctx).
		Model(&RSVP{}).
		Where("id = ?", id).
		Update("attended_at", attendedAt)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRSVPNotFound
	}

	return nil
}

func (d *RSVPDAO) ListByEventID(ctx context.Context, eventID uint) ([]RSVP, error) {
	var rsvps []RSVP

	result := d.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&rsvps)
	if result.Error != nil {
		return nil, result.Error
	}

	return rsvps, nil
}
