package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrRaffleNotFound   = errors.New("raffle not found")
	ErrArtistNotEntered = errors.New("artist is not in this raffle")
)

type Raffle struct {
	ID uint `gorm:"primaryKey"`

	EventID uint   `gorm:"not null;index"`
	Name    string `gorm:"not null"`
	Status  string `gorm:"not null;default:draft"` // "draft", "active" or "ended"

	Artists []Artist `gorm:"many2many:raffle_artists;"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Artist struct {
	ID uint `gorm:"primaryKey"`

	Name string `gorm:"not null"`
	Bio  string
	Link string
}

// RaffleArtist is the join row carrying the draw outcome for an artist.
type RaffleArtist struct {
	RaffleID uint `gorm:"primaryKey"`
	ArtistID uint `gorm:"primaryKey"`

	WinnerTicketID   *uint
	WinnerSelectedAt *time.Time
}

type RaffleDAO struct {
	db *gorm.DB
}

func NewRaffleDAO(db *gorm.DB) *RaffleDAO {
	return &RaffleDAO{
		db: db,
	}
}

func (d *RaffleDAO) Insert(ctx context.Context, raffle Raffle) (Raffle, error) {
	result := d.db.WithContext(ctx).Create(&raffle)
	if result.Error != nil {
		return Raffle{}, result.Error
	}

	return raffle, nil
}

func (d *RaffleDAO) FindByID(ctx context.Context, id uint) (Raffle, error) {
	var raffle Raffle

	result := d.db.WithContext(ctx).Preload("Artists").First(&raffle, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Raffle{}, ErrRaffleNotFound
		}

		return Raffle{}, result.Error
	}

	return raffle, nil
}

func (d *RaffleDAO) List(ctx context.Context) ([]Raffle, error) {
	var raffles []Raffle

	result := d.db.WithContext(ctx).Preload("Artists").Order("created_at DESC").Find(&raffles)
	if result.Error != nil {
		return nil, result.Error
	}

	return raffles, nil
}

func (d *RaffleDAO) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := d.db.WithContext(ctx).
		Model(&Raffle{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRaffleNotFound
	}

	return nil
}

// AddArtist creates the artist and enters it into the raffle in one
// transaction.
func (d *RaffleDAO) AddArtist(ctx context.Context, raffleID uint, artist Artist) (Artist, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if result := tx.Create(&artist); result.Error != nil {
			return result.Error
		}

		membership := RaffleArtist{
			RaffleID: raffleID,
			ArtistID: artist.ID,
		}
		if result := tx.Create(&membership); result.Error != nil {
			return result.Error
		}

		return nil
	})
	if err != nil {
		return Artist{}, err
	}

	return artist, nil
}

func (d *RaffleDAO) FindMembership(ctx context.Context, raffleID, artistID uint) (RaffleArtist, error) {
	var membership RaffleArtist

	result := d.db.WithContext(ctx).
		Where("raffle_id = ? AND artist_id = ?", raffleID, artistID).
		First(&membership)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return RaffleArtist{}, ErrArtistNotEntered
		}

		return RaffleArtist{}, result.Error
	}

	return membership, nil
}

func (d *RaffleDAO) RecordWinner(ctx context.Context, raffleID, artistID, ticketID uint, selectedAt time.Time) error {
	result := d.db.WithContext(ctx).
		Model(&RaffleArtist{}).
		Where("raffle_id = ? AND artist_id = ?", raffleID, artistID).
		Updates(map[string]interface{}{
			"winner_ticket_id":   ticketID,
			"winner_selected_at": selectedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrArtistNotEntered
	}

	return nil
}

func (d *RaffleDAO) ListMemberships(ctx context.Context, raffleID uint) ([]RaffleArtist, error) {
	var memberships []RaffleArtist

	result := d.db.WithContext(ctx).
		Where("raffle_id = ?", raffleID).
		Find(&memberships)
	if result.Error != nil {
		return nil, result.Error
	}

	return memberships, nil
}
