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
	ErrTicketNotFound = errors.New("ticket not found")

	// ErrTicketNumberTaken surfaces the (raffle_id, ticket_number) unique
	// index so the issuer can recompute numbering and retry.
	ErrTicketNumberTaken = errors.New("ticket number already taken")
)

type Ticket struct {
	ID uint `gorm:"primaryKey"`

	OrderID uint `gorm:"not null;index"`
	OwnerID uint `gorm:"not null;index"`

	RaffleID     uint  `gorm:"not null;uniqueIndex:idx_tickets_raffle_number"`
	ArtistID     *uint `gorm:"index"`
	TicketNumber int   `gorm:"not null;uniqueIndex:idx_tickets_raffle_number"`

	Status string `gorm:"not null;default:active"` // "active" or "used"

	CreatedAt time.Time `gorm:"not null"`
}

type TicketDAO struct {
	db *gorm.DB
}

func NewTicketDAO(db *gorm.DB) *TicketDAO {
	return &TicketDAO{
		db: db,
	}
}

// NextNumber returns 1 + the highest ticket number issued in the raffle.
func (d *TicketDAO) NextNumber(ctx context.Context, raffleID uint) (int, error) {
	var max int

	result := d.db.WithContext(ctx).
		Model(&Ticket{}).
		Where("raffle_id = ?", raffleID).
		Select("COALESCE(MAX(ticket_number), 0)").
		Scan(&max)
	if result.Error != nil {
		return 0, result.Error
	}

	return max + 1, nil
}

func (d *TicketDAO) InsertBatch(ctx context.Context, tickets []Ticket) ([]Ticket, error) {
	result := d.db.WithContext(ctx).Create(&tickets)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, "idx_tickets_raffle_number") {
			return nil, ErrTicketNumberTaken
		}

		return nil, result.Error
	}

	return tickets, nil
}

func (d *TicketDAO) FindByOrderID(ctx context.Context, orderID uint) ([]Ticket, error) {
	var tickets []Ticket

	result := d.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("ticket_number ASC").
		Find(&tickets)
	if result.Error != nil {
		return nil, result.Error
	}

	return tickets, nil
}

func (d *TicketDAO) FindByOwnerID(ctx context.Context, ownerID uint) ([]Ticket, error) {
	var tickets []Ticket

	result := d.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&tickets)
	if result.Error != nil {
		return nil, result.Error
	}

	return tickets, nil
}

// FindOwnedActive returns the subset of ids that belong to ownerID, were
// issued for raffleID and are still unallocated. The allocator compares its
// length against the request, so a ticket from another raffle falls out here.
func (d *TicketDAO) FindOwnedActive(ctx context.Context, ownerID, raffleID uint, ids []uint) ([]Ticket, error) {
	var tickets []Ticket

	result := d.db.WithContext(ctx).
		Where("id IN ?", ids).
		Where("owner_id = ?", ownerID).
		Where("raffle_id = ?", raffleID).
		Where("status = ?", "active").
		Find(&tickets)
	if result.Error != nil {
		return nil, result.Error
	}

	return tickets, nil
}

// Allocate commits the tickets to an artist in a single UPDATE. The status
// guard in the WHERE clause keeps a concurrent allocation from double
// spending: the statement reports how many rows it actually moved. Tickets
// stay in the raffle they were minted for.
func (d *TicketDAO) Allocate(ctx context.Context, ids []uint, artistID uint) (int64, error) {
	result := d.db.WithContext(ctx).
		Model(&Ticket{}).
		Where("id IN ?", ids).
		Where("status = ?", "active").
		Updates(map[string]interface{}{
			"artist_id": artistID,
			"status":    "used",
		})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

func (d *TicketDAO) FindAllocated(ctx context.Context, raffleID, artistID uint) ([]Ticket, error) {
	var tickets []Ticket

	result := d.db.WithContext(ctx).
		Where("raffle_id = ?", raffleID).
		Where("artist_id = ?", artistID).
		Order("ticket_number ASC").
		Find(&tickets)
	if result.Error != nil {
		return nil, result.Error
	}

	return tickets, nil
}

func (d *TicketDAO) FindByID(ctx context.Context, id uint) (Ticket, error) {
	var ticket Ticket

	result := d.db.WithContext(ctx).First(&ticket, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Ticket{}, ErrTicketNotFound
		}

		return Ticket{}, result.Error
	}

	return ticket, nil
}
