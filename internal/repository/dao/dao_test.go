package dao

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("could not construct docker pool: %v", err)
	}
	if err = pool.Client.Ping(); err != nil {
		log.Fatalf("could not connect to docker: %v", err)
	}

	resource, err := pool.Run("postgres", "16-alpine", []string{
		"POSTGRES_PASSWORD=secret",
		"POSTGRES_DB=events_test",
	})
	if err != nil {
		log.Fatalf("could not start postgres: %v", err)
	}

	pool.MaxWait = 2 * time.Minute
	if err = pool.Retry(func() error {
		dsn := fmt.Sprintf(
			"host=localhost port=%v user=postgres password=secret dbname=events_test sslmode=disable",
			resource.GetPort("5432/tcp"),
		)

		db, openErr := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if openErr != nil {
			return openErr
		}

		sqlDB, dbErr := db.DB()
		if dbErr != nil {
			return dbErr
		}
		if pingErr := sqlDB.Ping(); pingErr != nil {
			return pingErr
		}

		testDB = db

		return nil
	}); err != nil {
		log.Fatalf("could not connect to postgres: %v", err)
	}

	if err = InitTables(testDB); err != nil {
		log.Fatalf("could not migrate tables: %v", err)
	}

	code := m.Run()

	if err = pool.Purge(resource); err != nil {
		log.Fatalf("could not purge postgres: %v", err)
	}

	os.Exit(code)
}

func createTestUser(t *testing.T, email string) User {
	t.Helper()

	user, err := NewUserDAO(testDB).Insert(context.Background(), User{
		Email:    email,
		Password: "hashed",
		Name:     "Test User",
		Role:     "member",
	})
	require.NoError(t, err)

	return user
}

func createTestRaffle(t *testing.T) Raffle {
	t.Helper()

	raffle, err := NewRaffleDAO(testDB).Insert(context.Background(), Raffle{
		EventID: 1,
		Name:    "Test Raffle",
		Status:  "active",
	})
	require.NoError(t, err)

	return raffle
}

func TestUserDAO_Insert_DuplicateEmail(t *testing.T) {
	dao := NewUserDAO(testDB)

	createTestUser(t, "dup@example.com")

	_, err := dao.Insert(context.Background(), User{
		Email:    "dup@example.com",
		Password: "hashed",
		Name:     "Someone Else",
		Role:     "member",
	})

	assert.ErrorIs(t, err, ErrUserEmailExists)
}

func TestTicketDAO_Numbering(t *testing.T) {
	dao := NewTicketDAO(testDB)
	user := createTestUser(t, "tickets@example.com")
	raffle := createTestRaffle(t)

	next, err := dao.NextNumber(context.Background(), raffle.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, next)

	batch := []Ticket{
		{OrderID: 1, OwnerID: user.ID, RaffleID: raffle.ID, TicketNumber: 1, Status: "active"},
		{OrderID: 1, OwnerID: user.ID, RaffleID: raffle.ID, TicketNumber: 2, Status: "active"},
	}
	created, err := dao.InsertBatch(context.Background(), batch)
	require.NoError(t, err)
	require.Len(t, created, 2)

	next, err = dao.NextNumber(context.Background(), raffle.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, next)

	// Another raffle numbers independently.
	other := createTestRaffle(t)
	next, err = dao.NextNumber(context.Background(), other.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, next)
}

func TestTicketDAO_InsertBatch_NumberTaken(t *testing.T) {
	dao := NewTicketDAO(testDB)
	user := createTestUser(t, "conflict@example.com")
	raffle := createTestRaffle(t)

	_, err := dao.InsertBatch(context.Background(), []Ticket{
		{OrderID: 2, OwnerID: user.ID, RaffleID: raffle.ID, TicketNumber: 1, Status: "active"},
	})
	require.NoError(t, err)

	_, err = dao.InsertBatch(context.Background(), []Ticket{
		{OrderID: 3, OwnerID: user.ID, RaffleID: raffle.ID, TicketNumber: 1, Status: "active"},
	})

	assert.ErrorIs(t, err, ErrTicketNumberTaken)
}

func TestTicketDAO_Allocate_SkipsSpentTickets(t *testing.T) {
	dao := NewTicketDAO(testDB)
	user := createTestUser(t, "allocate@example.com")
	raffle := createTestRaffle(t)

	created, err := dao.InsertBatch(context.Background(), []Ticket{
		{OrderID: 4, OwnerID: user.ID, RaffleID: raffle.ID, TicketNumber: 1, Status: "active"},
		{OrderID: 4, OwnerID: user.ID, RaffleID: raffle.ID, TicketNumber: 2, Status: "used"},
	})
	require.NoError(t, err)

	ids := []uint{created[0].ID, created[1].ID}
	moved, err := dao.Allocate(context.Background(), ids, 1)

	require.NoError(t, err)
	assert.Equal(t, int64(1), moved, "only the active ticket moves")
}

func TestTicketDAO_FindOwnedActive_RaffleBound(t *testing.T) {
	dao := NewTicketDAO(testDB)
	user := createTestUser(t, "raffle-bound@example.com")
	raffle := createTestRaffle(t)
	other := createTestRaffle(t)

	created, err := dao.InsertBatch(context.Background(), []Ticket{
		{OrderID: 5, OwnerID: user.ID, RaffleID: raffle.ID, TicketNumber: 1, Status: "active"},
		{OrderID: 5, OwnerID: user.ID, RaffleID: other.ID, TicketNumber: 1, Status: "active"},
	})
	require.NoError(t, err)

	ids := []uint{created[0].ID, created[1].ID}

	found, err := dao.FindOwnedActive(context.Background(), user.ID, raffle.ID, ids)
	require.NoError(t, err)
	require.Len(t, found, 1, "a ticket minted for another raffle is excluded")
	assert.Equal(t, created[0].ID, found[0].ID)

	// Allocation keeps the ticket in the raffle it was minted for.
	moved, err := dao.Allocate(context.Background(), []uint{created[0].ID}, 1)
	require.NoError(t, err)
	require.Equal(t, int64(1), moved)

	allocated, err := dao.FindByID(context.Background(), created[0].ID)
	require.NoError(t, err)
	assert.Equal(t, raffle.ID, allocated.RaffleID)
}

func TestRSVPDAO_Insert_DuplicateEmail(t *testing.T) {
	dao := NewRSVPDAO(testDB)

	first, err := dao.Insert(context.Background(), RSVP{
		EventID: 10,
		Email:   "guest@example.com",
		Handle:  "guest",
		Name:    "Guest One",
		Status:  "confirmed",
	})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)

	_, err = dao.Insert(context.Background(), RSVP{
		EventID: 10,
		Email:   "guest@example.com",
		Handle:  "guest2",
		Name:    "Guest Two",
		Status:  "confirmed",
	})
	assert.ErrorIs(t, err, ErrRSVPExists)

	// The same email is fine for a different event.
	_, err = dao.Insert(context.Background(), RSVP{
		EventID: 11,
		Email:   "guest@example.com",
		Handle:  "guest",
		Name:    "Guest One",
		Status:  "confirmed",
	})
	assert.NoError(t, err)
}

func TestRSVPDAO_CountConfirmed(t *testing.T) {
	dao := NewRSVPDAO(testDB)
	const eventID = 20

	for i, status := range []string{"confirmed", "confirmed", "waitlisted", "canceled"} {
		_, err := dao.Insert(context.Background(), RSVP{
			EventID: eventID,
			Email:   fmt.Sprintf("count%v@example.com", i),
			Handle:  "h",
			Name:    "n",
			Status:  status,
		})
		require.NoError(t, err)
	}

	count, err := dao.CountConfirmed(context.Background(), eventID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestRaffleDAO_Winner(t *testing.T) {
	dao := NewRaffleDAO(testDB)
	raffle := createTestRaffle(t)

	artist, err := dao.AddArtist(context.Background(), raffle.ID, Artist{Name: "The Paper Lanterns"})
	require.NoError(t, err)

	membership, err := dao.FindMembership(context.Background(), raffle.ID, artist.ID)
	require.NoError(t, err)
	assert.Nil(t, membership.WinnerTicketID)

	selectedAt := time.Now()
	require.NoError(t, dao.RecordWinner(context.Background(), raffle.ID, artist.ID, 123, selectedAt))

	membership, err = dao.FindMembership(context.Background(), raffle.ID, artist.ID)
	require.NoError(t, err)
	require.NotNil(t, membership.WinnerTicketID)
	assert.Equal(t, uint(123), *membership.WinnerTicketID)
	assert.NotNil(t, membership.WinnerSelectedAt)

	_, err = dao.FindMembership(context.Background(), raffle.ID, 999)
	assert.ErrorIs(t, err, ErrArtistNotEntered)
}
