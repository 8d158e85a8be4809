package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Event{},
		&Raffle{},
		&Artist{},
		&RaffleArtist{},
		&Order{},
		&Ticket{},
		&RSVP{},
		&Submission{},
	)
}
