package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/hearthside/events-api/cmd/app"
)

// @title        Hearthside Events API
// @version      1.0
// @description  Ticketing, raffles and RSVPs for community events.
//
// @contact.name   Hearthside Collective
// @contact.email  hello@hearthside.events
//
// @license.name  MIT
//
// @securityDefinitions.apikey BearerToken
// @in header
// @name Authorization
// @description Bearer token
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
