// Command seed inserts demo accounts and a workshop into the configured MongoDB.
package main

import (
	"context"
	"errors"
	"log"
	"time"

	"roadguard/config"
	"roadguard/database"
	"roadguard/database/repository"
	"roadguard/models"

	"golang.org/x/crypto/bcrypt"
)

const demoPassword = "roadguard123"

func main() {
	config.LoadConfig()
	database.InitDB()
	defer func() { _ = database.Disconnect(context.Background()) }()

	repos := repository.NewMongoRepositories(database.Database())

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	accounts := []*models.Account{
		{Role: models.RoleUser, Name: "Demo Driver", Email: "driver@roadguard.local", Phone: "+911234567890"},
		{Role: models.RoleWorker, Name: "Demo Mechanic", Email: "mechanic@roadguard.local", Phone: "+919876543210"},
	}
	for _, a := range accounts {
		a.PasswordHash = string(hash)
		a.IsVerified = true
		if err := repos.Accounts.Create(ctx, a); err != nil {
			if errors.Is(err, database.ErrDuplicate) {
				existing, getErr := repos.Accounts.GetByEmail(ctx, a.Email)
				if getErr != nil {
					log.Fatalf("Failed to load existing account %s: %v", a.Email, getErr)
				}
				*a = *existing
				log.Printf("Account %s already exists", a.Email)
				continue
			}
			log.Fatalf("Failed to create account %s: %v", a.Email, err)
		}
		log.Printf("Created %s account %s (%s)", a.Role, a.Email, a.ID)
	}

	worker := accounts[1]
	w := &models.Workshop{
		WorkerID:    worker.ID,
		Name:        "Highway Auto Care",
		Status:      models.WorkshopOpen,
		Address:     "NH 48, Gurugram",
		Location:    models.NewGeoPoint(28.4595, 77.0266),
		Description: "Tyres, batteries and breakdown assistance.",
		OwnerContact: models.OwnerContact{
			Phone: worker.Phone,
			Email: worker.Email,
		},
		Services: []models.OfferedService{
			{Name: "Flat tyre repair"},
			{Name: "Battery jump start"},
			{Name: "Towing"},
		},
	}
	if err := repos.Workshops.Create(ctx, w); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			log.Printf("Workshop for %s already exists", worker.Email)
			return
		}
		log.Fatalf("Failed to create workshop: %v", err)
	}
	log.Printf("Created workshop %s (%s); demo password is %q", w.Name, w.ID, demoPassword)
}
