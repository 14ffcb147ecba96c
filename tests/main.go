// Seed script. Populates the catalog with a handful of cities and offices
// plus one admin account so the API can be exercised locally.
//
// Run with: go run ./tests
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"sewakantor/config"
	"sewakantor/database"
	"sewakantor/models"
	"sewakantor/services/catalog"
)

func main() {
	config.LoadConfig()
	database.InitDB()
	db := database.DB()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, name := range []string{"cities", "offices", "admins"} {
		if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("Failed to clear %s collection: %v", name, err)
		}
	}

	now := time.Now()

	cities := []models.City{
		{Name: "Jakarta", Province: "DKI Jakarta"},
		{Name: "Bandung", Province: "Jawa Barat"},
		{Name: "Surabaya", Province: "Jawa Timur"},
		{Name: "Yogyakarta", Province: "DI Yogyakarta"},
	}
	cityIDs := make(map[string]string, len(cities))
	var cityDocs []interface{}
	for i := range cities {
		cities[i].ID = uuid.New().String()
		cities[i].Slug = catalog.Slugify(cities[i].Name)
		cities[i].CreatedAt = now
		cityIDs[cities[i].Name] = cities[i].ID
		cityDocs = append(cityDocs, cities[i])
	}
	if _, err := db.Collection("cities").InsertMany(ctx, cityDocs); err != nil {
		log.Fatalf("Failed to seed cities: %v", err)
	}

	offices := []models.Office{
		{
			Name:     "SCBD Executive Suite",
			Address:  "Jl. Jend. Sudirman Kav. 52-53",
			CityID:   cityIDs["Jakarta"],
			Capacity: 12,
			Prices: models.PriceTable{
				Daily:   350000,
				Weekly:  2100000,
				Monthly: 7500000,
			},
			OperatingHours: "08:00-20:00",
			Status:         models.OfficeStatusAvailable,
		},
		{
			Name:     "Thamrin Co-Working Loft",
			Address:  "Jl. M.H. Thamrin No. 10",
			CityID:   cityIDs["Jakarta"],
			Capacity: 6,
			Prices: models.PriceTable{
				Daily:  150000,
				Weekly: 900000,
			},
			OperatingHours: "07:00-22:00",
			Status:         models.OfficeStatusAvailable,
		},
		{
			Name:     "Dago Creative Space",
			Address:  "Jl. Ir. H. Juanda No. 88",
			CityID:   cityIDs["Bandung"],
			Capacity: 8,
			Prices: models.PriceTable{
				Daily:   100000,
				Weekly:  600000,
				Monthly: 2200000,
			},
			OperatingHours: "08:00-18:00",
			Status:         models.OfficeStatusAvailable,
		},
		{
			Name:     "Tunjungan Business Hub",
			Address:  "Jl. Tunjungan No. 45",
			CityID:   cityIDs["Surabaya"],
			Capacity: 20,
			Prices: models.PriceTable{
				Monthly: 5000000,
			},
			OperatingHours: "24 hours",
			Status:         models.OfficeStatusAvailable,
		},
		{
			Name:     "Malioboro Meeting Point",
			Address:  "Jl. Malioboro No. 120",
			CityID:   cityIDs["Yogyakarta"],
			Capacity: 4,
			Prices: models.PriceTable{
				Daily: 75000,
			},
			OperatingHours: "09:00-17:00",
			Status:         models.OfficeStatusMaintenance,
		},
	}
	var officeDocs []interface{}
	for i := range offices {
		offices[i].ID = uuid.New().String()
		offices[i].Slug = catalog.Slugify(offices[i].Name)
		offices[i].CreatedAt = now
		offices[i].UpdatedAt = now
		officeDocs = append(officeDocs, offices[i])
	}
	if _, err := db.Collection("offices").InsertMany(ctx, officeDocs); err != nil {
		log.Fatalf("Failed to seed offices: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}
	admin := models.Admin{
		ID:           uuid.New().String(),
		Name:         "Administrator",
		Email:        "admin@sewakantor.local",
		PasswordHash: string(hash),
		CreatedAt:    now,
	}
	if _, err := db.Collection("admins").InsertOne(ctx, admin); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	fmt.Printf("Seeded %d cities, %d offices and 1 admin (admin@sewakantor.local / admin12345)\n",
		len(cities), len(offices))
}
