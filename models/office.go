package models

import "time"

// Office status values.
const (
	OfficeStatusAvailable   = "available"
	OfficeStatusUnavailable = "unavailable"
	OfficeStatusMaintenance = "maintenance"
)

// Office represents a rentable office space listed in the catalog.
type Office struct {
	ID             string     `bson:"id" json:"id"`
	Name           string     `bson:"name" json:"name"`
	Slug           string     `bson:"slug" json:"slug"`
	Description    string     `bson:"description,omitempty" json:"description,omitempty"`
	Address        string     `bson:"address" json:"address"`
	CityID         string     `bson:"city_id" json:"city_id"`
	City           *City      `bson:"-" json:"city,omitempty"` // joined on read, not stored
	Latitude       float64    `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude      float64    `bson:"longitude,omitempty" json:"longitude,omitempty"`
	Capacity       int        `bson:"capacity" json:"capacity"`
	Prices         PriceTable `bson:"price_for_duration" json:"price_for_duration"`
	Photos         []string   `bson:"photos,omitempty" json:"photos,omitempty"`
	OperatingHours string     `bson:"operating_hours,omitempty" json:"operating_hours,omitempty"`
	Status         string     `bson:"status" json:"status"`
	Rating         float64    `bson:"rating,omitempty" json:"rating,omitempty"`
	CreatedAt      time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `bson:"updated_at" json:"updated_at"`
}

// IsAvailable reports whether the office can currently be booked.
func (o *Office) IsAvailable() bool {
	return o.Status == OfficeStatusAvailable
}

// City represents a city an office belongs to.
type City struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Slug      string    `bson:"slug" json:"slug"`
	Province  string    `bson:"province,omitempty" json:"province,omitempty"`
	Photo     string    `bson:"photo,omitempty" json:"photo,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
