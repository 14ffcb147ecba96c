package officeRepo

import (
	"go.mongodb.org/mongo-driver/bson"

	"sewakantor/models"
)

// OfficeSearchCriteria defines criteria for filtering the office catalog.
type OfficeSearchCriteria struct {
	CityID        string
	MinCapacity   int
	MaxCapacity   int
	MinPrice      models.Money
	MaxPrice      models.Money
	PricePeriod   models.Period // which tier MinPrice/MaxPrice filter on; daily when empty
	Search        string        // matches name or address
	OnlyAvailable bool
	Page          int
	PerPage       int
}

// OfficeRepository defines methods for office data access.
type OfficeRepository interface {
	// GetByID retrieves an office by its unique ID.
	GetByID(id string) (*models.Office, error)
	// GetBySlug retrieves an office by its URL slug.
	GetBySlug(slug string) (*models.Office, error)
	// Search returns offices matching the criteria plus the total match count.
	Search(criteria OfficeSearchCriteria) ([]models.Office, int64, error)
	// Create inserts a new office record.
	Create(office *models.Office) error
	// Update replaces an existing office record.
	Update(office *models.Office) error
	// Delete removes an office record by its ID.
	Delete(id string) error
	// UpdateWithDocument patches an office document with the specified update document.
	UpdateWithDocument(id string, updateDoc bson.M) error
}
