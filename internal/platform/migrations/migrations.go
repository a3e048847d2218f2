package migrations

import (
	"gorm.io/gorm"

	orderspostgres "github.com/LilDoor/Northwind-order-system-WebApi/internal/domains/orders/adapters/persistence/postgres"
)

// Run applies the Northwind schema. Every process (api, worker, seed, tests)
// migrates from the adapter's own record definitions, so the migrated schema
// cannot drift from what the repository reads and writes.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(orderspostgres.Models()...)
}
