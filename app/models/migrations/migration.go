package migrations

import (
	"github.com/mkhalid-dev/rukhsar-storefront/app/models"
	"github.com/mkhalid-dev/rukhsar-storefront/app/storage"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Product{},
		&models.ProductImage{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderCustomer{},
		&storage.Entry{},
	)
}
