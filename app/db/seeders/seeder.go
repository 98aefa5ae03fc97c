package seeders

import (
	"log"

	"github.com/mkhalid-dev/rukhsar-storefront/app/db/fakers"
	"gorm.io/gorm"
)

const productCount = 30

func Seed(db *gorm.DB) error {
	for i := 0; i < productCount; i++ {
		product := fakers.ProductFaker()
		if err := db.Create(product).Error; err != nil {
			return err
		}
		log.Printf("Seeded product %s (%s)", product.Name, product.Kind)
	}
	return nil
}
