package fakers

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/mkhalid-dev/rukhsar-storefront/app/models"
	"github.com/shopspring/decimal"
)

// ProductFaker builds one catalog product. Roughly a third come out
// as on-sale variants with a consistent discount/current-price pair.
func ProductFaker() *models.Product {
	name := faker.Word() + " " + faker.Word()

	productID := uuid.New().String()
	listPrice := decimal.NewFromInt(int64(rand.Intn(4900)+100) * 10)

	product := &models.Product{
		ID:          productID,
		Name:        name,
		Slug:        slug.Make(name + "-" + uuid.NewString()[:6]),
		Sku:         slug.Make(name) + "-" + uuid.NewString()[:4],
		Description: faker.Paragraph(),
		ListPrice:   listPrice,
		StockOnHand: rand.Intn(20) + 1,
		Kind:        models.VariantRegular,
		ProductImages: []models.ProductImage{
			{
				ID:        uuid.New().String(),
				ProductID: productID,
				AssetRef:  fmt.Sprintf("image-%s-800x600-jpg", uuid.NewString()[:12]),
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			},
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if rand.Intn(3) == 0 {
		percent := int64(rand.Intn(5)+1) * 10
		discount := decimal.NewFromInt(percent)
		product.Kind = models.VariantOnSale
		product.DiscountPercent = discount
		product.SalePrice = listPrice.
			Mul(decimal.NewFromInt(100 - percent)).
			Div(decimal.NewFromInt(100)).
			Round(2)
	}

	return product
}
