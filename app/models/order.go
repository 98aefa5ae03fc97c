package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPending    = 1
	OrderStatusProcessing = 2
	OrderStatusShipped    = 3
	OrderStatusCompleted  = 4
	OrderStatusCancelled  = 5
)

type Order struct {
	ID        string    `gorm:"size:36;not null;uniqueIndex;primary_key"`
	OrderCode string    `gorm:"type:varchar(255);unique;not null" json:"order_code"`
	OrderDate time.Time `gorm:"not null" json:"order_date"`

	OrderItems []OrderItem
	Customer   *OrderCustomer

	Subtotal       decimal.Decimal `gorm:"type:decimal(16,2);"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(16,2);"`
	ShippingCost   decimal.Decimal `gorm:"type:decimal(16,2);"`
	GrandTotal     decimal.Decimal `gorm:"type:decimal(16,2);"`

	PaymentMethod string `gorm:"size:50;not null"`
	Status        int    `gorm:"default:1"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}

type OrderItem struct {
	ID          string          `gorm:"primaryKey;type:varchar(255);not null;uniqueIndex" json:"id"`
	OrderID     string          `gorm:"type:varchar(255);not null;index" json:"order_id"`
	ProductID   string          `gorm:"type:varchar(255);not null;index" json:"product_id"`
	ProductName string          `gorm:"type:varchar(255);not null" json:"product_name"`
	Qty         int             `gorm:"not null" json:"qty"`
	Price       decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"line_total"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if oi.ID == "" {
		oi.ID = uuid.New().String()
	}
	return
}

type OrderCustomer struct {
	ID      string `gorm:"type:char(36);primaryKey"`
	OrderID string `gorm:"type:varchar(36);not null;uniqueIndex"`

	FirstName  string `gorm:"type:varchar(255);not null"`
	LastName   string `gorm:"type:varchar(255);null"`
	Email      string `gorm:"type:varchar(255);not null"`
	Phone      string `gorm:"type:varchar(20);not null"`
	Address    string `gorm:"type:varchar(255);not null"`
	City       string `gorm:"type:varchar(255);not null"`
	PostalCode string `gorm:"type:varchar(10);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (oc *OrderCustomer) BeforeCreate(tx *gorm.DB) (err error) {
	if oc.ID == "" {
		oc.ID = uuid.New().String()
	}
	return
}
