package services

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// CheckoutForm carries the contact, shipping and payment fields the
// shopper submits. Wallet fields are only meaningful for the
// mobile-wallet payment methods and are checked at the struct level.
type CheckoutForm struct {
	FirstName  string `validate:"required"`
	LastName   string
	Email      string `validate:"required,email"`
	Phone      string `validate:"required,pk_mobile"`
	Address    string `validate:"required,min=10"`
	City       string `validate:"required,min=2"`
	PostalCode string `validate:"required,min=4"`

	PaymentMethod string `validate:"required,oneof=cod jazzcash easypaisa"`
	WalletNumber  string
	TransactionID string
}

func (f CheckoutForm) UsesWallet() bool {
	return f.PaymentMethod == PaymentJazzCash || f.PaymentMethod == PaymentEasypaisa
}

// Pakistani mobile numbers: 03 followed by nine digits. Wallet account
// numbers follow the same shape.
var pkMobilePattern = regexp.MustCompile(`^03[0-9]{9}$`)

const minTransactionIDLen = 6

func NewCheckoutValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("pk_mobile", func(fl validator.FieldLevel) bool {
		return pkMobilePattern.MatchString(fl.Field().String())
	})
	v.RegisterStructValidation(checkoutStructLevel, CheckoutForm{})
	return v
}

func checkoutStructLevel(sl validator.StructLevel) {
	form := sl.Current().Interface().(CheckoutForm)
	if !form.UsesWallet() {
		return
	}
	if !pkMobilePattern.MatchString(form.WalletNumber) {
		sl.ReportError(form.WalletNumber, "WalletNumber", "WalletNumber", "pk_mobile", "")
	}
	if len(form.TransactionID) < minTransactionIDLen {
		sl.ReportError(form.TransactionID, "TransactionID", "TransactionID", "min", "6")
	}
}
