package helpers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

type contextKey string

const (
	ContextKeyProfileID contextKey = "profileID"
	CartCountKey        contextKey = "cart_count"
	CSRFTokenKey        contextKey = "csrfToken"
)

func GetProfileIDFromContext(r *http.Request) string {
	id, _ := r.Context().Value(ContextKeyProfileID).(string)
	return id
}

// GetBaseData fills the defaults every page template expects.
func GetBaseData(r *http.Request, pageSpecificData map[string]interface{}) map[string]interface{} {
	if pageSpecificData == nil {
		pageSpecificData = make(map[string]interface{})
	}

	if _, exists := pageSpecificData["Title"]; !exists {
		pageSpecificData["Title"] = "Rukhsar Store"
	}
	if _, exists := pageSpecificData["CartCount"]; !exists {
		pageSpecificData["CartCount"] = 0
	}

	if countVal := r.Context().Value(CartCountKey); countVal != nil {
		if count, ok := countVal.(int); ok {
			pageSpecificData["CartCount"] = count
		}
	}

	pageSpecificData["CSRFToken"] = ""
	if token, ok := r.Context().Value(CSRFTokenKey).(string); ok {
		pageSpecificData["CSRFToken"] = token
	}

	if status := r.URL.Query().Get("status"); status != "" {
		pageSpecificData["MessageStatus"] = status
	} else {
		pageSpecificData["MessageStatus"] = ""
	}
	if msg := r.URL.Query().Get("message"); msg != "" {
		pageSpecificData["Message"] = msg
	} else {
		pageSpecificData["Message"] = ""
	}

	return pageSpecificData
}

func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMessages := make(map[string]string)
	for _, err := range errs {
		field := strings.ToLower(err.Field())
		switch err.Tag() {
		case "required":
			errorMessages[field] = fmt.Sprintf("%s is required.", err.Field())
		case "email":
			errorMessages[field] = fmt.Sprintf("%s must be a valid email address.", err.Field())
		case "min":
			errorMessages[field] = fmt.Sprintf("%s must be at least %s characters.", err.Field(), err.Param())
		case "oneof":
			errorMessages[field] = fmt.Sprintf("%s must be one of: %s.", err.Field(), err.Param())
		case "pk_mobile":
			errorMessages[field] = fmt.Sprintf("%s must look like 03XXXXXXXXX.", err.Field())
		default:
			errorMessages[field] = fmt.Sprintf("%s failed %s validation.", err.Field(), err.Tag())
		}
	}
	return errorMessages
}
