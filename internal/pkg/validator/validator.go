// Package validator wraps go-playground/validator with JSON tag names and
// the custom rules the booking forms rely on.
package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/imc/imc-api/internal/availability"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Error keys must match the JSON field names the forms send.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Time-of-day "HH:MM". Hardens the API boundary so malformed clock
	// values never reach the overlap checker.
	validate.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, err := availability.ParseClock(fl.Field().String())
		return err == nil
	})

	// Console user roles.
	validate.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "admin", "staff", "customer":
			return true
		}
		return false
	})

	// Accepted payment methods across all booking modules.
	validate.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "Card", "UPI", "NetBanking", "Cash":
			return true
		}
		return false
	})

	// ISO date "YYYY-MM-DD" without pulling in a time.Parse at every site.
	validate.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if len(s) != 10 || s[4] != '-' || s[7] != '-' {
			return false
		}
		for i, c := range s {
			if i == 4 || i == 7 {
				continue
			}
			if c < '0' || c > '9' {
				return false
			}
		}
		return true
	})
}

// Validate validates a struct and returns a field -> message map, or nil.
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gt":
			errors[field] = "Value must be greater than " + err.Param()
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "oneof":
			errors[field] = "Must be one of: " + err.Param()
		case "url":
			errors[field] = "Invalid URL format"
		case "hhmm":
			errors[field] = "Time must be in HH:MM format"
		case "isodate":
			errors[field] = "Date must be in YYYY-MM-DD format"
		case "role":
			errors[field] = "Invalid role. Must be: admin, staff, or customer"
		case "payment_method":
			errors[field] = "Invalid payment method. Must be: Card, UPI, NetBanking, or Cash"
		default:
			errors[field] = "Invalid value"
		}
	}
	return errors
}
