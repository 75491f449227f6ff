// Package validator registers custom validation functions with Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// monthKeyRegex matches the zero-padded "YYYY-MM" month key format.
var monthKeyRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Register registers all custom validators with the Gin binding engine
// and turns on strict JSON decoding, so requests carrying unknown fields
// are rejected instead of silently ignored.
func Register() {
	binding.EnableDecoderDisallowUnknownFields = true

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("entry_type", validateEntryType)
		_ = v.RegisterValidation("entry_status", validateEntryStatus)
		_ = v.RegisterValidation("entry_account", validateEntryAccount)
		_ = v.RegisterValidation("goal_type", validateGoalType)
		_ = v.RegisterValidation("month_key", validateMonthKey)
	}
}

func validateEntryType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "INCOME", "EXPENSE":
		return true
	}
	return false
}

func validateEntryStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "SETTLED", "PENDING":
		return true
	}
	return false
}

func validateEntryAccount(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "COMPANY", "PARTNER_A", "PARTNER_B":
		return true
	}
	return false
}

func validateGoalType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "EXPENSE_LIMIT", "INCOME_TARGET":
		return true
	}
	return false
}

func validateMonthKey(fl validator.FieldLevel) bool {
	return monthKeyRegex.MatchString(fl.Field().String())
}
