package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-facing labels
var FieldLabels = map[string]string{
	// Auth fields
	"Email":       "Email",
	"Password":    "Password",
	"AccountType": "Account type",

	// Job fields
	"Title":        "Title",
	"CompanyName":  "Company name",
	"Location":     "Location",
	"Description":  "Description",
	"ContractType": "Contract type",
	"TimeType":     "Time type",
	"WorkMode":     "Work mode",
	"SalaryRange":  "Salary range",
	"Requirements": "Requirements",
	"Benefits":     "Benefits",

	// Application fields
	"JobID":       "Job",
	"Status":      "Status",
	"CoverLetter": "Cover letter",

	// Profile fields
	"FirstName":          "First name",
	"LastName":           "Last name",
	"Bio":                "Bio",
	"Phone":              "Phone number",
	"LinkedIn":           "LinkedIn",
	"GitHub":             "GitHub",
	"WorkEmail":          "Work email",
	"CompanyWebsite":     "Company website",
	"CompanyDescription": "Company description",
	"CompanyLocation":    "Company location",
	"FoundedYear":        "Founded year",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at least %s", label, param)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at most %s", label, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", label, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.Join(strings.Fields(param), ", "))
	case "email":
		return fmt.Sprintf("%s is not a valid email address", label)
	case "account_type":
		return fmt.Sprintf("%s must be candidate or recruiter", label)
	case "app_status":
		return fmt.Sprintf("%s must be one of: pending, reviewed, accepted, rejected", label)
	case "valid_phone":
		return fmt.Sprintf("%s is not a valid phone number", label)
	case "no_emoji":
		return fmt.Sprintf("%s must not contain emoji", label)
	case "founded_year":
		return fmt.Sprintf("%s must be between %d and the current year", label, MinFoundedYear)
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

func getFieldLabel(field string) string {
	if label, ok := FieldLabels[field]; ok {
		return label
	}
	return field
}
