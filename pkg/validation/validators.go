package validation

import (
	"regexp"
	"sync"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// E164-like phone: optional +, digits 7-15 length, separators allowed
	phoneRegex = regexp.MustCompile(`^\+?[0-9 ().-]{7,20}$`)
)

// MinFoundedYear is the oldest accepted company founding year.
const MinFoundedYear = 1800

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the shared instance with the custom rules registered.
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		RegisterValidators(validate)
	})
	return validate
}

// Struct validates s against its `validate` tags using the shared instance.
func Struct(s interface{}) error {
	return Validator().Struct(s)
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("account_type", AccountType)
	_ = v.RegisterValidation("app_status", AppStatus)
	_ = v.RegisterValidation("valid_phone", ValidPhone)
	_ = v.RegisterValidation("no_emoji", NoEmoji)
	_ = v.RegisterValidation("founded_year", FoundedYear)
}

// AccountType accepts the two registrable roles.
func AccountType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "candidate", "recruiter":
		return true
	}
	return false
}

// AppStatus accepts the four application statuses.
func AppStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "pending", "reviewed", "accepted", "rejected":
		return true
	}
	return false
}

// ValidPhone validates a phone number structure
func ValidPhone(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return phoneRegex.MatchString(val)
}

// NoEmoji validates that a string does not contain emoji characters
func NoEmoji(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, r := range val {
		// Supplementary planes are mostly emoji/symbols
		if r > 0x1F000 {
			return false
		}
		if unicode.In(r, unicode.So, unicode.Sk) {
			return false
		}
	}
	return true
}

// FoundedYear accepts years between MinFoundedYear and the current year.
func FoundedYear(fl validator.FieldLevel) bool {
	year := fl.Field().Int()
	if year == 0 {
		return true
	}
	return year >= MinFoundedYear && year <= int64(time.Now().Year())
}
