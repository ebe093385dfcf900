package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerInput struct {
	Email       string `validate:"required,email"`
	Password    string `validate:"required,min=6"`
	AccountType string `validate:"required,account_type"`
}

type companyInput struct {
	FirstName   string `validate:"no_emoji"`
	FoundedYear *int   `validate:"omitempty,founded_year"`
	Status      string `validate:"omitempty,app_status"`
}

func TestAccountType(t *testing.T) {
	for _, tc := range []struct {
		value string
		ok    bool
	}{
		{"candidate", true},
		{"recruiter", true},
		{"admin", false},
		{"Candidate", false},
	} {
		err := Struct(registerInput{Email: "a@x.com", Password: "secret1", AccountType: tc.value})
		if tc.ok {
			assert.NoError(t, err, tc.value)
		} else {
			assert.Error(t, err, tc.value)
		}
	}
}

func TestFormatValidationErrors(t *testing.T) {
	err := Struct(registerInput{Email: "not-an-email", Password: "123", AccountType: "admin"})
	require.Error(t, err)

	msgs := FormatValidationErrors(err)
	assert.Contains(t, msgs, "Email is not a valid email address")
	assert.Contains(t, msgs, "Password must be at least 6 characters")
	assert.Contains(t, msgs, "Account type must be candidate or recruiter")
}

func TestFormatValidationErrorsPlainError(t *testing.T) {
	assert.Equal(t, []string{"boom"}, FormatValidationErrors(errors.New("boom")))
}

func TestFoundedYearAndEmoji(t *testing.T) {
	future := time.Now().Year() + 1
	old := 1700
	ok := 1999

	assert.Error(t, Struct(companyInput{FoundedYear: &future}))
	assert.Error(t, Struct(companyInput{FoundedYear: &old}))
	assert.NoError(t, Struct(companyInput{FoundedYear: &ok}))
	assert.Error(t, Struct(companyInput{FirstName: "Ana 😀"}))
	assert.NoError(t, Struct(companyInput{FirstName: "Zoë O'Neil"}))
	assert.Error(t, Struct(companyInput{Status: "archived"}))
	assert.NoError(t, Struct(companyInput{Status: "accepted"}))
}
