package domain

import (
	"context"
	"encoding/json"
	"time"
)

// Entry is one element of an ordered profile collection (a skill, an
// experience...). Its fields are whatever the client sent.
type Entry map[string]interface{}

// Profile is implemented by the role-specific profile shapes.
type Profile interface {
	Role() Role
	Owner() string
	SetOwner(userID string)
	// Picture returns the address of the profile picture field.
	Picture() *string
}

type CandidateProfile struct {
	UserID         string    `json:"user_id"`
	FirstName      string    `json:"first_name" validate:"max=100,no_emoji"`
	LastName       string    `json:"last_name" validate:"max=100,no_emoji"`
	Bio            string    `json:"bio" validate:"max=5000"`
	Phone          string    `json:"phone" validate:"max=40"`
	LinkedIn       string    `json:"linkedin" validate:"omitempty,max=500"`
	GitHub         string    `json:"github" validate:"omitempty,max=500"`
	ProfilePicture string    `json:"profile_picture"`
	Skills         []Entry   `json:"skills"`
	Experiences    []Entry   `json:"experiences"`
	Educations     []Entry   `json:"educations"`
	Activities     []Entry   `json:"activities"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (p *CandidateProfile) Role() Role             { return RoleCandidate }
func (p *CandidateProfile) Owner() string          { return p.UserID }
func (p *CandidateProfile) SetOwner(userID string) { p.UserID = userID }
func (p *CandidateProfile) Picture() *string       { return &p.ProfilePicture }

// Normalize replaces nil collections with empty ones so they serialize as [].
func (p *CandidateProfile) Normalize() {
	for _, c := range []*[]Entry{&p.Skills, &p.Experiences, &p.Educations, &p.Activities} {
		if *c == nil {
			*c = []Entry{}
		}
	}
}

type RecruiterProfile struct {
	UserID             string    `json:"user_id"`
	FirstName          string    `json:"first_name" validate:"max=100,no_emoji"`
	LastName           string    `json:"last_name" validate:"max=100,no_emoji"`
	Position           string    `json:"position" validate:"max=200"`
	Bio                string    `json:"bio" validate:"max=5000"`
	Phone              string    `json:"phone" validate:"max=40"`
	LinkedIn           string    `json:"linkedin" validate:"omitempty,max=500"`
	WorkEmail          string    `json:"work_email" validate:"omitempty,email"`
	ProfilePicture     string    `json:"profile_picture"`
	CompanyName        string    `json:"company_name" validate:"max=200"`
	CompanyWebsite     string    `json:"company_website" validate:"omitempty,max=500"`
	Industry           string    `json:"industry" validate:"max=200"`
	CompanySize        string    `json:"company_size" validate:"max=50"`
	AnnualRevenue      string    `json:"annual_revenue" validate:"max=50"`
	CompanyDescription string    `json:"company_description" validate:"max=5000"`
	CompanyLocation    string    `json:"company_location" validate:"max=200"`
	FoundedYear        *int      `json:"founded_year" validate:"omitempty,founded_year"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (p *RecruiterProfile) Role() Role             { return RoleRecruiter }
func (p *RecruiterProfile) Owner() string          { return p.UserID }
func (p *RecruiterProfile) SetOwner(userID string) { p.UserID = userID }
func (p *RecruiterProfile) Picture() *string       { return &p.ProfilePicture }

type ProfileRepository interface {
	// Save inserts the profile or overwrites every field of the existing one.
	Save(ctx context.Context, p Profile) error
	// Get returns ErrNotFound when userID never saved a profile of that role.
	Get(ctx context.Context, userID string, role Role) (Profile, error)
	Delete(ctx context.Context, userID string) error
}

type ProfileUsecase interface {
	Save(ctx context.Context, userID string, raw json.RawMessage) (Profile, error)
	// Get and GetByEmail return a nil Profile, not an error, when none exists.
	Get(ctx context.Context, userID string) (Profile, error)
	GetByEmail(ctx context.Context, email string) (Profile, error)
	Delete(ctx context.Context, userID string) error
}

// PictureProcessor turns an uploaded picture (a data URL) into the value
// that is stored. Other values are returned unchanged.
type PictureProcessor interface {
	Process(ctx context.Context, userID, picture string) (string, error)
}
