// Package user defines the user domain entity and preference catalogs
package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Defaults applied when a user has no linked preference of a category.
const (
	DefaultDietaryPreference = "Non-vegetarian"
	DefaultCuisine           = "American"
)

// DietaryPreference is a catalog entry (vegetarian, vegan, halal, ...).
type DietaryPreference struct {
	ID          int
	Name        string
	Description string
}

// Cuisine is a catalog entry (Italian, Indian, American, ...).
type Cuisine struct {
	ID          int
	Name        string
	Description string
}

// User represents a registered user with pantry and recipe history.
type User struct {
	id                 uuid.UUID
	email              string
	passwordHash       string
	firstName          string
	lastName           string
	dietaryPreferences []DietaryPreference
	preferredCuisines  []Cuisine
	createdAt          time.Time
	updatedAt          time.Time
}

// NewUser creates a new user with validation and a hashed password.
func NewUser(email, password, firstName, lastName string) (*User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	if err := validateName(firstName); err != nil {
		return nil, err
	}

	if err := validateName(lastName); err != nil {
		return nil, err
	}

	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	now := time.Now()
	return &User{
		id:           uuid.New(),
		email:        strings.ToLower(email),
		passwordHash: string(hashedPassword),
		firstName:    firstName,
		lastName:     lastName,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructUser rebuilds a user from persisted state.
func ReconstructUser(
	id uuid.UUID,
	email, passwordHash, firstName, lastName string,
	dietaryPreferences []DietaryPreference,
	preferredCuisines []Cuisine,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:                 id,
		email:              email,
		passwordHash:       passwordHash,
		firstName:          firstName,
		lastName:           lastName,
		dietaryPreferences: dietaryPreferences,
		preferredCuisines:  preferredCuisines,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// ID returns the user's ID
func (u *User) ID() uuid.UUID {
	return u.id
}

// Email returns the user's email
func (u *User) Email() string {
	return u.email
}

// PasswordHash returns the stored bcrypt hash
func (u *User) PasswordHash() string {
	return u.passwordHash
}

// FirstName returns the user's first name
func (u *User) FirstName() string {
	return u.firstName
}

// LastName returns the user's last name
func (u *User) LastName() string {
	return u.lastName
}

// DietaryPreferences returns the user's linked dietary preferences
func (u *User) DietaryPreferences() []DietaryPreference {
	return u.dietaryPreferences
}

// PreferredCuisines returns the user's linked cuisines
func (u *User) PreferredCuisines() []Cuisine {
	return u.preferredCuisines
}

// CreatedAt returns when the user was created
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// UpdatedAt returns when the user was last updated
func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// CheckPassword verifies if the provided password matches
func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password))
}

// SetPreferences replaces both preference associations.
func (u *User) SetPreferences(dietary []DietaryPreference, cuisines []Cuisine) {
	u.dietaryPreferences = dietary
	u.preferredCuisines = cuisines
	u.updatedAt = time.Now()
}

// EffectiveDietaryPreference returns the preference fed to the suggestion
// engine: the first linked entry, or the default when none is linked.
// Additional linked entries are ignored; only one preference per
// category is effective at a time.
func (u *User) EffectiveDietaryPreference() string {
	if len(u.dietaryPreferences) == 0 {
		return DefaultDietaryPreference
	}
	return u.dietaryPreferences[0].Name
}

// EffectiveCuisine returns the cuisine fed to the suggestion engine:
// the first linked entry, or the default when none is linked.
func (u *User) EffectiveCuisine() string {
	if len(u.preferredCuisines) == 0 {
		return DefaultCuisine
	}
	return u.preferredCuisines[0].Name
}

// Validation functions
func validateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}

	if !strings.Contains(email, "@") {
		return errors.New("invalid email format")
	}

	if len(email) > 255 {
		return errors.New("email too long")
	}

	return nil
}

func validateName(name string) error {
	if name == "" {
		return errors.New("name is required")
	}

	if len(name) > 100 {
		return errors.New("name too long")
	}

	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	if len(password) > 128 {
		return errors.New("password too long")
	}

	return nil
}
