// Package inventory defines the pantry item entity and its matching rules
package inventory

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNameRequired is returned when an item name is empty or whitespace.
var ErrNameRequired = errors.New("item name is required")

// ErrItemNotFound is returned when an item does not exist for the user.
var ErrItemNotFound = errors.New("inventory item not found")

// Item is a single pantry entry. Names are stored with their original
// casing but compared case-insensitively: one user never holds two items
// whose names differ only by case.
type Item struct {
	id      uint
	userID  uuid.UUID
	name    string
	addedAt time.Time
}

// NewItem creates a pantry item, preserving the submitted casing.
func NewItem(userID uuid.UUID, name string) (*Item, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}

	return &Item{
		userID:  userID,
		name:    name,
		addedAt: time.Now(),
	}, nil
}

// ReconstructItem rebuilds an item from persisted state.
func ReconstructItem(id uint, userID uuid.UUID, name string, addedAt time.Time) *Item {
	return &Item{
		id:      id,
		userID:  userID,
		name:    name,
		addedAt: addedAt,
	}
}

// ID returns the item's identifier
func (i *Item) ID() uint {
	return i.id
}

// SetID assigns the store-generated identifier after insert.
func (i *Item) SetID(id uint) {
	i.id = id
}

// UserID returns the owning user's identifier
func (i *Item) UserID() uuid.UUID {
	return i.userID
}

// Name returns the item name with its original casing
func (i *Item) Name() string {
	return i.name
}

// AddedAt returns when the item entered the pantry
func (i *Item) AddedAt() time.Time {
	return i.addedAt
}

// SameName reports whether the item's name equals the given name under
// case folding. This is the single matching rule used for dedup on add
// and for consumption when a recipe is cooked.
func (i *Item) SameName(name string) bool {
	return strings.EqualFold(i.name, name)
}
