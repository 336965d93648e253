package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidField is returned when a required field is missing or malformed
var ErrInvalidField = errors.New("invalid field")

// FieldError describes a single invalid field of an entity
type FieldError struct {
	Entity  string
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s.%s: %s", e.Entity, e.Field, e.Message)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidField
}

// NaturalKey is a business-meaningful unique identifier of an entity,
// distinct from its generated ID.
type NaturalKey struct {
	Name  string
	Value string
}

func (k NaturalKey) String() string {
	return k.Name + "=" + k.Value
}

// Entity is implemented by every persisted type
type Entity interface {
	EntityID() string
	Validate() error
	NaturalKeys() []NaturalKey
}

var whitespaceRegex = regexp.MustCompile(`\s+`)

// Slugify lower-cases a title and replaces whitespace runs with '-'
func Slugify(title string) string {
	return whitespaceRegex.ReplaceAllString(strings.ToLower(strings.TrimSpace(title)), "-")
}

// NewID returns a fresh entity id
func NewID() string {
	return uuid.NewString()
}

func required(entity, field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &FieldError{Entity: entity, Field: field, Message: field + " is required"}
	}
	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func pairKey(name, left, right string) NaturalKey {
	return NaturalKey{Name: name, Value: left + "/" + right}
}

func now() time.Time {
	return time.Now().UTC()
}
