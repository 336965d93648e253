package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User represents a registered author or reader
type User struct {
	ID        string    `json:"id" db:"id" bson:"_id"`
	Email     string    `json:"email" db:"email" bson:"email"`
	Username  string    `json:"username" db:"username" bson:"username"`
	Password  string    `json:"-" db:"password" bson:"password"`
	Bio       *string   `json:"bio" db:"bio" bson:"bio"`
	ImageURL  *string   `json:"image" db:"image_url" bson:"imageUrl"`
	CreatedAt time.Time `json:"created_at" db:"created_at" bson:"createdAt"`
}

// NewUser creates a user with a fresh id; passwordHash must already be hashed
func NewUser(email, username, passwordHash string) (*User, error) {
	u := &User{
		ID:        NewID(),
		Email:     email,
		Username:  username,
		Password:  passwordHash,
		CreatedAt: now(),
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *User) EntityID() string { return u.ID }

// Validate checks that all required fields are present
func (u *User) Validate() error {
	return firstError(
		required("user", "id", u.ID),
		required("user", "email", u.Email),
		required("user", "username", u.Username),
		required("user", "password", u.Password),
	)
}

// NaturalKeys returns the email and username keys
func (u *User) NaturalKeys() []NaturalKey {
	return []NaturalKey{
		{Name: "email", Value: u.Email},
		{Name: "username", Value: u.Username},
	}
}

// CheckPassword reports whether plain matches the stored hash
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

// HashPassword hashes a plain-text password with bcrypt.
// A cost of 0 selects bcrypt.DefaultCost.
func HashPassword(plain string, cost int) (string, error) {
	if err := required("user", "password", plain); err != nil {
		return "", err
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
