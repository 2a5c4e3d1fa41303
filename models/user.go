// models/user.go
package models

import "time"

const (
	AccountPersonal     = "personal"
	AccountProfessional = "professional"
)

// User is the read-only view of an account owned by the identity service.
type User struct {
	ID          string    `bson:"id" json:"id"`
	Email       string    `bson:"email" json:"email"`
	FirstName   string    `bson:"firstName" json:"firstName"`
	LastName    string    `bson:"lastName" json:"lastName"`
	AccountType string    `bson:"accountType" json:"accountType"` // "personal" or "professional"
	IsActive    bool      `bson:"isActive" json:"isActive"`
	Currency    string    `bson:"currency,omitempty" json:"currency,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// IsProfessional reports whether the account is a professional one.
func (u User) IsProfessional() bool {
	return u.AccountType == AccountProfessional
}

// Role maps the account type to the role used on negotiation messages.
func (u User) Role() SenderRole {
	if u.IsProfessional() {
		return SenderProfessional
	}
	return SenderCreator
}

// DisplayName joins first and last name.
func (u User) DisplayName() string {
	switch {
	case u.FirstName == "" && u.LastName == "":
		return u.Email
	case u.LastName == "":
		return u.FirstName
	case u.FirstName == "":
		return u.LastName
	}
	return u.FirstName + " " + u.LastName
}

// UserBrief is the public part of a user shown to the other participant.
type UserBrief struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AccountType string `json:"accountType"`
}

// Brief returns the public part of the user.
func (u User) Brief() UserBrief {
	return UserBrief{ID: u.ID, Name: u.DisplayName(), AccountType: u.AccountType}
}
