package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultRole       = "Agent"
	DefaultDepartment = "Sales"
)

type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name" validate:"required"`
	Email      string             `bson:"email" json:"email" validate:"required,email"`
	Phone      string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Role       string             `bson:"role" json:"role" validate:"required,oneof=Admin Manager Agent Assistant Developer Marketing Sales"`
	Department string             `bson:"department" json:"department" validate:"oneof=Sales Marketing Operations IT HR Finance Management"`
	Bio        string             `bson:"bio,omitempty" json:"bio,omitempty" validate:"max=500"`
	Skills     []string           `bson:"skills" json:"skills"`
	Images     []string           `bson:"images" json:"images"`
	IsActive   bool               `bson:"isActive" json:"isActive"`
	DateJoined time.Time          `bson:"dateJoined" json:"dateJoined"`
	LastLogin  *time.Time         `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	// Write-only; reads project it out and it never marshals into a response.
	Password  string    `bson:"password,omitempty" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
