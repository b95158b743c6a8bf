package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Property struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PropertyID   string             `bson:"propertyId" json:"propertyId" validate:"required"`
	Title        string             `bson:"title" json:"title" validate:"required"`
	Description  string             `bson:"description" json:"description" validate:"required"`
	Price        float64            `bson:"price" json:"price" validate:"required"`
	Location     string             `bson:"location" json:"location" validate:"required"`
	HouseNumber  string             `bson:"houseNumber" json:"houseNumber" validate:"required"`
	BlockNumber  string             `bson:"blockNumber" json:"blockNumber" validate:"required"`
	Images       []string           `bson:"images" json:"images"`
	PropertyType string             `bson:"propertyType" json:"propertyType" validate:"required,oneof=house apartment farmhouse commercial"`
	Bedrooms     int                `bson:"bedrooms" json:"bedrooms" validate:"required"`
	Bathrooms    int                `bson:"bathrooms" json:"bathrooms" validate:"required"`
	Garage       int                `bson:"garage" json:"garage" validate:"required"`
	AreaSize     string             `bson:"areaSize" json:"areaSize" validate:"required"`
	YearBuilt    int                `bson:"yearBuilt" json:"yearBuilt" validate:"required"`
	Featured     bool               `bson:"featured" json:"featured"`
	Features     []string           `bson:"features" json:"features"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
