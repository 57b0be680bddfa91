package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store statuses.
const (
	StoreStatusActive   = "ACTIVE"
	StoreStatusInactive = "INACTIVE"
)

// StoreLocation is the store's fixed coordinates, used for delivery routing.
type StoreLocation struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// Store is a retail or wholesale buyer registered by a field agent.
// ConsumerID is the business identifier referenced from orders; RegisteredBy
// is the agent business id that owns the relationship.
type Store struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ConsumerID   string             `bson:"consumerId" json:"consumerId"`
	StoreName    string             `bson:"storeName" json:"storeName"`
	OwnerName    string             `bson:"ownerName" json:"ownerName"`
	Phone        string             `bson:"phone" json:"phone"`
	Address      string             `bson:"address" json:"address"`
	Location     StoreLocation      `bson:"location" json:"location"`
	StoreType    string             `bson:"storeType" json:"storeType"`
	RegisteredBy string             `bson:"registeredBy" json:"registeredBy"`
	Status       string             `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
