package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Delivery partner statuses. Only ACTIVE partners may be assigned.
const (
	PartnerStatusActive   = "ACTIVE"
	PartnerStatusInactive = "INACTIVE"
)

// DeliveryPartner is a fulfilment driver. Orders reference partners by
// document id; the status field gates new assignments.
type DeliveryPartner struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Phone     string             `bson:"phone" json:"phone"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	IsOnline  bool               `bson:"isOnline" json:"isOnline"`
	Status    string             `bson:"status" json:"status"`
	Role      string             `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
