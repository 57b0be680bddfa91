package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order status values. Status only ever moves forward along
// PLACED -> CONFIRMED -> ASSIGNED -> SHIPPED -> OUT_FOR_DELIVERY -> DELIVERED,
// except re-assignment (ASSIGNED stays ASSIGNED) and cancellation before shipping.
const (
	StatusPlaced         = "PLACED"
	StatusConfirmed      = "CONFIRMED"
	StatusAssigned       = "ASSIGNED"
	StatusShipped        = "SHIPPED"
	StatusOutForDelivery = "OUT_FOR_DELIVERY"
	StatusDelivered      = "DELIVERED"
	StatusCancelled      = "CANCELLED"
)

// Payment modes accepted at order placement.
const (
	PaymentModeCash   = "CASH"
	PaymentModeOnline = "ONLINE"
	PaymentModeMixed  = "MIXED"
)

// PaymentStatusCompleted marks the due amount as settled. It is a side
// channel independent of the order status machine.
const PaymentStatusCompleted = "COMPLETED"

// OrderProduct is a single line item. TotalPrice is computed once at
// placement and never recomputed.
type OrderProduct struct {
	Name       string  `bson:"name" json:"name"`
	UOM        string  `bson:"uom" json:"uom"`
	Quantity   int     `bson:"quantity" json:"quantity"`
	UnitPrice  float64 `bson:"unitPrice" json:"unitPrice"`
	TotalPrice float64 `bson:"totalPrice" json:"totalPrice"`
	Image      string  `bson:"image,omitempty" json:"image,omitempty"`
}

// OrderLocation is where the order was placed, captured once.
type OrderLocation struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// DeliveryAssignment is present once a delivery partner is assigned.
// PartnerID is the directory key used to authorize delivery-status updates.
type DeliveryAssignment struct {
	PartnerID  primitive.ObjectID `bson:"partnerId" json:"partnerId"`
	AssignedBy string             `bson:"assignedBy" json:"assignedBy"`
	AssignedAt time.Time          `bson:"assignedAt" json:"assignedAt"`
}

// DeliveryOTP gates the terminal DELIVERED transition. The code and its
// expiry are never serialized to clients.
type DeliveryOTP struct {
	Code      string    `bson:"code" json:"-"`
	ExpiresAt time.Time `bson:"expiresAt" json:"-"`
	Verified  bool      `bson:"verified" json:"verified"`
}

// Order defines the persisted order document.
type Order struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	OrderID       string              `bson:"orderId" json:"orderId"`
	ConsumerID    string              `bson:"consumerId" json:"consumerId"`
	AgentID       string              `bson:"agentId" json:"agentId"`
	Products      []OrderProduct      `bson:"products" json:"products"`
	TotalAmount   float64             `bson:"totalAmount" json:"totalAmount"`
	PaidAmount    float64             `bson:"paidAmount" json:"paidAmount"`
	DueAmount     float64             `bson:"dueAmount" json:"dueAmount"`
	PaymentMode   string              `bson:"paymentMode" json:"paymentMode"`
	PaymentStatus string              `bson:"paymentStatus,omitempty" json:"paymentStatus,omitempty"`
	DueDate       time.Time           `bson:"dueDate" json:"dueDate"`
	Status        string              `bson:"status" json:"status"`
	OrderLocation OrderLocation       `bson:"orderLocation" json:"orderLocation"`
	Delivery      *DeliveryAssignment `bson:"delivery,omitempty" json:"delivery,omitempty"`
	DeliveryOTP   *DeliveryOTP        `bson:"deliveryOtp,omitempty" json:"deliveryOtp,omitempty"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time           `bson:"updatedAt" json:"updatedAt"`
}
