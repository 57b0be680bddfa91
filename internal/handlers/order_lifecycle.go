package handlers

import (
	"errors"
	"strings"
	"time"

	"bengol-backend/internal/models"
)

// Lifecycle errors surfaced to callers as 400-level responses. Messages are
// the user-visible text.
var (
	errNotConfirmable    = errors.New("Only PLACED orders can be confirmed")
	errNotAssignable     = errors.New("Order cannot be assigned at this stage")
	errAlreadyShipped    = errors.New("Order already shipped and cannot be cancelled")
	errInvalidTransition = errors.New("Invalid status transition")
	errOtpRequired       = errors.New("Use OTP verification to complete delivery")
	errOtpNotGenerated   = errors.New("OTP not generated")
	errOtpMismatch       = errors.New("Invalid OTP")
	errOtpExpired        = errors.New("OTP expired")
	errNotOutForDelivery = errors.New("Order is not out for delivery")
	errNotOrderPartner   = errors.New("Not authorized for this order")
)

// deliveryTransitions maps each in-delivery status to the only status a
// partner may request next. DELIVERED appears as a target but is rejected by
// checkDeliveryTransition; the terminal transition goes through the OTP path.
var deliveryTransitions = map[string]string{
	models.StatusAssigned:       models.StatusShipped,
	models.StatusShipped:        models.StatusOutForDelivery,
	models.StatusOutForDelivery: models.StatusDelivered,
}

func confirmableFrom(status string) error {
	if status != models.StatusPlaced {
		return errNotConfirmable
	}
	return nil
}

// assignableFrom permits first assignment from CONFIRMED and idempotent
// re-targeting while still ASSIGNED.
func assignableFrom(status string) error {
	if status != models.StatusConfirmed && status != models.StatusAssigned {
		return errNotAssignable
	}
	return nil
}

// cancellableFrom permits cancellation only before the order leaves the
// warehouse.
func cancellableFrom(status string) error {
	switch status {
	case models.StatusPlaced, models.StatusConfirmed, models.StatusAssigned:
		return nil
	}
	return errAlreadyShipped
}

// checkDeliveryTransition enforces the strict partner sequence. The requested
// status must be exactly the table's value for the current status, and
// DELIVERED is never reachable here.
func checkDeliveryTransition(current, requested string) error {
	if deliveryTransitions[current] != requested {
		return errInvalidTransition
	}
	if requested == models.StatusDelivered {
		return errOtpRequired
	}
	return nil
}

// partnerMayUpdate authorizes a delivery-status change: only the partner the
// order is currently assigned to may move it.
func partnerMayUpdate(order *models.Order, partnerUserID string) error {
	if order.Delivery == nil || order.Delivery.PartnerID.Hex() != partnerUserID {
		return errNotOrderPartner
	}
	return nil
}

// checkDeliveryOtp validates a submitted code against the order. Mismatch is
// reported before expiry, matching the order checks have always run in.
// Requiring OUT_FOR_DELIVERY also rejects replays after a successful verify.
func checkDeliveryOtp(order *models.Order, submitted string, now time.Time) error {
	if order.DeliveryOTP == nil {
		return errOtpNotGenerated
	}
	if order.Status != models.StatusOutForDelivery {
		return errNotOutForDelivery
	}
	if order.DeliveryOTP.Code != submitted {
		return errOtpMismatch
	}
	if !now.Before(order.DeliveryOTP.ExpiresAt) {
		return errOtpExpired
	}
	return nil
}

type orderProductRequest struct {
	Name      string  `json:"name"`
	UOM       string  `json:"uom"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Image     string  `json:"image"`
}

// buildOrderProducts validates line items and computes each line total plus
// the order total. Totals are fixed here and never recomputed.
func buildOrderProducts(items []orderProductRequest) ([]models.OrderProduct, float64, error) {
	if len(items) == 0 {
		return nil, 0, errors.New("at least one product is required")
	}

	products := make([]models.OrderProduct, 0, len(items))
	var total float64

	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		uom := strings.TrimSpace(item.UOM)
		if name == "" || uom == "" || item.Quantity <= 0 || item.UnitPrice < 0 {
			return nil, 0, errors.New("invalid product details")
		}

		lineTotal := float64(item.Quantity) * item.UnitPrice
		products = append(products, models.OrderProduct{
			Name:       name,
			UOM:        uom,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: lineTotal,
			Image:      strings.TrimSpace(item.Image),
		})
		total += lineTotal
	}

	return products, total, nil
}

func validatePaidAmount(paid, total float64) error {
	if paid <= 0 || paid > total {
		return errors.New("Invalid paid amount")
	}
	return nil
}

func validPaymentMode(mode string) bool {
	switch mode {
	case models.PaymentModeCash, models.PaymentModeOnline, models.PaymentModeMixed:
		return true
	}
	return false
}
