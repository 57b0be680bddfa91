package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bengol-backend/internal/models"
)

func TestBuildOrderProductsComputesTotals(t *testing.T) {
	products, total, err := buildOrderProducts([]orderProductRequest{
		{Name: "Turmeric Powder", UOM: "kg", Quantity: 2, UnitPrice: 100},
		{Name: "Cumin Seeds", UOM: "kg", Quantity: 3, UnitPrice: 50},
	})
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, 200.0, products[0].TotalPrice)
	assert.Equal(t, 150.0, products[1].TotalPrice)
	assert.Equal(t, 350.0, total)

	var sum float64
	for _, p := range products {
		sum += p.TotalPrice
	}
	assert.Equal(t, total, sum)
}

func TestBuildOrderProductsRejectsBadLines(t *testing.T) {
	cases := map[string][]orderProductRequest{
		"empty list":      {},
		"missing name":    {{Name: " ", UOM: "kg", Quantity: 1, UnitPrice: 10}},
		"missing uom":     {{Name: "Chili", UOM: "", Quantity: 1, UnitPrice: 10}},
		"zero quantity":   {{Name: "Chili", UOM: "kg", Quantity: 0, UnitPrice: 10}},
		"negative price":  {{Name: "Chili", UOM: "kg", Quantity: 1, UnitPrice: -1}},
		"one bad of many": {{Name: "Chili", UOM: "kg", Quantity: 1, UnitPrice: 10}, {Name: "Pepper", UOM: "kg", Quantity: -2, UnitPrice: 10}},
	}
	for name, items := range cases {
		_, _, err := buildOrderProducts(items)
		assert.Error(t, err, name)
	}
}

func TestValidatePaidAmount(t *testing.T) {
	assert.NoError(t, validatePaidAmount(250, 350))
	assert.NoError(t, validatePaidAmount(350, 350))
	assert.Error(t, validatePaidAmount(0, 350))
	assert.Error(t, validatePaidAmount(-10, 350))
	assert.Error(t, validatePaidAmount(351, 350))
}

func TestValidPaymentMode(t *testing.T) {
	assert.True(t, validPaymentMode(models.PaymentModeCash))
	assert.True(t, validPaymentMode(models.PaymentModeOnline))
	assert.True(t, validPaymentMode(models.PaymentModeMixed))
	assert.False(t, validPaymentMode("CARD"))
	assert.False(t, validPaymentMode(""))
}

func TestConfirmableFromOnlyPlaced(t *testing.T) {
	assert.NoError(t, confirmableFrom(models.StatusPlaced))

	for _, status := range []string{
		models.StatusConfirmed,
		models.StatusAssigned,
		models.StatusShipped,
		models.StatusOutForDelivery,
		models.StatusDelivered,
		models.StatusCancelled,
	} {
		assert.ErrorIs(t, confirmableFrom(status), errNotConfirmable, status)
	}
}

func TestAssignableFromConfirmedOrAssigned(t *testing.T) {
	assert.NoError(t, assignableFrom(models.StatusConfirmed))
	// re-assignment while still ASSIGNED is an idempotent re-target
	assert.NoError(t, assignableFrom(models.StatusAssigned))

	for _, status := range []string{
		models.StatusPlaced,
		models.StatusShipped,
		models.StatusOutForDelivery,
		models.StatusDelivered,
		models.StatusCancelled,
	} {
		assert.ErrorIs(t, assignableFrom(status), errNotAssignable, status)
	}
}

func TestCancellableOnlyBeforeShipping(t *testing.T) {
	for _, status := range []string{
		models.StatusPlaced,
		models.StatusConfirmed,
		models.StatusAssigned,
	} {
		assert.NoError(t, cancellableFrom(status), status)
	}

	for _, status := range []string{
		models.StatusShipped,
		models.StatusOutForDelivery,
		models.StatusDelivered,
		models.StatusCancelled,
	} {
		assert.ErrorIs(t, cancellableFrom(status), errAlreadyShipped, status)
	}
}

func TestDeliveryTransitionTable(t *testing.T) {
	assert.NoError(t, checkDeliveryTransition(models.StatusAssigned, models.StatusShipped))
	assert.NoError(t, checkDeliveryTransition(models.StatusShipped, models.StatusOutForDelivery))

	// DELIVERED is only reachable through OTP verification.
	assert.ErrorIs(t,
		checkDeliveryTransition(models.StatusOutForDelivery, models.StatusDelivered),
		errOtpRequired)

	// everything else is rejected outright
	rejected := []struct{ from, to string }{
		{models.StatusAssigned, models.StatusOutForDelivery},
		{models.StatusAssigned, models.StatusDelivered},
		{models.StatusShipped, models.StatusShipped},
		{models.StatusShipped, models.StatusDelivered},
		{models.StatusShipped, models.StatusAssigned},
		{models.StatusOutForDelivery, models.StatusShipped},
		{models.StatusPlaced, models.StatusShipped},
		{models.StatusConfirmed, models.StatusShipped},
		{models.StatusDelivered, models.StatusDelivered},
		{models.StatusCancelled, models.StatusShipped},
	}
	for _, tc := range rejected {
		assert.ErrorIs(t, checkDeliveryTransition(tc.from, tc.to), errInvalidTransition, "%s -> %s", tc.from, tc.to)
	}
}

func TestPartnerMayUpdateOnlyAssignedPartner(t *testing.T) {
	partnerP := primitive.NewObjectID()
	partnerQ := primitive.NewObjectID()

	order := &models.Order{
		OrderID: "ORD2026-0001",
		Status:  models.StatusAssigned,
		Delivery: &models.DeliveryAssignment{
			PartnerID:  partnerP,
			AssignedBy: "EMP2026-001",
			AssignedAt: time.Now(),
		},
	}

	assert.NoError(t, partnerMayUpdate(order, partnerP.Hex()))
	assert.ErrorIs(t, partnerMayUpdate(order, partnerQ.Hex()), errNotOrderPartner)

	unassigned := &models.Order{OrderID: "ORD2026-0002", Status: models.StatusConfirmed}
	assert.ErrorIs(t, partnerMayUpdate(unassigned, partnerP.Hex()), errNotOrderPartner)
}

func otpOrder(status string, code string, expiresAt time.Time) *models.Order {
	return &models.Order{
		OrderID: "ORD2026-0001",
		Status:  status,
		DeliveryOTP: &models.DeliveryOTP{
			Code:      code,
			ExpiresAt: expiresAt,
		},
	}
}

func TestCheckDeliveryOtp(t *testing.T) {
	now := time.Now()

	t.Run("not generated", func(t *testing.T) {
		order := &models.Order{Status: models.StatusOutForDelivery}
		assert.ErrorIs(t, checkDeliveryOtp(order, "482913", now), errOtpNotGenerated)
	})

	t.Run("valid code within window", func(t *testing.T) {
		order := otpOrder(models.StatusOutForDelivery, "482913", now.Add(5*time.Minute))
		assert.NoError(t, checkDeliveryOtp(order, "482913", now))
	})

	t.Run("mismatch", func(t *testing.T) {
		order := otpOrder(models.StatusOutForDelivery, "482913", now.Add(5*time.Minute))
		assert.ErrorIs(t, checkDeliveryOtp(order, "000000", now), errOtpMismatch)
	})

	t.Run("expired after window", func(t *testing.T) {
		order := otpOrder(models.StatusOutForDelivery, "482913", now.Add(5*time.Minute))
		assert.ErrorIs(t, checkDeliveryOtp(order, "482913", now.Add(6*time.Minute)), errOtpExpired)
	})

	t.Run("mismatch reported before expiry", func(t *testing.T) {
		order := otpOrder(models.StatusOutForDelivery, "482913", now.Add(-time.Minute))
		assert.ErrorIs(t, checkDeliveryOtp(order, "000000", now), errOtpMismatch)
	})

	t.Run("leading zeros compared as text", func(t *testing.T) {
		order := otpOrder(models.StatusOutForDelivery, "004829", now.Add(5*time.Minute))
		assert.NoError(t, checkDeliveryOtp(order, "004829", now))
		assert.ErrorIs(t, checkDeliveryOtp(order, "4829", now), errOtpMismatch)
	})

	t.Run("replay after delivery rejected", func(t *testing.T) {
		order := otpOrder(models.StatusDelivered, "482913", now.Add(5*time.Minute))
		order.DeliveryOTP.Verified = true
		assert.ErrorIs(t, checkDeliveryOtp(order, "482913", now), errNotOutForDelivery)
	})
}

// Walks the full happy path at the state-machine level: PLACED through
// DELIVERED, with the OTP gate at the end.
func TestLifecycleForwardOnly(t *testing.T) {
	now := time.Now()
	order := &models.Order{Status: models.StatusPlaced}

	require.NoError(t, confirmableFrom(order.Status))
	order.Status = models.StatusConfirmed

	require.NoError(t, assignableFrom(order.Status))
	order.Status = models.StatusAssigned

	require.NoError(t, checkDeliveryTransition(order.Status, models.StatusShipped))
	order.Status = models.StatusShipped

	require.NoError(t, checkDeliveryTransition(order.Status, models.StatusOutForDelivery))
	order.Status = models.StatusOutForDelivery

	order.DeliveryOTP = &models.DeliveryOTP{Code: "123456", ExpiresAt: now.Add(5 * time.Minute)}
	require.NoError(t, checkDeliveryOtp(order, "123456", now))
	order.Status = models.StatusDelivered
	order.DeliveryOTP.Verified = true

	// nothing moves a delivered order
	assert.Error(t, confirmableFrom(order.Status))
	assert.Error(t, assignableFrom(order.Status))
	assert.Error(t, cancellableFrom(order.Status))
	assert.Error(t, checkDeliveryTransition(order.Status, models.StatusShipped))
	assert.Error(t, checkDeliveryOtp(order, "123456", now))
}
