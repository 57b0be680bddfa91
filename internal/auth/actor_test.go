package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromClaimsAgent(t *testing.T) {
	actor, err := FromClaims(jwt.MapClaims{
		"id":      "64f0c2",
		"role":    RoleAgent,
		"agentId": "BS2026-001",
	})
	require.NoError(t, err)

	agent, ok := actor.(Agent)
	require.True(t, ok)
	assert.Equal(t, "BS2026-001", agent.AgentID)
	assert.Equal(t, "64f0c2", agent.UserID)
}

func TestFromClaimsAgentRequiresAgentID(t *testing.T) {
	_, err := FromClaims(jwt.MapClaims{"id": "64f0c2", "role": RoleAgent})
	assert.Error(t, err)
}

func TestFromClaimsAdmin(t *testing.T) {
	actor, err := FromClaims(jwt.MapClaims{"id": "a1", "role": RoleAdmin})
	require.NoError(t, err)
	_, ok := actor.(Admin)
	assert.True(t, ok)
}

func TestFromClaimsEmployee(t *testing.T) {
	actor, err := FromClaims(jwt.MapClaims{
		"id":                "e1",
		"role":              RoleEmployee,
		"employeeId":        "EMP2026-001",
		"canManageProducts": true,
	})
	require.NoError(t, err)

	employee, ok := actor.(Employee)
	require.True(t, ok)
	assert.Equal(t, "EMP2026-001", employee.EmployeeID)
	assert.True(t, employee.CanManageProducts)
}

func TestFromClaimsEmployeeRequiresEmployeeID(t *testing.T) {
	_, err := FromClaims(jwt.MapClaims{"id": "e1", "role": RoleEmployee})
	assert.Error(t, err)
}

func TestFromClaimsDeliveryPartner(t *testing.T) {
	actor, err := FromClaims(jwt.MapClaims{"id": "p1", "role": RoleDeliveryPartner})
	require.NoError(t, err)

	partner, ok := actor.(DeliveryPartner)
	require.True(t, ok)
	assert.Equal(t, "p1", partner.UserID)
}

func TestFromClaimsRejectsUnknownRole(t *testing.T) {
	for _, role := range []string{"", "CUSTOMER", "agent", "SUPERADMIN"} {
		_, err := FromClaims(jwt.MapClaims{"id": "x", "role": role})
		assert.Error(t, err, role)
	}
}
