package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Role strings as issued by the identity provider.
const (
	RoleAgent           = "AGENT"
	RoleAdmin           = "ADMIN"
	RoleEmployee        = "EMPLOYEE"
	RoleDeliveryPartner = "DELIVERY_PARTNER"
)

// Actor is the authenticated caller of an order operation. The set of
// implementations is closed; permission checks dispatch on the concrete type
// instead of comparing role strings.
type Actor interface {
	isActor()
}

// Agent places orders for stores it registered. AgentID is the business
// identifier (e.g. BS2026-001) recorded on orders and store registrations.
type Agent struct {
	UserID  string
	AgentID string
}

// Admin has full back-office access.
type Admin struct {
	UserID string
}

// Employee is a back-office operator. EmployeeID is the business identifier
// recorded as assignedBy on delivery assignments.
type Employee struct {
	UserID            string
	EmployeeID        string
	CanManageProducts bool
}

// DeliveryPartner fulfils assigned orders. UserID is the partner directory
// document id referenced from order assignments.
type DeliveryPartner struct {
	UserID string
}

func (Agent) isActor()           {}
func (Admin) isActor()           {}
func (Employee) isActor()        {}
func (DeliveryPartner) isActor() {}

// FromClaims builds the typed actor out of decoded token claims. Claims are
// trusted as issued; only presence and role membership are checked here.
func FromClaims(claims jwt.MapClaims) (Actor, error) {
	id := stringClaim(claims, "id")
	role := stringClaim(claims, "role")

	switch role {
	case RoleAgent:
		agentID := stringClaim(claims, "agentId")
		if agentID == "" {
			return nil, errors.New("agentId claim missing")
		}
		return Agent{UserID: id, AgentID: agentID}, nil

	case RoleAdmin:
		if id == "" {
			return nil, errors.New("id claim missing")
		}
		return Admin{UserID: id}, nil

	case RoleEmployee:
		employeeID := stringClaim(claims, "employeeId")
		if employeeID == "" {
			return nil, errors.New("employeeId claim missing")
		}
		canManage, _ := claims["canManageProducts"].(bool)
		return Employee{UserID: id, EmployeeID: employeeID, CanManageProducts: canManage}, nil

	case RoleDeliveryPartner:
		if id == "" {
			return nil, errors.New("id claim missing")
		}
		return DeliveryPartner{UserID: id}, nil
	}

	return nil, fmt.Errorf("unknown role %q", role)
}

func stringClaim(claims jwt.MapClaims, key string) string {
	value, _ := claims[key].(string)
	return strings.TrimSpace(value)
}
