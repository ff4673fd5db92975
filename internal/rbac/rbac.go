// Package rbac is the single authorization choke point: every permission
// decision in the application goes through HasCapability. No other code may
// branch on role names directly.
package rbac

import (
	"errors"

	"github.com/emart/inventory/internal/model"
)

// Capability is a named permission granted to one or more roles.
type Capability string

// Capabilities.
const (
	CapViewDashboard Capability = "view-dashboard"
	CapSubmitEntry   Capability = "submit-entry"
	CapReviewEntry   Capability = "review-entry"
	CapViewTracking  Capability = "view-tracking"
	CapViewAlerts    Capability = "view-alerts"
	CapResolveAlert  Capability = "resolve-alert"
	CapManageUsers   Capability = "manage-users"
)

// ErrInvalidRole is returned for any role outside the closed set.
var ErrInvalidRole = errors.New("invalid role")

// ErrPermissionDenied is returned when a role lacks a required capability.
var ErrPermissionDenied = errors.New("permission denied")

// capabilityOrder fixes the order CapabilitiesFor reports grants in.
var capabilityOrder = []Capability{
	CapViewDashboard,
	CapSubmitEntry,
	CapReviewEntry,
	CapViewTracking,
	CapViewAlerts,
	CapResolveAlert,
	CapManageUsers,
}

// grants maps each role to its capability set. Admin holds the union of
// all capabilities; makers submit but never review; checkers review but
// never submit.
var grants = map[string]map[Capability]bool{
	model.RoleAdmin: {
		CapViewDashboard: true,
		CapSubmitEntry:   true,
		CapReviewEntry:   true,
		CapViewTracking:  true,
		CapViewAlerts:    true,
		CapResolveAlert:  true,
		CapManageUsers:   true,
	},
	model.RoleMaker: {
		CapViewDashboard: true,
		CapSubmitEntry:   true,
		CapViewTracking:  true,
		CapViewAlerts:    true,
		CapResolveAlert:  true,
	},
	model.RoleChecker: {
		CapViewDashboard: true,
		CapReviewEntry:   true,
		CapViewTracking:  true,
		CapViewAlerts:    true,
		CapResolveAlert:  true,
	},
}

// ValidRole reports whether role is a member of the closed role set.
func ValidRole(role string) bool {
	_, ok := grants[role]
	return ok
}

// Roles returns the closed role set in a fixed order.
func Roles() []string {
	return []string{model.RoleAdmin, model.RoleMaker, model.RoleChecker}
}

// HasCapability reports whether role holds cap. Unknown roles and unknown
// capabilities yield false: the check fails closed, never open.
func HasCapability(role string, cap Capability) bool {
	return grants[role][cap]
}

// CapabilitiesFor returns the fixed capability set for a valid role.
func CapabilitiesFor(role string) ([]Capability, error) {
	set, ok := grants[role]
	if !ok {
		return nil, ErrInvalidRole
	}
	caps := make([]Capability, 0, len(set))
	for _, c := range capabilityOrder {
		if set[c] {
			caps = append(caps, c)
		}
	}
	return caps, nil
}
