// Package nav computes which application views a role may reach. The view
// catalog is fixed and ordered; visibility is a stable filter over it.
package nav

import "github.com/emart/inventory/internal/rbac"

// View describes one navigable application view.
type View struct {
	Path       string          `json:"path"`
	Label      string          `json:"label"`
	Capability rbac.Capability `json:"capability"`
}

// catalog is the fixed, ordered set of application views.
var catalog = []View{
	{Path: "/", Label: "Dashboard", Capability: rbac.CapViewDashboard},
	{Path: "/entry", Label: "Inventory Entry", Capability: rbac.CapSubmitEntry},
	{Path: "/approvals", Label: "Approvals", Capability: rbac.CapReviewEntry},
	{Path: "/tracking", Label: "Tracking", Capability: rbac.CapViewTracking},
	{Path: "/alerts", Label: "Alerts", Capability: rbac.CapViewAlerts},
}

// Catalog returns a copy of the full view catalog.
func Catalog() []View {
	views := make([]View, len(catalog))
	copy(views, catalog)
	return views
}

// VisibleViews filters the catalog by the role's capabilities, preserving
// catalog order.
func VisibleViews(role string) []View {
	var views []View
	for _, v := range catalog {
		if rbac.HasCapability(role, v.Capability) {
			views = append(views, v)
		}
	}
	return views
}

// DefaultView returns the first view visible to the role, the target for
// denied or unknown navigation. ok is false when the role can see nothing.
func DefaultView(role string) (View, bool) {
	views := VisibleViews(role)
	if len(views) == 0 {
		return View{}, false
	}
	return views[0], true
}

// Authorize checks that the role may reach the view at path. Unknown paths
// and paths outside the role's visible set are denied; the caller is
// expected to redirect to DefaultView rather than render an error.
func Authorize(role, path string) error {
	for _, v := range VisibleViews(role) {
		if v.Path == path {
			return nil
		}
	}
	return rbac.ErrPermissionDenied
}
