package nav

import (
	"errors"
	"testing"

	"github.com/emart/inventory/internal/model"
	"github.com/emart/inventory/internal/rbac"
)

func TestVisibleViewsChecker(t *testing.T) {
	views := VisibleViews(model.RoleChecker)

	paths := make(map[string]bool)
	for _, v := range views {
		paths[v.Path] = true
		if v.Capability == rbac.CapSubmitEntry {
			t.Errorf("checker should not see submit-entry view %q", v.Path)
		}
	}

	for _, want := range []string{"/approvals", "/alerts", "/tracking", "/"} {
		if !paths[want] {
			t.Errorf("checker missing view %q", want)
		}
	}
}

func TestVisibleViewsMaker(t *testing.T) {
	views := VisibleViews(model.RoleMaker)

	for _, v := range views {
		if v.Path == "/approvals" {
			t.Error("maker should not see the approvals view")
		}
	}
	if len(views) == 0 || views[0].Path != "/" {
		t.Errorf("expected dashboard first, got %+v", views)
	}
}

func TestVisibleViewsAdminSeesWholeCatalog(t *testing.T) {
	views := VisibleViews(model.RoleAdmin)
	if len(views) != len(Catalog()) {
		t.Fatalf("expected %d views for admin, got %d", len(Catalog()), len(views))
	}
	// Stable filter: catalog order preserved.
	for i, v := range Catalog() {
		if views[i].Path != v.Path {
			t.Errorf("view %d = %q, want %q", i, views[i].Path, v.Path)
		}
	}
}

func TestVisibleViewsUnknownRole(t *testing.T) {
	if views := VisibleViews("intruder"); len(views) != 0 {
		t.Errorf("expected no views for unknown role, got %d", len(views))
	}
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		role    string
		path    string
		allowed bool
	}{
		{model.RoleMaker, "/entry", true},
		{model.RoleMaker, "/approvals", false},
		{model.RoleChecker, "/approvals", true},
		{model.RoleChecker, "/entry", false},
		{model.RoleAdmin, "/entry", true},
		{model.RoleAdmin, "/approvals", true},
		{model.RoleAdmin, "/no-such-view", false},
		{"unknown", "/", false},
	}

	for _, tt := range tests {
		err := Authorize(tt.role, tt.path)
		if tt.allowed && err != nil {
			t.Errorf("Authorize(%q, %q) = %v, want nil", tt.role, tt.path, err)
		}
		if !tt.allowed && !errors.Is(err, rbac.ErrPermissionDenied) {
			t.Errorf("Authorize(%q, %q) = %v, want ErrPermissionDenied", tt.role, tt.path, err)
		}
	}
}

func TestDefaultView(t *testing.T) {
	for _, role := range rbac.Roles() {
		v, ok := DefaultView(role)
		if !ok {
			t.Fatalf("expected default view for %q", role)
		}
		if v.Path != "/" {
			t.Errorf("default view for %q = %q, want /", role, v.Path)
		}
	}

	if _, ok := DefaultView("unknown"); ok {
		t.Error("expected no default view for unknown role")
	}
}
