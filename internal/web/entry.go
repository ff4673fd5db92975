package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/emart/inventory/internal/model"
	"github.com/emart/inventory/internal/session"
	"github.com/emart/inventory/internal/store"
	"github.com/emart/inventory/internal/workflow"
)

type entryPageData struct {
	PageData
	Entries []model.Entry
	Draft   model.EntryDraft
}

// EntryPage handles GET /entry.
func (s *Server) EntryPage(w http.ResponseWriter, r *http.Request) {
	sess := GetWebSession(r.Context())
	s.renderEntryPage(w, r, PageData{}, model.EntryDraft{}, sess)
}

// EntrySubmit handles POST /entry.
func (s *Server) EntrySubmit(w http.ResponseWriter, r *http.Request) {
	sess := GetWebSession(r.Context())
	draft := model.EntryDraft{
		Name:         r.FormValue("name"),
		Category:     r.FormValue("category"),
		Quantity:     r.FormValue("quantity"),
		Location:     r.FormValue("location"),
		Supplier:     r.FormValue("supplier"),
		ExpiryDate:   r.FormValue("expiry_date"),
		BatchNumber:  r.FormValue("batch_number"),
		CostPrice:    r.FormValue("cost_price"),
		SellingPrice: r.FormValue("selling_price"),
		Description:  r.FormValue("description"),
	}

	entry, err := s.Engine.Submit(r.Context(), sess, draft)
	if err != nil {
		var validation *workflow.ValidationError
		msg := "Failed to submit entry."
		if errors.As(err, &validation) {
			msg = "Please fill in all required fields."
		}
		s.renderEntryPage(w, r, PageData{Error: msg}, draft, sess)
		return
	}

	msg := "Entry submitted for approval."
	if entry.Status == model.EntryStatusApproved {
		msg = "Entry approved and added to stock."
	}
	s.renderEntryPage(w, r, PageData{Success: msg}, model.EntryDraft{}, sess)
}

func (s *Server) renderEntryPage(w http.ResponseWriter, r *http.Request, base PageData, draft model.EntryDraft, sess *session.Session) {
	entries, err := store.ListEntries(r.Context(), s.DB, "")
	if err != nil {
		slog.Error("failed to list entries", "error", err)
	}

	data := s.pageData("Inventory Entry", sess)
	data.Error = base.Error
	data.Success = base.Success
	s.Templates.Render(w, "entry.html", &entryPageData{
		PageData: data,
		Entries:  entries,
		Draft:    draft,
	})
}
