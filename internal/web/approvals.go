package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/emart/inventory/internal/model"
	"github.com/emart/inventory/internal/workflow"
)

type approvalsPageData struct {
	PageData
	Pending []model.Entry
}

// ApprovalsPage handles GET /approvals.
func (s *Server) ApprovalsPage(w http.ResponseWriter, r *http.Request) {
	s.renderApprovalsPage(w, r, "", "")
}

// ApprovalSubmit handles POST /approvals/{id}.
func (s *Server) ApprovalSubmit(w http.ResponseWriter, r *http.Request) {
	sess := GetWebSession(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	entry, err := s.Engine.Review(r.Context(), sess, id, r.FormValue("decision"))
	if err != nil {
		switch {
		case errors.Is(err, workflow.ErrNotFound):
			s.renderApprovalsPage(w, r, "Entry not found.", "")
		case errors.Is(err, workflow.ErrInvalidStateTransition):
			s.renderApprovalsPage(w, r, "Entry has already been reviewed.", "")
		default:
			s.renderApprovalsPage(w, r, "Failed to review entry.", "")
		}
		return
	}

	msg := "Entry " + entry.Name + " approved."
	if entry.Status == model.EntryStatusRejected {
		msg = "Entry " + entry.Name + " rejected."
	}
	s.renderApprovalsPage(w, r, "", msg)
}

func (s *Server) renderApprovalsPage(w http.ResponseWriter, r *http.Request, errMsg, successMsg string) {
	sess := GetWebSession(r.Context())

	var pending []model.Entry
	for entry, err := range s.Engine.Pending(r.Context()) {
		if err != nil {
			slog.Error("failed to list pending entries", "error", err)
			break
		}
		pending = append(pending, entry)
	}

	data := s.pageData("Approvals", sess)
	data.Error = errMsg
	data.Success = successMsg
	s.Templates.Render(w, "approvals.html", &approvalsPageData{
		PageData: data,
		Pending:  pending,
	})
}
