package http

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ringi/pkg/domain/model"
	"github.com/secmon-lab/ringi/pkg/domain/types"
	"github.com/secmon-lab/ringi/pkg/utils/errutil"
	"github.com/secmon-lab/ringi/pkg/utils/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type approvalFormData struct {
	TicketID    string
	Title       string
	Description string
	Proposers   []string
	Deadline    string
	Attachments []model.Attachment
	Action      string // preselected radio, "approve" or "deny"
}

type decisionViewData struct {
	TicketID       string
	Title          string
	Approved       bool
	Comment        string
	DecidedAt      string
	AlreadyDecided bool
}

func (s *Server) handleApprovalForm(w http.ResponseWriter, r *http.Request) {
	id := types.TicketID(chi.URLParam(r, "ticketID"))

	ticket, proposal, err := s.uc.GetTicketDetail(r.Context(), id)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}

	if ticket.IsDecided() {
		renderTemplate(r.Context(), w, "decision.html", decisionView(ticket, proposal.Title, true))
		return
	}

	data := approvalFormData{
		TicketID:    string(ticket.ID),
		Title:       proposal.Title,
		Description: proposal.Description,
		Proposers:   proposal.ProposerNames,
		Attachments: model.AttachmentsFromURLs(proposal.AttachmentURLs),
		Action:      formAction(r.URL.Query().Get("action")),
	}
	if proposal.Deadline != nil {
		data.Deadline = proposal.Deadline.Format("2006-01-02")
	}

	renderTemplate(r.Context(), w, "approval.html", data)
}

func (s *Server) handleApprovalSubmit(w http.ResponseWriter, r *http.Request) {
	id := types.TicketID(chi.URLParam(r, "ticketID"))

	if err := r.ParseForm(); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid form submission"), http.StatusBadRequest)
		return
	}

	var decision types.Decision
	switch r.PostFormValue("action") {
	case "approve":
		decision = types.DecisionApproved
	case "deny":
		decision = types.DecisionDenied
	default:
		errutil.HandleHTTP(r.Context(), w,
			goerr.New("action must be approve or deny", goerr.V("action", r.PostFormValue("action"))),
			http.StatusBadRequest)
		return
	}

	result, err := s.uc.RecordDecision(r.Context(), id, decision, r.PostFormValue("comment"))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}

	_, proposal, detailErr := s.uc.GetTicketDetail(r.Context(), id)
	title := ""
	if detailErr == nil {
		title = proposal.Title
	} else {
		logging.From(r.Context()).Warn("failed to load proposal for result page",
			"ticketID", id, "error", detailErr.Error())
	}

	data := decisionViewData{
		TicketID:       string(result.TicketID),
		Title:          title,
		Approved:       result.Decision == types.DecisionApproved,
		Comment:        result.Comment,
		AlreadyDecided: result.AlreadyDecided,
	}
	if !result.DecidedAt.IsZero() {
		data.DecidedAt = result.DecidedAt.Format(time.RFC3339)
	}
	renderTemplate(r.Context(), w, "decision.html", data)
}

func decisionView(ticket *model.ApprovalTicket, title string, alreadyDecided bool) decisionViewData {
	data := decisionViewData{
		TicketID:       string(ticket.ID),
		Title:          title,
		Approved:       ticket.Decision == types.DecisionApproved,
		Comment:        ticket.Comment,
		AlreadyDecided: alreadyDecided,
	}
	if ticket.DecidedAt != nil {
		data.DecidedAt = ticket.DecidedAt.Format(time.RFC3339)
	}
	return data
}

func formAction(raw string) string {
	switch raw {
	case "approve", "deny":
		return raw
	default:
		return ""
	}
}

func renderTemplate(ctx context.Context, w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		errutil.Handle(ctx, err, "failed to render template")
	}
}
