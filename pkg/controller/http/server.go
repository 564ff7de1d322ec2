package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ringi/pkg/domain/types"
	"github.com/secmon-lab/ringi/pkg/usecase"
	"github.com/secmon-lab/ringi/pkg/utils/async"
	"github.com/secmon-lab/ringi/pkg/utils/errutil"
	"github.com/secmon-lab/ringi/pkg/utils/logging"
)

type Server struct {
	router      *chi.Mux
	uc          *usecase.UseCases
	sweepSecret string
}

type Options func(*Server)

// WithSweepSecret protects the sweep hook with a bearer token. Without
// it the hook is disabled.
func WithSweepSecret(secret string) Options {
	return func(s *Server) {
		s.sweepSecret = secret
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK")) //nolint:errcheck
	})

	// Trigger endpoints
	r.Route("/api/proposal/{proposalID}", func(r chi.Router) {
		r.Post("/process", s.handleProcess)
		r.Post("/number", s.handleEnsureNumber)
		r.Post("/tickets", s.handleIssueTickets)
	})
	r.Post("/api/ticket/{ticketID}/decision", s.handleDecision)

	// Record store webhook: respond immediately, process in background
	r.Post("/hooks/proposal", s.handleProposalHook)

	// Scheduled sweep (disabled without a secret)
	if s.sweepSecret != "" {
		r.With(bearerAuth(s.sweepSecret)).Post("/hooks/sweep", s.handleSweep)
	}

	// Approval form
	r.Get("/approval/{ticketID}", s.handleApprovalForm)
	r.Post("/approval/{ticketID}", s.handleApprovalSubmit)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	id := types.ProposalID(chi.URLParam(r, "proposalID"))

	result, err := s.uc.ProcessProposal(r.Context(), id)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, newIssueResponse(result))
}

func (s *Server) handleEnsureNumber(w http.ResponseWriter, r *http.Request) {
	id := types.ProposalID(chi.URLParam(r, "proposalID"))

	n, err := s.uc.EnsureIssueNumber(r.Context(), id)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, map[string]any{
		"proposal_id":  id,
		"issue_number": n,
	})
}

func (s *Server) handleIssueTickets(w http.ResponseWriter, r *http.Request) {
	id := types.ProposalID(chi.URLParam(r, "proposalID"))

	result, err := s.uc.IssueTickets(r.Context(), id)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, newIssueResponse(result))
}

type decisionRequest struct {
	Decision string `json:"decision"`
	Comment  string `json:"comment"`
}

func (s *Server) handleDecision(w http.ResponseWriter, r *http.Request) {
	id := types.TicketID(chi.URLParam(r, "ticketID"))

	var req decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	decision, err := types.ParseDecision(req.Decision)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	result, err := s.uc.RecordDecision(r.Context(), id, decision, req.Comment)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	body := map[string]any{
		"ticket_id":       result.TicketID,
		"decision":        result.Decision,
		"comment":         result.Comment,
		"already_decided": result.AlreadyDecided,
	}
	// The record store may hold a decision without a decided-at date
	if !result.DecidedAt.IsZero() {
		body["decided_at"] = result.DecidedAt.Format(time.RFC3339)
	}
	respondJSON(r.Context(), w, body)
}

type proposalHookPayload struct {
	PageID string `json:"page_id"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}

// handleProposalHook accepts the record store's automation webhook for a
// newly submitted proposal. The webhook sender does not wait for the
// pipeline, so the work runs in the background.
func (s *Server) handleProposalHook(w http.ResponseWriter, r *http.Request) {
	var payload proposalHookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid webhook payload"), http.StatusBadRequest)
		return
	}

	pageID := payload.Data.ID
	if pageID == "" {
		pageID = payload.PageID
	}
	if pageID == "" {
		errutil.HandleHTTP(r.Context(), w, goerr.New("webhook payload has no page ID"), http.StatusBadRequest)
		return
	}

	async.Dispatch(r.Context(), func(ctx context.Context) error {
		result, err := s.uc.ProcessProposal(ctx, types.ProposalID(pageID))
		if err != nil {
			return err
		}
		logging.From(ctx).Info("processed proposal from webhook",
			"proposalID", pageID,
			"created", len(result.Created),
			"skipped", len(result.Skipped),
			"notifyFailures", len(result.NotifyFailures),
		)
		return nil
	})

	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	result, err := s.uc.SweepPending(r.Context())
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}

	failed := make([]string, 0, len(result.Failed))
	for _, f := range result.Failed {
		failed = append(failed, string(f.ProposalID))
	}
	respondJSON(r.Context(), w, map[string]any{
		"processed": len(result.Processed),
		"failed":    failed,
	})
}
