package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ringi/pkg/domain/model"
	"github.com/secmon-lab/ringi/pkg/usecase"
	"github.com/secmon-lab/ringi/pkg/utils/errutil"
	"github.com/secmon-lab/ringi/pkg/utils/safe"
)

type issueResponse struct {
	ProposalID     string              `json:"proposal_id"`
	Created        []string            `json:"created"`
	Skipped        []string            `json:"skipped"`
	NotifyFailures []notifyFailureBody `json:"notify_failures"`
}

type notifyFailureBody struct {
	MemberID string `json:"member_id"`
	TicketID string `json:"ticket_id"`
	Error    string `json:"error"`
}

func newIssueResponse(result *model.IssueResult) issueResponse {
	resp := issueResponse{
		ProposalID:     string(result.ProposalID),
		Created:        make([]string, 0, len(result.Created)),
		Skipped:        make([]string, 0, len(result.Skipped)),
		NotifyFailures: make([]notifyFailureBody, 0, len(result.NotifyFailures)),
	}
	for _, id := range result.Created {
		resp.Created = append(resp.Created, string(id))
	}
	for _, id := range result.Skipped {
		resp.Skipped = append(resp.Skipped, string(id))
	}
	for _, f := range result.NotifyFailures {
		resp.NotifyFailures = append(resp.NotifyFailures, notifyFailureBody{
			MemberID: string(f.MemberID),
			TicketID: string(f.TicketID),
			Error:    f.Err.Error(),
		})
	}
	return resp
}

func respondJSON(ctx context.Context, w http.ResponseWriter, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	safe.Write(ctx, w, data)
}

// handleError maps the error taxonomy onto HTTP status codes
func handleError(ctx context.Context, w http.ResponseWriter, err error) {
	errutil.HandleHTTP(ctx, w, err, statusOf(err))
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, usecase.ErrMissingRequiredField):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrUpstreamUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
