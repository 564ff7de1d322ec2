package line

import (
	"strings"

	"github.com/secmon-lab/ringi/pkg/domain/model"
)

// buildMessage renders the plain-text push message for one ticket.
// LINE text messages have no markup, so the layout relies on line
// breaks only.
func buildMessage(n *model.TicketNotification) string {
	var b strings.Builder

	b.WriteString("Approval request")
	if n.IssueLabel != "" {
		b.WriteString(" " + n.IssueLabel)
	}
	b.WriteString("\n" + n.ProposalTitle + "\n")

	if n.Description != "" {
		b.WriteString("\n" + n.Description + "\n")
	}
	if len(n.ProposerNames) > 0 {
		b.WriteString("\nProposed by: " + strings.Join(n.ProposerNames, ", ") + "\n")
	}
	if n.Deadline != nil {
		b.WriteString("Respond by: " + n.Deadline.Format("2006-01-02") + "\n")
	}

	if len(n.Attachments) > 0 {
		b.WriteString("\nAttachments:\n")
		for _, a := range n.Attachments {
			b.WriteString(a.Label + "\n" + a.URL + "\n")
		}
	}

	if n.FormURL != "" {
		b.WriteString("\nRespond here:\n" + n.FormURL + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
