package slack

import (
	"fmt"
	"strings"

	"github.com/secmon-lab/ringi/pkg/domain/model"
)

// buildMessage renders the mrkdwn message body for one ticket
func buildMessage(n *model.TicketNotification) string {
	var b strings.Builder

	b.WriteString("*Approval request")
	if n.IssueLabel != "" {
		b.WriteString(" " + n.IssueLabel)
	}
	b.WriteString(": " + n.ProposalTitle + "*\n")

	if n.Description != "" {
		b.WriteString("\n" + n.Description + "\n")
	}
	if len(n.ProposerNames) > 0 {
		b.WriteString("\n*Proposed by:* " + strings.Join(n.ProposerNames, ", ") + "\n")
	}
	if n.Deadline != nil {
		b.WriteString("*Respond by:* " + n.Deadline.Format("2006-01-02") + "\n")
	}

	if len(n.Attachments) > 0 {
		b.WriteString("\n*Attachments:*\n")
		for _, a := range n.Attachments {
			b.WriteString(fmt.Sprintf("• <%s|%s>\n", a.URL, a.Label))
		}
	}

	if n.FormURL != "" {
		b.WriteString(fmt.Sprintf("\n<%s|Respond here>", n.FormURL))
		if n.ApproveURL != "" && n.DenyURL != "" {
			b.WriteString(fmt.Sprintf(" · <%s|Approve> · <%s|Deny>", n.ApproveURL, n.DenyURL))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
