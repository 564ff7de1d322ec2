package notion

// Schema declares how the three Notion databases map onto the internal
// record types. Every property lookup goes through a candidate list in
// priority order, so historical or localized property names are handled
// here and nowhere else. Option alias lists map Notion select option
// names onto the internal enums; the first alias is the canonical name
// used when writing back.
type Schema struct {
	Proposal ProposalSchema `toml:"proposal"`
	Member   MemberSchema   `toml:"member"`
	Ticket   TicketSchema   `toml:"ticket"`
	Options  OptionAliases  `toml:"options"`
}

// ProposalSchema maps proposal database properties
type ProposalSchema struct {
	Title        []string `toml:"title"`
	Audience     []string `toml:"audience"`
	Category     []string `toml:"category"`      // select or relation
	CategoryCode []string `toml:"category_code"` // formula / rollup / rich_text
	IssueNumber  []string `toml:"issue_number"`
	Description  []string `toml:"description"`
	Deadline     []string `toml:"deadline"`
	Proposers    []string `toml:"proposers"`
	SendStatus   []string `toml:"send_status"`
	CreatedAt    []string `toml:"created_at"`
	// AttachmentPrefixes match URL properties by name prefix; every
	// matching property contributes one attachment link.
	AttachmentPrefixes []string `toml:"attachment_prefixes"`
}

// MemberSchema maps member database properties
type MemberSchema struct {
	Name          []string `toml:"name"`
	BoardDirector []string `toml:"board_director"`
	GeneralMember []string `toml:"general_member"`
	Channel       []string `toml:"channel"`
	ServiceStatus []string `toml:"service_status"`
}

// TicketSchema maps approval ticket database properties
type TicketSchema struct {
	Title      []string `toml:"title"`
	Proposal   []string `toml:"proposal"`
	Member     []string `toml:"member"`
	Decision   []string `toml:"decision"`
	DecidedAt  []string `toml:"decided_at"`
	Comment    []string `toml:"comment"`
	FormURL    []string `toml:"form_url"`
	ApproveURL []string `toml:"approve_url"`
	DenyURL    []string `toml:"deny_url"`
}

// OptionAliases maps select option names onto internal enums
type OptionAliases struct {
	AudienceBoard    []string `toml:"audience_board"`
	AudienceGeneral  []string `toml:"audience_general"`
	DecisionApproved []string `toml:"decision_approved"`
	DecisionDenied   []string `toml:"decision_denied"`
	StatusProduction []string `toml:"status_production"`
	SendPending      []string `toml:"send_pending"`
	SendSent         []string `toml:"send_sent"`
}

// DefaultSchema returns the schema used when no TOML override is given.
// The fallbacks cover the property names of the original Japanese
// workspace this service was built for.
func DefaultSchema() *Schema {
	return &Schema{
		Proposal: ProposalSchema{
			Title:              []string{"Name", "Title", "名前", "タイトル"},
			Audience:           []string{"Audience", "承認対象"},
			Category:           []string{"Category", "区分"},
			CategoryCode:       []string{"Category Code", "区分コード"},
			IssueNumber:        []string{"Issue Number", "連番"},
			Description:        []string{"Description", "内容（説明）"},
			Deadline:           []string{"Deadline", "承認期限", "期限"},
			Proposers:          []string{"Proposers", "発議者"},
			SendStatus:         []string{"Send Status", "送信ステータス"},
			CreatedAt:          []string{"Created At", "作成日時"},
			AttachmentPrefixes: []string{"Attachment", "添付リンク"},
		},
		Member: MemberSchema{
			Name:          []string{"Name", "氏名", "名前"},
			BoardDirector: []string{"Board Director", "理事"},
			GeneralMember: []string{"General Member", "正会員"},
			Channel:       []string{"LINE User ID", "LINEユーザーID"},
			ServiceStatus: []string{"Service Status", "承認システム利用ステータス"},
		},
		Ticket: TicketSchema{
			Title:      []string{"Name", "名前"},
			Proposal:   []string{"Proposal", "議案"},
			Member:     []string{"Member", "会員"},
			Decision:   []string{"Decision", "承認結果"},
			DecidedAt:  []string{"Decided At", "承認日時"},
			Comment:    []string{"Comment", "コメント（表示用）", "コメント"},
			FormURL:    []string{"Form URL", "送信URL"},
			ApproveURL: []string{"Approve URL", "approveURL"},
			DenyURL:    []string{"Deny URL", "denyURL"},
		},
		Options: OptionAliases{
			AudienceBoard:    []string{"Board", "理事会"},
			AudienceGeneral:  []string{"General", "正会員"},
			DecisionApproved: []string{"Approved", "承認"},
			DecisionDenied:   []string{"Denied", "否認"},
			StatusProduction: []string{"Production", "本番"},
			SendPending:      []string{"Pending", "未送信"},
			SendSent:         []string{"Sent", "送信済"},
		},
	}
}

// canonical returns the option name written back to Notion
func canonical(aliases []string) string {
	if len(aliases) == 0 {
		return ""
	}
	return aliases[0]
}

func matchesAlias(aliases []string, name string) bool {
	for _, a := range aliases {
		if a == name {
			return true
		}
	}
	return false
}
