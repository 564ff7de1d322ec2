package config

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/ringi/pkg/domain/interfaces"
	"github.com/secmon-lab/ringi/pkg/repository/memory"
	"github.com/secmon-lab/ringi/pkg/repository/notion"
	"github.com/secmon-lab/ringi/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Repository holds CLI flags for repository backend configuration
type Repository struct {
	backend     string
	notionToken string
	proposalDB  string
	memberDB    string
	ticketDB    string
	schemaPath  string
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Usage:       "Repository backend type (notion or memory)",
			Value:       "notion",
			Sources:     cli.EnvVars("RINGI_REPOSITORY_BACKEND"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "notion-api-token",
			Usage:       "Notion API token (required when using notion backend)",
			Sources:     cli.EnvVars("RINGI_NOTION_API_TOKEN"),
			Destination: &r.notionToken,
		},
		&cli.StringFlag{
			Name:        "notion-proposal-db",
			Usage:       "Notion database ID of the proposal database",
			Sources:     cli.EnvVars("RINGI_NOTION_PROPOSAL_DB"),
			Destination: &r.proposalDB,
		},
		&cli.StringFlag{
			Name:        "notion-member-db",
			Usage:       "Notion database ID of the member database",
			Sources:     cli.EnvVars("RINGI_NOTION_MEMBER_DB"),
			Destination: &r.memberDB,
		},
		&cli.StringFlag{
			Name:        "notion-ticket-db",
			Usage:       "Notion database ID of the approval ticket database",
			Sources:     cli.EnvVars("RINGI_NOTION_TICKET_DB"),
			Destination: &r.ticketDB,
		},
		&cli.StringFlag{
			Name:        "notion-schema",
			Usage:       "TOML file overriding Notion property and option names",
			Sources:     cli.EnvVars("RINGI_NOTION_SCHEMA"),
			Destination: &r.schemaPath,
		},
	}
}

// Backend returns the configured backend type
func (r *Repository) Backend() string {
	return r.backend
}

// Configure initializes and returns a repository based on the configured backend.
// The caller is responsible for calling Close() on the returned repository.
func (r *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	switch r.backend {
	case "notion":
		schema, err := r.loadSchema()
		if err != nil {
			return nil, err
		}
		repo, err := notion.New(r.notionToken, notion.DatabaseIDs{
			Proposal: r.proposalDB,
			Member:   r.memberDB,
			Ticket:   r.ticketDB,
		}, schema)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize notion repository")
		}
		logging.Default().Info("Using Notion repository",
			"proposal_db", r.proposalDB,
			"member_db", r.memberDB,
			"ticket_db", r.ticketDB,
			"schema", r.schemaPath,
		)
		return repo, nil

	case "memory":
		logging.Default().Info("Using in-memory repository (development mode)")
		return memory.New(), nil

	default:
		return nil, goerr.New("invalid repository backend", goerr.V("backend", r.backend))
	}
}

// loadSchema reads the schema override file over the defaults. Fields
// absent from the file keep their default candidate lists.
func (r *Repository) loadSchema() (*notion.Schema, error) {
	schema := notion.DefaultSchema()
	if r.schemaPath == "" {
		return schema, nil
	}

	data, err := os.ReadFile(r.schemaPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read schema file", goerr.V("path", r.schemaPath))
	}
	if err := toml.Unmarshal(data, schema); err != nil {
		return nil, goerr.Wrap(err, "failed to parse schema file", goerr.V("path", r.schemaPath))
	}

	return schema, nil
}
