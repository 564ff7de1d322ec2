package usecase

import (
	"github.com/secmon-lab/ringi/pkg/domain/interfaces"
)

const defaultNotifyConcurrency = 4

type UseCases struct {
	repo        interfaces.Repository
	notifier    interfaces.Notifier
	baseURL     string
	concurrency int
}

type Option func(*UseCases)

// WithNotifier sets the messaging platform client. Without one, issuance
// still creates tickets but reports every push as a failure.
func WithNotifier(n interfaces.Notifier) Option {
	return func(uc *UseCases) {
		uc.notifier = n
	}
}

// WithBaseURL sets the external base URL of the approval form, used to
// build the URLs written onto tickets and sent to recipients.
func WithBaseURL(u string) Option {
	return func(uc *UseCases) {
		uc.baseURL = u
	}
}

// WithConcurrency bounds the per-member fan-out during ticket issuance
func WithConcurrency(n int) Option {
	return func(uc *UseCases) {
		if n > 0 {
			uc.concurrency = n
		}
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:        repo,
		concurrency: defaultNotifyConcurrency,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}
