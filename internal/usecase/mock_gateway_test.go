package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/naka-gawa/github-repo-cleaner/internal/domain"
	"github.com/naka-gawa/github-repo-cleaner/internal/gateway"
)

// mockGateway is a mock implementation of the gateway.RepositoryGateway interface.
// It allows us to simulate the GitHub API without making real calls.
type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) GetAuthenticatedUser(ctx context.Context) (domain.Identity, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Identity), args.Error(1)
}

func (m *mockGateway) ListOwnedRepositories(ctx context.Context, opts gateway.ListOptions) ([]domain.Repository, error) {
	args := m.Called(ctx, opts)
	// The returned slice is nil when an error is simulated.
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Repository), args.Error(1)
}

func (m *mockGateway) DeleteRepository(ctx context.Context, fullName string) error {
	args := m.Called(ctx, fullName)
	return args.Error(0)
}

// scriptedPrompter answers prompts from a fixed list and records what was asked.
type scriptedPrompter struct {
	answers []string
	asked   []string
}

func (p *scriptedPrompter) Ask(prompt string) (string, error) {
	p.asked = append(p.asked, prompt)
	if len(p.answers) == 0 {
		return "", errNoMoreAnswers
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

var errNoMoreAnswers = &domain.InputError{Input: "", Msg: "no more scripted answers"}
