package menu

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-repo-cleaner/internal/console"
	"github.com/naka-gawa/github-repo-cleaner/internal/domain"
	"github.com/naka-gawa/github-repo-cleaner/internal/gateway"
	"github.com/naka-gawa/github-repo-cleaner/internal/usecase"
)

// mockGateway is a mock implementation of the gateway.RepositoryGateway interface.
type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) GetAuthenticatedUser(ctx context.Context) (domain.Identity, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Identity), args.Error(1)
}

func (m *mockGateway) ListOwnedRepositories(ctx context.Context, opts gateway.ListOptions) ([]domain.Repository, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Repository), args.Error(1)
}

func (m *mockGateway) DeleteRepository(ctx context.Context, fullName string) error {
	args := m.Called(ctx, fullName)
	return args.Error(0)
}

type fakePicker struct {
	indices []int
}

func (p *fakePicker) Pick(repos []domain.Repository) ([]int, error) {
	return p.indices, nil
}

var session = domain.Session{Token: "t", Username: "octocat"}

func repoSet() []domain.Repository {
	return []domain.Repository{
		{FullName: "me/foo", Name: "foo"},
		{FullName: "me/bar-1", Name: "bar-1", Private: true},
		{FullName: "me/x", Name: "x", Description: "contains BAR"},
	}
}

// newController wires the real use cases over a mock gateway and scripted input.
func newController(gw *mockGateway, input string, picker Picker) (*Controller, *bytes.Buffer) {
	out := &bytes.Buffer{}
	con := console.New(strings.NewReader(input), out)
	logger := log.New(io.Discard, "", 0)
	lister := usecase.NewLister(gw, gateway.ListOptions{}, logger)
	gate := usecase.NewGate(con, out)
	deleter := usecase.NewDeleter(gw, logger, func(o domain.DeletionOutcome) {
		console.RenderOutcome(out, o)
	})
	return NewController(con, session, lister, gate, deleter, picker, logger), out
}

func TestController_Run(t *testing.T) {
	testCases := []struct {
		name            string
		input           string
		picker          Picker
		expectedDeletes []string
		expectedLists   int
		expectOutput    []string
	}{
		{
			name:          "invalid choice returns to main menu",
			input:         "9\n4\n",
			expectedLists: 1,
			expectOutput:  []string{"Invalid option, please choose again.", "Bye!"},
		},
		{
			name:          "listing shows the set",
			input:         "1\n4\n",
			expectedLists: 1,
			expectOutput:  []string{"Found 3 repositories", "me/bar-1", "[private]"},
		},
		{
			name:            "select and delete then refresh",
			input:           "3\n1-2\ny\noctocat\nDELETE\n4\n",
			expectedDeletes: []string{"me/foo", "me/bar-1"},
			expectedLists:   2,
			expectOutput:    []string{"✓ deleted: me/foo", "✓ deleted: me/bar-1", "done: ✓ 2 succeeded, ✗ 0 failed"},
		},
		{
			name:          "username mismatch deletes nothing",
			input:         "3\n1\ny\nOctocat\n4\n",
			expectedLists: 1,
			expectOutput:  []string{"Username does not match"},
		},
		{
			name:          "phrase mismatch deletes nothing",
			input:         "3\n1\ny\noctocat\ndelete\n4\n",
			expectedLists: 1,
			expectOutput:  []string{"Confirmation failed"},
		},
		{
			name:          "declining the selection deletes nothing",
			input:         "3\n2\nn\n4\n",
			expectedLists: 1,
		},
		{
			name:          "quit at selection",
			input:         "3\nq\n4\n",
			expectedLists: 1,
			expectOutput:  []string{"Cancelled."},
		},
		{
			name:            "bad selection re-prompts",
			input:           "3\n0\n9\n3\ny\noctocat\nDELETE\n4\n",
			expectedDeletes: []string{"me/x"},
			expectedLists:   2,
			expectOutput:    []string{`Error: "0": number out of range (valid range: 1-3)`, "Nothing selected, please try again."},
		},
		{
			name:            "filter then delete everything matched",
			input:           "2\nbar\ny\nall\ny\noctocat\nDELETE\n4\n",
			expectedDeletes: []string{"me/bar-1", "me/x"},
			expectedLists:   2,
			expectOutput:    []string{"Found 2 matching repositories"},
		},
		{
			name:          "empty keyword",
			input:         "2\n\n4\n",
			expectedLists: 1,
			expectOutput:  []string{"Keyword cannot be empty."},
		},
		{
			name:          "filter without matches",
			input:         "2\nzzz\n4\n",
			expectedLists: 1,
			expectOutput:  []string{"Found 0 matching repositories"},
		},
		{
			name:            "fuzzy picker selection",
			input:           "3\nf\ny\noctocat\nDELETE\n4\n",
			picker:          &fakePicker{indices: []int{2}},
			expectedDeletes: []string{"me/x"},
			expectedLists:   2,
			expectOutput:    []string{"fuzzy finder:"},
		},
		{
			name:          "end of input exits cleanly",
			input:         "3\n",
			expectedLists: 1,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gw := new(mockGateway)
			gw.On("ListOwnedRepositories", mock.Anything, mock.Anything).Return(repoSet(), nil)
			for _, name := range tc.expectedDeletes {
				gw.On("DeleteRepository", mock.Anything, name).Return(nil).Once()
			}

			c, out := newController(gw, tc.input, tc.picker)
			require.NoError(t, c.Run(context.Background()))

			for _, s := range tc.expectOutput {
				assert.Contains(t, out.String(), s)
			}
			gw.AssertNumberOfCalls(t, "ListOwnedRepositories", tc.expectedLists)
			gw.AssertNumberOfCalls(t, "DeleteRepository", len(tc.expectedDeletes))
			gw.AssertExpectations(t)
		})
	}
}

func TestController_Run_PartialFailureStillRefreshes(t *testing.T) {
	gw := new(mockGateway)
	gw.On("ListOwnedRepositories", mock.Anything, mock.Anything).Return(repoSet(), nil)
	gw.On("DeleteRepository", mock.Anything, "me/foo").Return(nil).Once()
	gw.On("DeleteRepository", mock.Anything, "me/bar-1").Return(&domain.APIError{StatusCode: 404, Message: "Not Found"}).Once()
	gw.On("DeleteRepository", mock.Anything, "me/x").Return(nil).Once()

	c, out := newController(gw, "3\nall\ny\noctocat\nDELETE\n4\n", nil)
	require.NoError(t, c.Run(context.Background()))

	assert.Contains(t, out.String(), "✗ failed: me/bar-1 - repository not found or already deleted")
	assert.Contains(t, out.String(), "done: ✓ 2 succeeded, ✗ 1 failed")
	gw.AssertNumberOfCalls(t, "ListOwnedRepositories", 2)
	gw.AssertExpectations(t)
}

func TestController_Run_StaleSetIsFetchedBeforeReuse(t *testing.T) {
	gw := new(mockGateway)
	gw.On("ListOwnedRepositories", mock.Anything, mock.Anything).Return(repoSet(), nil).Once()
	gw.On("ListOwnedRepositories", mock.Anything, mock.Anything).Return(nil, &domain.APIError{StatusCode: 502, Message: "Bad Gateway"}).Once()
	gw.On("ListOwnedRepositories", mock.Anything, mock.Anything).Return(repoSet()[1:], nil).Once()
	gw.On("DeleteRepository", mock.Anything, "me/foo").Return(nil).Once()

	c, out := newController(gw, "3\n1\ny\noctocat\nDELETE\n1\n4\n", nil)
	require.NoError(t, c.Run(context.Background()))

	assert.Contains(t, out.String(), "Failed to fetch the repository list")
	assert.Contains(t, out.String(), "Found 2 repositories")
	gw.AssertNumberOfCalls(t, "ListOwnedRepositories", 3)
}

func TestController_Run_SelectingAfterEverythingWasDeleted(t *testing.T) {
	gw := new(mockGateway)
	gw.On("ListOwnedRepositories", mock.Anything, mock.Anything).Return(repoSet()[:1], nil).Once()
	gw.On("ListOwnedRepositories", mock.Anything, mock.Anything).Return([]domain.Repository{}, nil).Once()
	gw.On("DeleteRepository", mock.Anything, "me/foo").Return(nil).Once()

	c, out := newController(gw, "3\n1\ny\noctocat\nDELETE\n3\n4\n", nil)
	require.NoError(t, c.Run(context.Background()))

	assert.Contains(t, out.String(), "No repositories found.")
	assert.NotContains(t, out.String(), "Nothing selected")
	assert.Contains(t, out.String(), "Bye!")
	gw.AssertNumberOfCalls(t, "ListOwnedRepositories", 2)
	gw.AssertExpectations(t)
}

func TestController_Run_StartupCases(t *testing.T) {
	t.Run("listing failure is returned", func(t *testing.T) {
		gw := new(mockGateway)
		gw.On("ListOwnedRepositories", mock.Anything, mock.Anything).Return(nil, &domain.AuthError{})

		c, _ := newController(gw, "4\n", nil)
		var authErr *domain.AuthError
		assert.ErrorAs(t, c.Run(context.Background()), &authErr)
	})

	t.Run("no repositories ends the run", func(t *testing.T) {
		gw := new(mockGateway)
		gw.On("ListOwnedRepositories", mock.Anything, mock.Anything).Return([]domain.Repository{}, nil)

		c, out := newController(gw, "4\n", nil)
		require.NoError(t, c.Run(context.Background()))
		assert.Contains(t, out.String(), "No repositories found.")
		assert.NotContains(t, out.String(), "Main menu")
	})
}

func TestMainMenuTransitions(t *testing.T) {
	assert.Equal(t, map[string]State{"1": Listing, "2": Filtering, "3": Selecting, "4": Exit}, mainMenuTransitions)
	assert.Equal(t, "Confirming", Confirming.String())
	assert.Equal(t, "State(42)", State(42).String())
}

func newBatch(gw *mockGateway, input string, targets []string) (*Batch, *bytes.Buffer) {
	out := &bytes.Buffer{}
	con := console.New(strings.NewReader(input), out)
	logger := log.New(io.Discard, "", 0)
	lister := usecase.NewLister(gw, gateway.ListOptions{}, logger)
	gate := usecase.NewGate(con, out)
	deleter := usecase.NewDeleter(gw, logger, func(o domain.DeletionOutcome) {
		console.RenderOutcome(out, o)
	})
	return NewBatch(con, session, lister, lister, gate, deleter, targets, logger), out
}

func TestBatch_Run(t *testing.T) {
	testCases := []struct {
		name            string
		input           string
		targets         []string
		expectedDeletes []string
		expectedLists   int
		expectOutput    []string
	}{
		{
			name:          "list",
			input:         "1\n",
			expectedLists: 1,
			expectOutput:  []string{"Found 3 repositories:", "2. me/bar-1 (private)", "   Description: contains BAR"},
		},
		{
			name:            "delete named targets skips unknown ones",
			input:           "2\noctocat\nDELETE\n",
			targets:         []string{"me/foo", "me/ghost"},
			expectedDeletes: []string{"me/foo"},
			expectedLists:   1,
			expectOutput:    []string{"Skipping me/ghost", "done: ✓ 1 succeeded, ✗ 0 failed"},
		},
		{
			name:            "delete named targets ignores case and duplicates",
			input:           "2\noctocat\nDELETE\n",
			targets:         []string{"Me/Foo", "me/foo", "ME/X"},
			expectedDeletes: []string{"me/foo", "me/x"},
			expectedLists:   1,
			expectOutput:    []string{"About to delete 2 repositories:", "done: ✓ 2 succeeded, ✗ 0 failed"},
		},
		{
			name:         "delete named without targets",
			input:        "2\n",
			expectOutput: []string{"no repositories named"},
		},
		{
			name:            "delete by keyword",
			input:           "3\nBAR\noctocat\nDELETE\n",
			expectedDeletes: []string{"me/bar-1", "me/x"},
			expectedLists:   1,
			expectOutput:    []string{"Found 2 matching repositories:"},
		},
		{
			name:          "delete by keyword aborted at gate",
			input:         "3\nbar\nsomeone-else\n",
			expectedLists: 1,
			expectOutput:  []string{"Username does not match"},
		},
		{
			name:         "invalid option",
			input:        "7\n",
			expectOutput: []string{"Invalid option."},
		},
		{
			name:  "no input",
			input: "",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gw := new(mockGateway)
			gw.On("ListOwnedRepositories", mock.Anything, mock.Anything).Return(repoSet(), nil)
			for _, name := range tc.expectedDeletes {
				gw.On("DeleteRepository", mock.Anything, name).Return(nil).Once()
			}

			b, out := newBatch(gw, tc.input, tc.targets)
			require.NoError(t, b.Run(context.Background()))

			for _, s := range tc.expectOutput {
				assert.Contains(t, out.String(), s)
			}
			gw.AssertNumberOfCalls(t, "ListOwnedRepositories", tc.expectedLists)
			gw.AssertNumberOfCalls(t, "DeleteRepository", len(tc.expectedDeletes))
		})
	}
}

func TestBatch_Run_ListingErrorIsReturned(t *testing.T) {
	gw := new(mockGateway)
	gw.On("ListOwnedRepositories", mock.Anything, mock.Anything).Return(nil, &domain.APIError{StatusCode: 500, Message: "boom"})

	b, _ := newBatch(gw, "1\n", nil)
	var apiErr *domain.APIError
	assert.ErrorAs(t, b.Run(context.Background()), &apiErr)
}

func TestLogin(t *testing.T) {
	testCases := []struct {
		name       string
		identity   domain.Identity
		err        error
		expectWarn bool
		expectErr  bool
	}{
		{name: "classic token with delete_repo", identity: domain.Identity{Login: "octocat", Scopes: []string{"repo", "delete_repo"}}},
		{name: "classic token without delete_repo", identity: domain.Identity{Login: "octocat", Scopes: []string{"repo"}}, expectWarn: true},
		{name: "fine-grained token", identity: domain.Identity{Login: "octocat"}},
		{name: "bad token", err: &domain.AuthError{Err: errors.New("401")}, expectErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gw := new(mockGateway)
			gw.On("GetAuthenticatedUser", mock.Anything).Return(tc.identity, tc.err)
			var out bytes.Buffer

			s, err := Login(context.Background(), gw, console.New(strings.NewReader(""), &out), "tok")
			if tc.expectErr {
				var authErr *domain.AuthError
				assert.ErrorAs(t, err, &authErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.Session{Token: "tok", Username: "octocat"}, s)
			assert.Contains(t, out.String(), "Connected as: octocat")
			assert.Equal(t, tc.expectWarn, strings.Contains(out.String(), "lacks the delete_repo scope"))
		})
	}
}
