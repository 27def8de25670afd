// Package gateway provides a gateway to the GitHub REST API,
// abstracting away the underlying go-github client.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/naka-gawa/github-repo-cleaner/internal/domain"
)

// DefaultPageSize is the largest page the repository listing endpoints accept.
const DefaultPageSize = 100

// ListOptions controls how repositories are listed.
type ListOptions struct {
	// Username lists the public repositories of another account via /users/{username}/repos.
	// Empty means the authenticated user (/user/repos).
	Username string
	// Sort is passed through as the sort query parameter when set.
	Sort     string
	PageSize int
	// OnPage is called after every non-empty page with the running total.
	OnPage func(total int)
}

// RepositoryGateway defines the behavior of a gateway for managing repositories on GitHub.
type RepositoryGateway interface {
	GetAuthenticatedUser(ctx context.Context) (domain.Identity, error)
	ListOwnedRepositories(ctx context.Context, opts ListOptions) ([]domain.Repository, error)
	DeleteRepository(ctx context.Context, fullName string) error
}

// GitHubGateway is the concrete implementation of the RepositoryGateway interface.
type GitHubGateway struct {
	restClient *github.Client
	logger     *log.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// baseURL may be empty to use the public API.
func NewGitHubGateway(session domain.Session, baseURL string, logger *log.Logger) (RepositoryGateway, error) {
	// Secondary rate limits are reported and never slept on.
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(0, func(cbContext *github_ratelimit.CallbackContext) {
		if cbContext.Request != nil && cbContext.SleepUntil != nil {
			logger.Printf("Secondary rate limit hit on %s %s, resets at %s", cbContext.Request.Method, cbContext.Request.URL.Path, cbContext.SleepUntil.Format("15:04:05"))
		}
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	// TokenType "token" yields the "Authorization: token <value>" scheme.
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: session.Token, TokenType: "token"})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	restClient := github.NewClient(httpClient)
	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid api url %q: %w", baseURL, err)
		}
		restClient.BaseURL = u
	}
	return &GitHubGateway{
		restClient: restClient,
		logger:     logger,
	}, nil
}

// GetAuthenticatedUser fetches the login of the token owner. Any failure is an AuthError.
func (g *GitHubGateway) GetAuthenticatedUser(ctx context.Context) (domain.Identity, error) {
	g.logger.Println("Verifying token via GET /user...")
	user, resp, err := g.restClient.Users.Get(ctx, "")
	if err != nil {
		return domain.Identity{}, &domain.AuthError{Err: toDomainError(err)}
	}
	identity := domain.Identity{Login: user.GetLogin()}
	if resp != nil {
		identity.Scopes = parseScopes(resp.Header.Get("X-OAuth-Scopes"))
	}
	g.logger.Printf("Authenticated as %s (scopes: %v)", identity.Login, identity.Scopes)
	return identity, nil
}

// ListOwnedRepositories requests successive pages until a page comes back empty
// or shorter than the page size. Pages already fetched are discarded on error.
func (g *GitHubGateway) ListOwnedRepositories(ctx context.Context, opts ListOptions) ([]domain.Repository, error) {
	perPage := opts.PageSize
	if perPage <= 0 || perPage > DefaultPageSize {
		perPage = DefaultPageSize
	}
	repos := make([]domain.Repository, 0, perPage)
	for page := 1; ; page++ {
		g.logger.Printf("Fetching repository page %d (per_page=%d)...", page, perPage)
		batch, err := g.fetchPage(ctx, opts, page, perPage)
		if err != nil {
			return nil, fmt.Errorf("failed to list repositories (page %d): %w", page, err)
		}
		if len(batch) == 0 {
			break
		}
		for _, r := range batch {
			repos = append(repos, toDomainRepository(r))
		}
		if opts.OnPage != nil {
			opts.OnPage(len(repos))
		}
		if len(batch) < perPage {
			break
		}
	}
	g.logger.Printf("Completed listing: %d repositories.", len(repos))
	return repos, nil
}

func (g *GitHubGateway) fetchPage(ctx context.Context, opts ListOptions, page, perPage int) ([]*github.Repository, error) {
	listOpts := github.ListOptions{Page: page, PerPage: perPage}
	var (
		batch []*github.Repository
		err   error
	)
	if opts.Username != "" {
		batch, _, err = g.restClient.Repositories.ListByUser(ctx, opts.Username, &github.RepositoryListByUserOptions{
			Type:        "owner",
			Sort:        opts.Sort,
			ListOptions: listOpts,
		})
	} else {
		batch, _, err = g.restClient.Repositories.ListByAuthenticatedUser(ctx, &github.RepositoryListByAuthenticatedUserOptions{
			Type:        "owner",
			Sort:        opts.Sort,
			ListOptions: listOpts,
		})
	}
	if err != nil {
		err = toDomainError(err)
		var apiErr *domain.APIError
		// A rejected token shows up on the first page; later 401s are ordinary API failures.
		if page == 1 && errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			return nil, &domain.AuthError{Err: apiErr}
		}
		return nil, err
	}
	return batch, nil
}

// DeleteRepository deletes owner/name. Only 204 No Content counts as success.
func (g *GitHubGateway) DeleteRepository(ctx context.Context, fullName string) error {
	owner, name, err := domain.SplitFullName(fullName)
	if err != nil {
		return err
	}
	g.logger.Printf("DELETE /repos/%s/%s", owner, name)
	resp, err := g.restClient.Repositories.Delete(ctx, owner, name)
	if err != nil {
		return toDomainError(err)
	}
	if resp.StatusCode != http.StatusNoContent {
		return &domain.APIError{StatusCode: resp.StatusCode, Message: "unexpected status"}
	}
	return nil
}

// toDomainError converts go-github response errors into APIError. Transport errors pass through.
func toDomainError(err error) error {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return &domain.APIError{StatusCode: errResp.Response.StatusCode, Message: errResp.Message}
	}
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) && rateErr.Response != nil {
		return &domain.APIError{StatusCode: rateErr.Response.StatusCode, Message: rateErr.Message}
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) && abuseErr.Response != nil {
		return &domain.APIError{StatusCode: abuseErr.Response.StatusCode, Message: abuseErr.Message}
	}
	return err
}

func toDomainRepository(r *github.Repository) domain.Repository {
	return domain.Repository{
		FullName:    r.GetFullName(),
		Name:        r.GetName(),
		Private:     r.GetPrivate(),
		Description: r.GetDescription(),
		UpdatedAt:   r.GetUpdatedAt().Time,
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
	}
}

func parseScopes(header string) []string {
	var scopes []string
	for _, s := range strings.Split(header, ",") {
		if s = strings.TrimSpace(s); s != "" {
			scopes = append(scopes, s)
		}
	}
	return scopes
}
