package menu

import (
	"context"

	"github.com/naka-gawa/github-repo-cleaner/internal/console"
	"github.com/naka-gawa/github-repo-cleaner/internal/domain"
)

// IdentityFetcher resolves the account behind the token.
type IdentityFetcher interface {
	GetAuthenticatedUser(ctx context.Context) (domain.Identity, error)
}

// Login verifies the token and returns the session for this run.
// It warns when a classic token lacks the delete_repo scope.
func Login(ctx context.Context, fetcher IdentityFetcher, con *console.Console, token string) (domain.Session, error) {
	identity, err := fetcher.GetAuthenticatedUser(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	con.Printf("✓ Connected as: %s\n", identity.Login)
	if !identity.HasScope("delete_repo") {
		con.Println("Warning: this token lacks the delete_repo scope; deletions will be refused.")
	}
	con.Println()
	return domain.Session{Token: token, Username: identity.Login}, nil
}
