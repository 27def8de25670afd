// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"strings"
	"time"
)

// Repository is a single repository owned by the authenticated account,
// as reported by the GitHub API. It is the core domain entity of this application.
type Repository struct {
	FullName    string    `json:"full_name"`
	Name        string    `json:"name"`
	Private     bool      `json:"private"`
	Description string    `json:"description,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
	Stars       int       `json:"stargazers_count"`
	Forks       int       `json:"forks_count"`
}

// Visibility returns the human readable visibility tag.
func (r Repository) Visibility() string {
	if r.Private {
		return "private"
	}
	return "public"
}

// SplitFullName splits "owner/name" into its two halves.
func SplitFullName(fullName string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(fullName, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", &InputError{Input: fullName, Msg: "expected owner/name"}
	}
	return owner, name, nil
}

// Identity is the account a token authenticates as.
type Identity struct {
	Login  string
	Scopes []string
}

// HasScope reports whether the token was granted the given OAuth scope.
// Fine-grained tokens report no scopes at all, so an empty list is treated as unknown (true).
func (i Identity) HasScope(scope string) bool {
	if len(i.Scopes) == 0 {
		return true
	}
	for _, s := range i.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// Session holds the credentials of a single run. The token is read once at startup
// and never changes; the username is fetched once and used to confirm deletions.
type Session struct {
	Token    string
	Username string
}

// DeletionOutcome is the result of deleting a single repository.
type DeletionOutcome struct {
	Repository Repository
	Deleted    bool
	Reason     string
}

// DeletionReport tallies a deletion batch.
type DeletionReport struct {
	Succeeded int
	Failed    int
	Failures  []DeletionOutcome
}
