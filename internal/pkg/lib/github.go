package lib

import (
	"context"
	"strconv"
	"strings"

	githubql "github.com/shurcooL/githubv4"
	"github.com/shurcooL/graphql"
	"github.com/sirupsen/logrus"

	"github.com/iambami/community/internal/pkg/roster"
)

type githubExtendClient interface {
	Query(context.Context, interface{}, map[string]interface{}) error
}

// UserQuery looks up one GitHub account by login.
type UserQuery struct {
	RateLimit struct {
		Cost      githubql.Int
		Remaining githubql.Int
	}
	User struct {
		Login      graphql.String
		DatabaseID githubql.Int `graphql:"databaseId"`
		Name       graphql.String
		Email      graphql.String
		Company    graphql.String
		Location   graphql.String
	} `graphql:"user(login: $login)"`
}

// ProfileCache remembers lookup results for the lifetime of one run,
// including logins that turned out not to exist. It is owned by the caller
// and passed explicitly, so it dies with the run.
type ProfileCache struct {
	profiles map[string]*roster.Profile
}

// NewProfileCache creates an empty profile cache.
func NewProfileCache() *ProfileCache {
	return &ProfileCache{profiles: map[string]*roster.Profile{}}
}

// LookupProfile resolves a login to its GitHub profile. A nil profile
// without an error means there is no such account. Cached results,
// not-found included, are returned without touching the API.
func LookupProfile(ctx context.Context, log *logrus.Entry, ghc githubExtendClient,
	cache *ProfileCache, login string) (*roster.Profile, error) {
	if profile, ok := cache.profiles[login]; ok {
		return profile, nil
	}

	sq := UserQuery{}
	vars := map[string]interface{}{
		"login": githubql.String(login),
	}
	if err := ghc.Query(ctx, &sq, vars); err != nil {
		// GitHub reports a nonexistent account as a resolve error.
		if strings.Contains(err.Error(), "Could not resolve to a User") {
			cache.profiles[login] = nil
			return nil, nil
		}
		return nil, err
	}
	log.Infof("Look up %s cost %d point(s). %d remaining.",
		login, sq.RateLimit.Cost, sq.RateLimit.Remaining)

	profile := &roster.Profile{
		GithubName: string(sq.User.Login),
		GithubID:   strconv.Itoa(int(sq.User.DatabaseID)),
		Name:       string(sq.User.Name),
		Email:      string(sq.User.Email),
		Company:    string(sq.User.Company),
		Location:   string(sq.User.Location),
	}
	cache.profiles[login] = profile
	return profile, nil
}
