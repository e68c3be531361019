package github

import (
	"net/url"
	"strings"

	perr "commitmetrics/internal/platform/errors"
)

// ParseRepoURL validates a repository URL and splits it into owner and name.
// Accepted shape is https://github.com/<owner>/<repo>, with an optional
// trailing .git or slash. Anything else fails before any network traffic
func ParseRepoURL(repositoryID string) (owner, repo string, err error) {
	raw := strings.TrimSpace(repositoryID)
	if raw == "" {
		return "", "", perr.InvalidRepof("repository url is required")
	}

	u, perrs := url.Parse(raw)
	if perrs != nil || (u.Scheme != "https" && u.Scheme != "http") {
		return "", "", perr.InvalidRepof("invalid repository url %q; expected https://github.com/owner/repo", raw)
	}
	host := strings.ToLower(u.Hostname())
	if host != "github.com" && host != "www.github.com" {
		return "", "", perr.InvalidRepof("unsupported host %q; only github.com repositories are supported", u.Hostname())
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", perr.InvalidRepof("invalid repository path %q; expected /owner/repo", u.Path)
	}

	owner = parts[0]
	repo = strings.TrimSuffix(parts[1], ".git")
	if repo == "" {
		return "", "", perr.InvalidRepof("invalid repository path %q; expected /owner/repo", u.Path)
	}
	return owner, repo, nil
}
