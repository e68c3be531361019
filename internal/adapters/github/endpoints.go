package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const commitsPerPage = 100

// commitQuery narrows the commit listing; zero values mean no filter
type commitQuery struct {
	Since  time.Time
	Until  time.Time
	Author string
}

// Repo fetches the repository document, which doubles as an existence check
func (c *Client) Repo(ctx context.Context, owner, repo string) (repoDoc, error) {
	var out repoDoc
	resp, err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/repos/%s/%s", owner, repo))
	if err != nil {
		return out, err
	}
	return out, decodeJSON(resp, &out)
}

// Commits fetches one page of recent commits, newest first
func (c *Client) Commits(ctx context.Context, owner, repo string, q commitQuery) ([]commitDoc, error) {
	vals := url.Values{}
	vals.Set("per_page", fmt.Sprintf("%d", commitsPerPage))
	if !q.Since.IsZero() {
		vals.Set("since", q.Since.UTC().Format(time.RFC3339))
	}
	if !q.Until.IsZero() {
		vals.Set("until", q.Until.UTC().Format(time.RFC3339))
	}
	if q.Author != "" {
		vals.Set("author", q.Author)
	}

	resp, err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/repos/%s/%s/commits?%s", owner, repo, vals.Encode()))
	if err != nil {
		return nil, err
	}
	var out []commitDoc
	return out, decodeJSON(resp, &out)
}

// CommitDetail fetches one commit with its per-file change list
func (c *Client) CommitDetail(ctx context.Context, owner, repo, sha string) (commitDetailDoc, error) {
	var out commitDetailDoc
	resp, err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/repos/%s/%s/commits/%s", owner, repo, sha))
	if err != nil {
		return out, err
	}
	return out, decodeJSON(resp, &out)
}

// Languages fetches the byte-weighted language map
func (c *Client) Languages(ctx context.Context, owner, repo string) (map[string]int64, error) {
	resp, err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/repos/%s/%s/languages", owner, repo))
	if err != nil {
		return nil, err
	}
	out := map[string]int64{}
	return out, decodeJSON(resp, &out)
}
