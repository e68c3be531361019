package github

import "time"

// Wire models below are partial: only the fields the analysis pipeline
// consumes are declared, everything else in the GitHub payload is ignored

// repoDoc is GET /repos/{owner}/{repo}
type repoDoc struct {
	FullName      string `json:"full_name"`
	DefaultBranch string `json:"default_branch"`
	Language      string `json:"language"`
}

// commitDoc is one element of GET /repos/{owner}/{repo}/commits
type commitDoc struct {
	SHA    string `json:"sha"`
	Commit struct {
		Message string `json:"message"`
		Author  struct {
			Name string    `json:"name"`
			Date time.Time `json:"date"`
		} `json:"author"`
	} `json:"commit"`
	Author *struct {
		Login string `json:"login"`
	} `json:"author"`
}

// commitDetailDoc is GET /repos/{owner}/{repo}/commits/{sha}; it adds the
// per-file change list the list endpoint omits
type commitDetailDoc struct {
	SHA   string `json:"sha"`
	Files []struct {
		Filename string `json:"filename"`
		Changes  int    `json:"changes"`
	} `json:"files"`
}
