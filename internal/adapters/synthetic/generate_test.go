package synthetic

import (
	"reflect"
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2025, 5, 14, 15, 30, 0, 0, time.UTC)
}

func TestGenerateIsDeterministicPerDay(t *testing.T) {
	g := New()
	g.now = fixedNow

	a := g.Generate("https://github.com/octo/demo")
	b := g.Generate("https://github.com/octo/demo")
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same id and day should produce identical bundles")
	}

	g.now = func() time.Time { return fixedNow().AddDate(0, 0, 1) }
	c := g.Generate("https://github.com/octo/demo")
	if reflect.DeepEqual(a.CommitCountByDate, c.CommitCountByDate) {
		t.Fatal("a different day should reseed the generator")
	}
}

func TestGenerateVariesByRepository(t *testing.T) {
	g := New()
	g.now = fixedNow

	a := g.Generate("https://github.com/octo/demo")
	b := g.Generate("https://github.com/octo/other")
	if reflect.DeepEqual(a.Commits, b.Commits) {
		t.Fatal("different ids should produce different histories")
	}
}

func TestGenerateSatisfiesBundleInvariants(t *testing.T) {
	g := New()
	g.now = fixedNow

	res := g.Generate("https://github.com/octo/demo")

	if res.RepositoryID != "https://github.com/octo/demo" {
		t.Errorf("repository id = %q", res.RepositoryID)
	}
	if len(res.Commits) == 0 {
		t.Fatal("bundle must have commits")
	}

	total := 0
	for _, n := range res.CommitCountByDate {
		total += n
	}
	if total != len(res.Commits) {
		t.Errorf("countByDate sums to %d, want %d", total, len(res.Commits))
	}

	seen := map[string]bool{}
	for _, a := range res.Authors {
		if seen[a] {
			t.Errorf("duplicate author %q", a)
		}
		seen[a] = true
	}
	for _, c := range res.Commits {
		if len(c.Hash) != 7 {
			t.Errorf("hash %q is not 7 chars", c.Hash)
		}
		if !seen[c.Author] {
			t.Errorf("commit author %q missing from authors", c.Author)
		}
	}

	for i := 1; i < len(res.FilesChanged); i++ {
		if res.FilesChanged[i].Changes > res.FilesChanged[i-1].Changes {
			t.Fatal("files must be ordered by changes descending")
		}
	}
	if len(res.Languages) == 0 {
		t.Error("bundle must have languages")
	}
}

func TestGeneratedCommitsAreReverseChronological(t *testing.T) {
	g := New()
	g.now = fixedNow

	res := g.Generate("https://github.com/octo/demo")
	for i := 1; i < len(res.Commits); i++ {
		if res.Commits[i].Date.After(res.Commits[i-1].Date) {
			t.Fatalf("commits[%d] %v is newer than commits[%d] %v",
				i, res.Commits[i].Date, i-1, res.Commits[i-1].Date)
		}
	}
}

func TestGeneratedFilenamesEchoRepoName(t *testing.T) {
	g := New()
	g.now = fixedNow

	res := g.Generate("https://github.com/octo/widget.git")
	found := false
	for _, f := range res.FilesChanged {
		if f.Filename == "src/components/widget.tsx" {
			found = true
		}
	}
	if !found {
		t.Fatalf("files %v should include a path derived from the repo name", res.FilesChanged)
	}
}
