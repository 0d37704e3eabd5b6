package vcs

import (
	"context"
	"errors"
	"io"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/relware/mapship/pkg/domain/interfaces"
	"github.com/relware/mapship/pkg/domain/model"
)

type reader struct{}

// NewReader creates a CommitReader backed by the repository's on-disk
// object store (no git binary required)
func NewReader() interfaces.CommitReader {
	return &reader{}
}

// RecentCommits walks the history from HEAD and returns up to maxCount
// commits, most-recent-first.
func (r *reader) RecentCommits(ctx context.Context, repoPath string, maxCount int) ([]model.CommitRecord, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open repository", goerr.V("path", repoPath))
	}

	iter, err := repo.Log(&git.LogOptions{})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read commit log", goerr.V("path", repoPath))
	}
	defer iter.Close()

	records := make([]model.CommitRecord, 0, maxCount)
	for len(records) < maxCount {
		if err := ctx.Err(); err != nil {
			return nil, goerr.Wrap(err, "commit walk cancelled")
		}

		commit, err := iter.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, goerr.Wrap(err, "failed to walk commits", goerr.V("path", repoPath))
		}

		records = append(records, model.CommitRecord{
			Hash:        commit.Hash.String(),
			Title:       commitTitle(commit.Message),
			AuthorEmail: commit.Author.Email,
			Date:        commit.Author.When,
		})
	}

	return records, nil
}

// commitTitle returns the subject line of a commit message
func commitTitle(message string) string {
	if i := strings.IndexByte(message, '\n'); i >= 0 {
		message = message[:i]
	}
	return strings.TrimSpace(message)
}
