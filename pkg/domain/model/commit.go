package model

import "time"

// CommitRecord is one recent commit attached to a release for triage.
// Records are ordered most-recent-first and never persisted by mapship.
type CommitRecord struct {
	Hash        string    `json:"hash"`
	Title       string    `json:"title"`
	AuthorEmail string    `json:"authorEmail"`
	Date        time.Time `json:"date"`
}
