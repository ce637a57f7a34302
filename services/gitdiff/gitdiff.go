// Copyright 2014 The Gogs Authors. All rights reserved.
// Copyright 2019 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package gitdiff compares two commits of the served repository and describes single commits.
package gitdiff

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"code.gitea.io/githistory/modules/git"
	"code.gitea.io/githistory/modules/log"
	"code.gitea.io/githistory/modules/metrics"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sourcegraph/go-diff/diff"
)

const devNull = "/dev/null"

// RepositoryOpener opens a new handle on the served repository, the caller closes it
type RepositoryOpener func(ctx context.Context) (*git.Repository, error)

// DiffSummary is the number of inserted and deleted lines, it is rendered as a JSON pair
type DiffSummary [2]int

// Insertions returns the number of added lines
func (s DiffSummary) Insertions() int {
	return s[0]
}

// Deletions returns the number of removed lines
func (s DiffSummary) Deletions() int {
	return s[1]
}

// DiffFile represents a file diff, every hunk is a text block with old and new line numbers
type DiffFile struct {
	Name  string   `json:"file"`
	Hunks []string `json:"hunks"`
}

// Service computes diffs, it is safe for concurrent use
type Service struct {
	openRepo     RepositoryOpener
	contextLines int
	summaries    *lru.Cache[[2]git.ObjectID, DiffSummary]
}

// NewService creates the diff service, summaryCacheSize bounds the number of cached diff summaries
func NewService(openRepo RepositoryOpener, summaryCacheSize, contextLines int) (*Service, error) {
	summaries, err := lru.New[[2]git.ObjectID, DiffSummary](summaryCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create diff summary cache: %w", err)
	}
	if contextLines < 0 {
		contextLines = 0
	}
	return &Service{openRepo: openRepo, contextLines: contextLines, summaries: summaries}, nil
}

func parseCommitPair(a, b string) (base, head git.ObjectID, err error) {
	if base, err = git.NewIDFromString(a); err != nil {
		return base, head, err
	}
	head, err = git.NewIDFromString(b)
	return base, head, err
}

func (s *Service) withRepo(ctx context.Context, fn func(repo *git.Repository) error) error {
	repo, err := s.openRepo(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()
	return fn(repo)
}

// GetDiffSummary counts the lines inserted and deleted from commit a to commit b
func (s *Service) GetDiffSummary(ctx context.Context, a, b string) (DiffSummary, error) {
	base, head, err := parseCommitPair(a, b)
	if err != nil {
		return DiffSummary{}, err
	}
	key := [2]git.ObjectID{base, head}
	if summary, ok := s.summaries.Get(key); ok {
		metrics.DiffSummaryCache.WithLabelValues("hit").Inc()
		return summary, nil
	}
	metrics.DiffSummaryCache.WithLabelValues("miss").Inc()

	var summary DiffSummary
	err = s.withRepo(ctx, func(repo *git.Repository) error {
		_, additions, deletions, err := repo.GetDiffShortStat(base, head)
		summary = DiffSummary{additions, deletions}
		return err
	})
	if err != nil {
		return DiffSummary{}, err
	}
	s.summaries.Add(key, summary)
	return summary, nil
}

// GetDiffStats renders the per file statistics of the diff from a to b followed by a totals line
func (s *Service) GetDiffStats(ctx context.Context, a, b string) (string, error) {
	base, head, err := parseCommitPair(a, b)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	err = s.withRepo(ctx, func(repo *git.Repository) error {
		patch, err := repo.GetPatch(base, head)
		if err != nil {
			return err
		}
		stats := patch.Stats()
		sb.WriteString(stats.String())

		var additions, deletions int
		for _, stat := range stats {
			additions += stat.Addition
			deletions += stat.Deletion
		}
		sb.WriteString(formatShortStat(len(stats), additions, deletions))
		return nil
	})
	return sb.String(), err
}

func plural(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return strconv.Itoa(n) + " " + plural
}

// formatShortStat renders the totals line the way git diff --stat does
func formatShortStat(numFiles, additions, deletions int) string {
	parts := []string{plural(numFiles, "file changed", "files changed")}
	if additions > 0 || deletions == 0 {
		parts = append(parts, plural(additions, "insertion(+)", "insertions(+)"))
	}
	if deletions > 0 || additions == 0 {
		parts = append(parts, plural(deletions, "deletion(-)", "deletions(-)"))
	}
	return " " + strings.Join(parts, ", ") + "\n"
}

// GetDiff returns the changed files between a and b with their formatted hunks
func (s *Service) GetDiff(ctx context.Context, a, b string) ([]*DiffFile, error) {
	base, head, err := parseCommitPair(a, b)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := s.withRepo(ctx, func(repo *git.Repository) error {
		return repo.WriteUnifiedDiff(&buf, base, head, s.contextLines)
	}); err != nil {
		return nil, err
	}
	return ParsePatch(buf.Bytes())
}

// ParsePatch splits a unified diff into files and formats every hunk
func ParsePatch(patch []byte) ([]*DiffFile, error) {
	fileDiffs, err := diff.NewMultiFileDiffReader(bytes.NewReader(patch)).ReadAllFiles()
	if err != nil {
		return nil, fmt.Errorf("parse patch: %w", err)
	}

	files := make([]*DiffFile, 0, len(fileDiffs))
	for _, fileDiff := range fileDiffs {
		file := &DiffFile{
			Name:  diffFileName(fileDiff),
			Hunks: make([]string, 0, len(fileDiff.Hunks)),
		}
		for _, hunk := range fileDiff.Hunks {
			file.Hunks = append(file.Hunks, formatHunk(hunk))
		}
		files = append(files, file)
	}
	log.Trace("Parsed %d files from a patch of %d bytes", len(files), len(patch))
	return files, nil
}

// diffFileName returns the new name of the file, or the old one for a deleted file
func diffFileName(fileDiff *diff.FileDiff) string {
	if fileDiff.NewName != "" && fileDiff.NewName != devNull {
		return strings.TrimPrefix(fileDiff.NewName, "b/")
	}
	return strings.TrimPrefix(fileDiff.OrigName, "a/")
}

func lineNumber(n int32) string {
	return strconv.FormatInt(int64(n), 10)
}

// formatHunk renders the hunk header followed by every line prefixed with its old and new line numbers
func formatHunk(hunk *diff.Hunk) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@", hunk.OrigStartLine, hunk.OrigLines, hunk.NewStartLine, hunk.NewLines)
	if hunk.Section != "" {
		sb.WriteString(" " + hunk.Section)
	}
	sb.WriteByte('\n')

	body := strings.TrimSuffix(string(hunk.Body), "\n")
	if body == "" {
		return sb.String()
	}
	oldLine, newLine := hunk.OrigStartLine, hunk.NewStartLine
	for _, line := range strings.Split(body, "\n") {
		origin, content := byte(' '), ""
		if len(line) > 0 {
			origin, content = line[0], line[1:]
		}
		var oldNum, newNum string
		switch origin {
		case '-':
			oldNum = lineNumber(oldLine)
			oldLine++
		case '+':
			newNum = lineNumber(newLine)
			newLine++
		case '\\':
			// "\ No newline at end of file" carries no line number
		default:
			origin = ' '
			oldNum, newNum = lineNumber(oldLine), lineNumber(newLine)
			oldLine++
			newLine++
		}
		fmt.Fprintf(&sb, "%4s %4s %c%s\n", oldNum, newNum, origin, content)
	}
	return sb.String()
}
