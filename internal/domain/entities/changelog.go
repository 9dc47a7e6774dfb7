package entities

import (
	"slices"
	"strings"
)

const (
	unreleasedHeading = "## [Unreleased]"
	changedSubheading = "### Changed"
	releasePrefix     = "## ["
	bulletPrefix      = "- "
)

// InsertChangelogEntry adds bullet entries to the "### Changed" subsection of
// the "## [Unreleased]" release in a Keep-a-Changelog document. The content
// is returned unchanged when there is no Unreleased release or when every
// entry is already present in it.
func InsertChangelogEntry(content string, entries []string) string {
	if len(entries) == 0 {
		return content
	}

	lines := strings.Split(content, "\n")

	start := slices.IndexFunc(lines, func(line string) bool {
		return strings.TrimSpace(line) == unreleasedHeading
	})
	if start < 0 {
		return content
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), releasePrefix) {
			end = i
			break
		}
	}

	pending := missingEntries(lines[start:end], entries)
	if len(pending) == 0 {
		return content
	}

	changed := -1
	for i := start + 1; i < end; i++ {
		if strings.TrimSpace(lines[i]) == changedSubheading {
			changed = i
			break
		}
	}

	if changed < 0 {
		block := append([]string{"", changedSubheading, ""}, pending...)
		return strings.Join(slices.Insert(lines, start+1, block...), "\n")
	}

	at := changed
	for i := changed + 1; i < end; i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}
		if !strings.HasPrefix(trimmed, bulletPrefix) {
			break
		}
		at = i
	}

	return strings.Join(slices.Insert(lines, at+1, pending...), "\n")
}

// missingEntries drops the entries the release section already lists.
func missingEntries(section, entries []string) []string {
	var pending []string
	for _, entry := range entries {
		found := slices.ContainsFunc(section, func(line string) bool {
			return strings.TrimSpace(line) == strings.TrimSpace(entry)
		})
		if !found {
			pending = append(pending, entry)
		}
	}
	return pending
}
