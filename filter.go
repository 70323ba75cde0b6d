// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Stalker Tools
// Source: github.com/stalker-tools/xrdb

package xrdb

import (
	"fmt"
	"strings"

	"github.com/woozymasta/pathrules"
)

// FilterOptions selects a subset of a decoded directory table.
type FilterOptions struct {
	// Prefix keeps entries under the given archive path (or the exact
	// match when it names a file).
	Prefix string
	// Rules are ordered include/exclude patterns applied to entry names.
	// An empty rule set matches everything.
	Rules []pathrules.Rule
	// MatcherOptions control rule matching behavior.
	MatcherOptions pathrules.MatcherOptions
	// FilesOnly drops path-only records.
	FilesOnly bool
}

// applyDefaults fills zero-valued filter options with defaults.
func (opts *FilterOptions) applyDefaults() {
	if opts.MatcherOptions == (pathrules.MatcherOptions{}) {
		opts.MatcherOptions = pathrules.MatcherOptions{
			CaseInsensitive: true,
			DefaultAction:   pathrules.ActionExclude,
		}
	}

	if opts.MatcherOptions.DefaultAction == pathrules.ActionUnknown {
		opts.MatcherOptions.DefaultAction = pathrules.ActionExclude
	}
}

// entryMatcher holds compiled entry-name rules.
type entryMatcher struct {
	matcher *pathrules.Matcher
}

// newEntryMatcher compiles filter path rules; nil means match-all.
func newEntryMatcher(rules []pathrules.Rule, opts pathrules.MatcherOptions) (*entryMatcher, error) {
	rules = normalizeFilterRules(rules)
	if len(rules) == 0 {
		return nil, nil
	}

	matcher, err := pathrules.NewMatcher(rules, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: compile rules: %w", ErrInvalidFilterRules, err)
	}

	return &entryMatcher{matcher: matcher}, nil
}

// normalizeFilterRules normalizes rule patterns and drops empty patterns.
func normalizeFilterRules(rules []pathrules.Rule) []pathrules.Rule {
	normalized := make([]pathrules.Rule, 0, len(rules))
	for _, rule := range rules {
		pattern := normalizePathForMatching(rule.Pattern)
		if pattern == "" {
			continue
		}

		normalized = append(normalized, pathrules.Rule{
			Action:  rule.Action,
			Pattern: pattern,
		})
	}

	return normalized
}

// Match reports whether the entry name passes the compiled rules.
func (m *entryMatcher) Match(name string) bool {
	if m == nil || m.matcher == nil {
		return true
	}

	candidate := NormalizePath(name)
	if candidate == "" {
		return false
	}

	return m.matcher.Included(candidate, false)
}

// FilterEntries returns the entries that pass all selected filters,
// preserving table order.
func FilterEntries(entries []Entry, opts FilterOptions) ([]Entry, error) {
	opts.applyDefaults()

	matcher, err := newEntryMatcher(opts.Rules, opts.MatcherOptions)
	if err != nil {
		return nil, err
	}

	prefix := NormalizePath(opts.Prefix)
	prefixWithSlash := prefix + "/"

	out := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if opts.FilesOnly && !entry.IsFile() {
			continue
		}

		if prefix != "" {
			name := NormalizePath(entry.Name)
			if name != prefix && !strings.HasPrefix(name, prefixWithSlash) {
				continue
			}
		}

		if !matcher.Match(entry.Name) {
			continue
		}

		out = append(out, entry)
	}

	return out, nil
}
