package xrdb

import (
	"errors"
	"testing"

	"github.com/woozymasta/pathrules"
)

func filterTestEntries() []Entry {
	return []Entry{
		{Name: "scripts"},
		{Name: "scripts/init.script", Offset: 100},
		{Name: `scripts\ai\stalker.script`, Offset: 200},
		{Name: "textures/ui/icon.dds", Offset: 300},
		{Name: "config/system.ltx", Offset: 400},
	}
}

func filterNames(entries []Entry) []string {
	names := make([]string, len(entries))
	for i := range entries {
		names[i] = NormalizePath(entries[i].Name)
	}
	return names
}

func TestFilterEntries_NoFilters(t *testing.T) {
	got, err := FilterEntries(filterTestEntries(), FilterOptions{})
	if err != nil {
		t.Fatalf("FilterEntries: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
}

func TestFilterEntries_FilesOnly(t *testing.T) {
	got, err := FilterEntries(filterTestEntries(), FilterOptions{FilesOnly: true})
	if err != nil {
		t.Fatalf("FilterEntries: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	for _, e := range got {
		if !e.IsFile() {
			t.Fatalf("path record %q passed FilesOnly", e.Name)
		}
	}
}

func TestFilterEntries_Rules(t *testing.T) {
	got, err := FilterEntries(filterTestEntries(), FilterOptions{
		FilesOnly: true,
		Rules: []pathrules.Rule{
			{Action: pathrules.ActionInclude, Pattern: "*.script"},
		},
	})
	if err != nil {
		t.Fatalf("FilterEntries: %v", err)
	}

	names := filterNames(got)
	want := []string{"scripts/init.script", "scripts/ai/stalker.script"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}
}

func TestFilterEntries_Prefix(t *testing.T) {
	got, err := FilterEntries(filterTestEntries(), FilterOptions{Prefix: "scripts"})
	if err != nil {
		t.Fatalf("FilterEntries: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3 (dir + 2 files)", len(got))
	}

	// Backslash names are matched in normalized form.
	got, err = FilterEntries(filterTestEntries(), FilterOptions{Prefix: `scripts\ai`})
	if err != nil {
		t.Fatalf("FilterEntries: %v", err)
	}
	if len(got) != 1 || NormalizePath(got[0].Name) != "scripts/ai/stalker.script" {
		t.Fatalf("got = %+v", got)
	}
}

func TestFilterEntries_ExcludeRule(t *testing.T) {
	got, err := FilterEntries(filterTestEntries(), FilterOptions{
		FilesOnly: true,
		Rules: []pathrules.Rule{
			{Action: pathrules.ActionExclude, Pattern: "textures/**"},
			{Action: pathrules.ActionInclude, Pattern: "**"},
		},
	})
	if err != nil {
		t.Fatalf("FilterEntries: %v", err)
	}

	for _, e := range got {
		if NormalizePath(e.Name) == "textures/ui/icon.dds" {
			t.Fatal("excluded entry passed filter")
		}
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
}

func TestFilterEntries_InvalidRules(t *testing.T) {
	_, err := FilterEntries(filterTestEntries(), FilterOptions{
		Rules: []pathrules.Rule{
			{Action: pathrules.ActionInclude, Pattern: "[bad"},
		},
	})
	if !errors.Is(err, ErrInvalidFilterRules) {
		t.Fatalf("err = %v, want ErrInvalidFilterRules", err)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := map[string]string{
		`a\b\c`:        "a/b/c",
		"./x/y":        "x/y",
		"/lead":        "lead",
		" spaced ":     "spaced",
		"a/./b":        "a/b",
		"":             "",
		".":            "",
		"trailing/":    "trailing",
		`mixed\up/dir`: "mixed/up/dir",
	}

	for in, want := range tests {
		if got := NormalizePath(in); got != want {
			t.Errorf("NormalizePath(%q) = %q, want %q", in, got, want)
		}
	}
}
