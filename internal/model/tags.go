package model

import (
	"sort"
	"strings"
)

// NormalizeTag lower-cases and hyphenates a single tag. Returns "" for
// blank input.
func NormalizeTag(s string) string {
	tag := strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(tag, " ", "-")
}

// SplitTags normalizes raw tag inputs, each of which may itself hold a
// comma-separated list. The result is sorted and deduplicated.
func SplitTags(inputs []string) []string {
	var tags []string
	for _, input := range inputs {
		for _, part := range strings.Split(input, ",") {
			if tag := NormalizeTag(part); tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	out := make([]string, 0, len(tags))
	for i, tag := range tags {
		if i > 0 && tag == tags[i-1] {
			continue
		}
		out = append(out, tag)
	}
	return out
}

// SplitList splits a comma-separated value list, trimming entries and
// dropping blanks. Unlike tags, entries keep their case.
func SplitList(inputs []string) []string {
	out := []string{}
	for _, input := range inputs {
		for _, part := range strings.Split(input, ",") {
			if v := strings.TrimSpace(part); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}
