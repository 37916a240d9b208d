package model

import (
	"regexp"
	"strings"
)

// FallbackSectionTitle names the single section produced for a document
// without any level 2-6 heading.
const FallbackSectionTitle = "Dashboard"

var headingPattern = regexp.MustCompile(`(?m)^#{2,6}\s+(.*)$`)

type Section struct {
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
}

// SplitSections partitions a Markdown document at its level 2-6 headings.
// Text before the first heading is dropped.
func SplitSections(markdown string) []Section {
	matches := headingPattern.FindAllStringSubmatchIndex(markdown, -1)
	if len(matches) == 0 {
		return []Section{{Title: FallbackSectionTitle, Content: markdown}}
	}

	out := make([]Section, 0, len(matches))
	for i, match := range matches {
		end := len(markdown)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		out = append(out, Section{
			Title:   strings.TrimSpace(markdown[match[2]:match[3]]),
			Content: strings.TrimSpace(markdown[match[1]:end]),
		})
	}
	return out
}

// Titles returns section titles in document order.
func Titles(sections []Section) []string {
	out := make([]string, 0, len(sections))
	for _, s := range sections {
		out = append(out, s.Title)
	}
	return out
}
