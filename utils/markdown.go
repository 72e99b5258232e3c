package utils

import (
	"regexp"
	"strings"
)

var (
	mdFence    = regexp.MustCompile("(?s)```[a-zA-Z]*\n?(.*?)```")
	mdInline   = regexp.MustCompile("`([^`]*)`")
	mdImage    = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	mdLink     = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	mdHeading  = regexp.MustCompile(`(?m)^\s{0,3}#{1,6}\s+`)
	mdQuote    = regexp.MustCompile(`(?m)^\s{0,3}>\s?`)
	mdBullet   = regexp.MustCompile(`(?m)^(\s*)[-*+]\s+`)
	mdEmphasis = regexp.MustCompile(`(\*\*|__|\*|_|~~)([^*_~\n]+)(\*\*|__|\*|_|~~)`)
	mdRule     = regexp.MustCompile(`(?m)^\s*([-*_]\s*){3,}$`)
)

// MarkdownToText strips markdown syntax and keeps the readable text.
func MarkdownToText(md string) string {
	s := mdFence.ReplaceAllString(md, "$1")
	s = mdImage.ReplaceAllString(s, "$1")
	s = mdLink.ReplaceAllString(s, "$1")
	s = mdInline.ReplaceAllString(s, "$1")
	s = mdRule.ReplaceAllString(s, "")
	s = mdHeading.ReplaceAllString(s, "")
	s = mdQuote.ReplaceAllString(s, "")
	s = mdBullet.ReplaceAllString(s, "$1")
	for mdEmphasis.MatchString(s) {
		s = mdEmphasis.ReplaceAllString(s, "$2")
	}
	return strings.TrimSpace(s)
}

// TextToMarkdown normalizes line endings so plain text is stored as a
// markdown document.
func TextToMarkdown(text string) []byte {
	s := strings.ReplaceAll(text, "\r\n", "\n")
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return []byte(s + "\n")
}
