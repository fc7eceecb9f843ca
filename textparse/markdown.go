package textparse

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

const (
	delimBold      = "**"
	delimItalic    = "__"
	delimUnderline = "--"
	delimStrike    = "~~"
	delimSpoiler   = "||"
	delimCode      = "`"
	delimPre       = "```"
)

// Longer delimiters first, so ``` wins over `.
var markdownRe = regexp.MustCompile(
	"(" + strings.Join([]string{
		regexp.QuoteMeta(delimPre),
		regexp.QuoteMeta(delimCode),
		regexp.QuoteMeta(delimStrike),
		regexp.QuoteMeta(delimUnderline),
		regexp.QuoteMeta(delimItalic),
		regexp.QuoteMeta(delimBold),
		regexp.QuoteMeta(delimSpoiler),
	}, "|") + `)|\[(.+?)\]\((.+?)\)`)

var delimTags = map[string]string{
	delimBold:      "b",
	delimItalic:    "i",
	delimUnderline: "u",
	delimStrike:    "s",
	delimSpoiler:   "spoiler",
	delimCode:      "code",
	delimPre:       "pre",
}

func isFixedWidth(delim string) bool {
	return delim == delimCode || delim == delimPre
}

// markdownToHTML rewrites markdown delimiters as HTML tags. In strict mode the
// text is escaped first, so only markdown is honoured.
func markdownToHTML(text string, strict bool) string {
	if strict {
		text = html.EscapeString(text)
	}

	var out strings.Builder
	open := make(map[string]bool)
	fixedWidth := false
	pos := 0

	for _, m := range markdownRe.FindAllStringSubmatchIndex(text, -1) {
		start, end := m[0], m[1]
		if start < pos {
			continue
		}
		out.WriteString(text[pos:start])
		pos = end

		var delim, textURL, url string
		if m[2] >= 0 {
			delim = text[m[2]:m[3]]
		} else {
			textURL, url = text[m[4]:m[5]], text[m[6]:m[7]]
		}

		if isFixedWidth(delim) {
			fixedWidth = !fixedWidth
		}
		if fixedWidth && !isFixedWidth(delim) {
			out.WriteString(text[start:end])
			continue
		}

		if delim == "" {
			if !strict {
				url = html.EscapeString(url)
			}
			fmt.Fprintf(&out, `<a href="%s">%s</a>`, url, textURL)
			continue
		}

		tag := delimTags[delim]
		if open[delim] {
			delete(open, delim)
			fmt.Fprintf(&out, "</%s>", tag)
			continue
		}
		open[delim] = true

		if delim == delimPre {
			// The rest of the opening line names the language.
			language := ""
			if i := strings.IndexByte(text[pos:], '\n'); i >= 0 && !strings.Contains(text[pos:pos+i], delimCode) {
				language = strings.TrimSpace(text[pos : pos+i])
				pos += i + 1
			}
			if !strict {
				language = html.EscapeString(language)
			}
			fmt.Fprintf(&out, `<pre language="%s">`, language)
			continue
		}
		fmt.Fprintf(&out, "<%s>", tag)
	}
	out.WriteString(text[pos:])
	return out.String()
}
