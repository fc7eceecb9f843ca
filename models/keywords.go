package models

import (
	"strings"
	"unicode"

	"github.com/samber/lo"

	"github.com/scorpio189f/Media-Search-Bot-1/models/sortmode"
	"github.com/scorpio189f/Media-Search-Bot-1/tgapi"
	"github.com/scorpio189f/Media-Search-Bot-1/utils"
)

const (
	maxKeywords      = 100
	maxKeywordLength = 64

	typeSeparator = "|"
)

func isWordSeparator(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune("._-+()[]", r)
}

func splitWords(s string) []string {
	var words []string
	for _, w := range strings.FieldsFunc(s, isWordSeparator) {
		w = utils.NormalizeKeyword(w)
		if w == "" || len([]rune(w)) > maxKeywordLength {
			continue
		}
		words = append(words, w)
	}
	return words
}

func uniq(words []string) []string {
	if len(words) == 0 {
		return nil
	}
	return lo.Uniq(words)
}

// Keywords is what SearchMedia matches query words against.
func Keywords(fileName, caption string, useCaption bool) []string {
	words := splitWords(fileName)
	if useCaption {
		words = append(words, splitWords(caption)...)
	}

	for _, w := range words {
		if r := utils.RomajiVariant(w); r != "" {
			words = append(words, r)
		}
	}

	words = uniq(words)
	if len(words) > maxKeywords {
		words = words[:maxKeywords]
	}
	return words
}

type Query struct {
	Words    []string
	SortMode sortmode.SortMode
	// Empty for any type.
	FileType string
}

func (q Query) IsEmpty() bool {
	return len(q.Words) == 0 && q.FileType == ""
}

// ParseQuery reads `[sort symbol] words... [| type]`.
func ParseQuery(s string) Query {
	var q Query

	if i := strings.LastIndex(s, typeSeparator); i >= 0 {
		t := strings.ToLower(strings.TrimSpace(s[i+len(typeSeparator):]))
		t = strings.TrimSuffix(t, "s")
		if lo.Contains(tgapi.FileTypes, t) {
			q.FileType = t
		}
		s = s[:i]
	}

	fields := strings.Fields(s)
	if len(fields) > 0 {
		if m := sortmode.ParseQuerySortMode(fields[0]); m != sortmode.Undefined {
			q.SortMode = m
			fields = fields[1:]
		}
	}

	q.Words = uniq(splitWords(strings.Join(fields, " ")))
	return q
}
