package search

import (
	"io"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

const (
	DefaultSnippetLength = 150

	MarkOpen  = `<mark class="bg-brand-highlight text-brand-primary rounded px-1">`
	MarkClose = `</mark>`
	ellipsis  = "..."
)

// matcher компилирует запрос как литерал: спецсимволы регулярных выражений
// экранируются, сравнение без учёта регистра.
func matcher(query string) (*regexp.Regexp, error) {
	return regexp.Compile("(?i)" + regexp.QuoteMeta(query))
}

func lowerRunes(s string) []rune {
	rs := []rune(s)
	for i, r := range rs {
		rs[i] = unicode.ToLower(r)
	}
	return rs
}

// indexFold — позиция (в рунах) первого вхождения needle в haystack без учёта регистра.
func indexFold(haystack, needle []rune) int {
	if len(needle) == 0 {
		return 0
	}
outer:
	for i := 0; i+len(needle) <= len(haystack); i++ {
		for j := range needle {
			if haystack[i+j] != needle[j] {
				continue outer
			}
		}
		return i
	}
	return -1
}

// ContainsFold сообщает, содержит ли text подстроку query без учёта регистра.
func ContainsFold(text, query string) bool {
	return indexFold(lowerRunes(text), lowerRunes(query)) >= 0
}

func floorHalf(n int) int {
	if n < 0 && n%2 != 0 {
		return n/2 - 1
	}
	return n / 2
}

// CreateSnippet вырезает из text окно длиной length рун вокруг первого
// вхождения query и подсвечивает в нём все вхождения. Длина <= 0 означает
// DefaultSnippetLength. Текст экранируется, на выходе HTML-фрагмент.
func CreateSnippet(text, query string, length int) string {
	if length <= 0 {
		length = DefaultSnippetLength
	}
	runes := []rune(text)
	idx := -1
	if query != "" {
		idx = indexFold(lowerRunes(text), lowerRunes(query))
	}

	if idx < 0 {
		if len(runes) <= length {
			return html.EscapeString(text)
		}
		return html.EscapeString(string(runes[:length])) + ellipsis
	}

	qlen := len([]rune(query))
	start := max(0, idx-floorHalf(length-qlen))
	end := min(len(runes), start+length)
	if start > end {
		start = end
	}

	out := Highlight(string(runes[start:end]), query)
	if start > 0 {
		out = ellipsis + out
	}
	if end < len(runes) {
		out += ellipsis
	}
	return out
}

// Highlight экранирует text и оборачивает каждое вхождение query в <mark>.
// Если запрос пустой или не компилируется, возвращается просто экранированный текст.
func Highlight(text, query string) string {
	if query == "" {
		return html.EscapeString(text)
	}
	re, err := matcher(query)
	if err != nil {
		return html.EscapeString(text)
	}
	return highlightWith(re, text)
}

func highlightWith(re *regexp.Regexp, text string) string {
	var b strings.Builder
	last := 0
	for _, loc := range re.FindAllStringIndex(text, -1) {
		if loc[0] == loc[1] {
			continue
		}
		b.WriteString(html.EscapeString(text[last:loc[0]]))
		b.WriteString(MarkOpen)
		b.WriteString(html.EscapeString(text[loc[0]:loc[1]]))
		b.WriteString(MarkClose)
		last = loc[1]
	}
	b.WriteString(html.EscapeString(text[last:]))
	return b.String()
}

// HighlightHTML подсвечивает вхождения query только в текстовых узлах
// разметки: теги и атрибуты остаются нетронутыми. При любой ошибке разбора
// возвращается исходный HTML без изменений.
func HighlightHTML(src, query string) string {
	if strings.TrimSpace(query) == "" {
		return src
	}
	re, err := matcher(query)
	if err != nil {
		return src
	}

	z := html.NewTokenizer(strings.NewReader(src))
	var b strings.Builder
	b.Grow(len(src) + 64)
	hidden := 0
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				return b.String()
			}
			return src
		case html.TextToken:
			if hidden > 0 {
				b.Write(z.Raw())
				continue
			}
			b.WriteString(highlightWith(re, string(z.Text())))
		case html.StartTagToken:
			raw := string(z.Raw())
			if name, _ := z.TagName(); isHiddenTag(string(name)) {
				hidden++
			}
			b.WriteString(raw)
		case html.EndTagToken:
			raw := string(z.Raw())
			if name, _ := z.TagName(); isHiddenTag(string(name)) && hidden > 0 {
				hidden--
			}
			b.WriteString(raw)
		default:
			b.Write(z.Raw())
		}
	}
}
