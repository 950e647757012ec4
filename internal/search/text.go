package search

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// блочные элементы отделяются пробелом, чтобы соседние ячейки и абзацы не склеивались
var blockTags = map[string]struct{}{
	"p": {}, "div": {}, "br": {}, "li": {}, "ul": {}, "ol": {},
	"table": {}, "thead": {}, "tbody": {}, "tr": {}, "td": {}, "th": {},
	"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
	"section": {}, "article": {}, "header": {}, "footer": {}, "blockquote": {}, "pre": {},
}

func isHiddenTag(name string) bool {
	return name == "script" || name == "style" || name == "template"
}

// PlainText возвращает видимый текст HTML-фрагмента: теги отброшены, сущности
// раскодированы, пробельные последовательности схлопнуты в один пробел.
// Результат предназначен только для поиска и никогда не рендерится как HTML.
func PlainText(src string) string {
	z := html.NewTokenizer(strings.NewReader(src))
	var b strings.Builder
	hidden := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			// конец ввода или битая разметка: отдаём то, что успели собрать
			return collapseSpace(b.String())
		case html.TextToken:
			if hidden == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if isHiddenTag(tag) {
				hidden++
				continue
			}
			if _, ok := blockTags[tag]; ok {
				b.WriteByte(' ')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if isHiddenTag(tag) {
				if hidden > 0 {
					hidden--
				}
				continue
			}
			if _, ok := blockTags[tag]; ok {
				b.WriteByte(' ')
			}
		}
	}
}

func collapseSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}

// LinkAttr — атрибут, которым размечаются внутренние ссылки на страницы.
const LinkAttr = "data-link-page-id"

// PageLinks возвращает идентификаторы страниц из ссылок data-link-page-id
// в порядке появления в документе. Повторы сохраняются.
func PageLinks(src string) []string {
	z := html.NewTokenizer(strings.NewReader(src))
	var ids []string
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return ids
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		for {
			key, val, more := z.TagAttr()
			if string(key) == LinkAttr && len(val) > 0 {
				ids = append(ids, string(val))
			}
			if !more {
				break
			}
		}
	}
}
