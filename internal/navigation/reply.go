package navigation

import (
	"regexp"
	"strings"
)

var pageLinkRe = regexp.MustCompile(`\[(.*?)\]\(page-id:(.*?)\)`)

// ReplyPart — кусок ответа ассистента. Если PageID не пуст, это ссылка
// на страницу текущего руководства с подписью Label, иначе обычный текст.
type ReplyPart struct {
	Text   string
	Label  string
	PageID string
}

func (p ReplyPart) IsLink() bool { return p.PageID != "" }

// ParseAssistantReply делит ответ на текст и ссылки вида [подпись](page-id:<id>).
// Ссылки разрешаются через Controller.NavigateToPage.
func ParseAssistantReply(text string) []ReplyPart {
	var parts []ReplyPart
	last := 0
	for _, m := range pageLinkRe.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > last {
			parts = append(parts, ReplyPart{Text: text[last:m[0]]})
		}
		pageID := strings.TrimSpace(text[m[4]:m[5]])
		label := text[m[2]:m[3]]
		if pageID == "" {
			parts = append(parts, ReplyPart{Text: text[m[0]:m[1]]})
		} else {
			parts = append(parts, ReplyPart{Label: label, PageID: pageID})
		}
		last = m[1]
	}
	if last < len(text) {
		parts = append(parts, ReplyPart{Text: text[last:]})
	}
	return parts
}
