package navigation

import (
	"fmt"

	"golang.org/x/net/html"

	"manualdesk/internal/models"
	"manualdesk/internal/search"
)

const placeholderBody = "<p>Content for this section is not yet available.</p>"

// ResolvedPage — страница, на которую указывает выбранный узел оглавления.
type ResolvedPage struct {
	ID string `json:"id"`
	models.PageContent
	// Placeholder — в хранилище нет такой страницы, показана заглушка.
	Placeholder bool `json:"placeholder"`
}

// ResolvePage достаёт страницу узла из хранилища. Если страницы нет,
// строит заглушку с заголовком узла.
func ResolvePage(store search.ContentStore, node models.TocNode) ResolvedPage {
	if store != nil {
		if p, ok := store.Page(node.PageID); ok {
			if p.Kind == "" {
				p.Kind = models.PageKindContent
			}
			return ResolvedPage{ID: node.PageID, PageContent: p}
		}
	}
	return ResolvedPage{
		ID:          node.PageID,
		PageContent: Placeholder(node.Title),
		Placeholder: true,
	}
}

// Placeholder — страница "содержимое пока недоступно".
func Placeholder(title string) models.PageContent {
	return models.PageContent{
		Title: title,
		HTML:  fmt.Sprintf(`<h1 class="text-2xl font-bold">%s</h1>%s`, html.EscapeString(title), placeholderBody),
		Kind:  models.PageKindContent,
	}
}
