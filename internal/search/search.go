// Package search реализует полнотекстовый поиск по страницам руководств:
// линейный проход по оглавлению, извлечение текста из HTML и построение сниппетов.
package search

import (
	"manualdesk/internal/models"
	"manualdesk/internal/toc"
)

// ContentStore — хранилище страниц по идентификатору.
type ContentStore interface {
	Page(id string) (models.PageContent, bool)
}

// TextStore — необязательное расширение ContentStore, отдающее заранее
// извлечённый текст страницы.
type TextStore interface {
	PageText(id string) (string, bool)
}

// PageMap — простое хранилище страниц в памяти.
type PageMap map[string]models.PageContent

func (m PageMap) Page(id string) (models.PageContent, bool) {
	p, ok := m[id]
	return p, ok
}

func pageText(store ContentStore, id string) (string, bool) {
	if ts, ok := store.(TextStore); ok {
		return ts.PageText(id)
	}
	page, ok := store.Page(id)
	if !ok {
		return "", false
	}
	return PlainText(page.HTML), true
}

// Search ищет query во всех страницах, достижимых из оглавлений manuals.
// Порядок результатов: порядок руководств, внутри руководства pre-order оглавления.
// Отсутствующие страницы пропускаются. Пустой запрос ничего не находит.
func Search(manuals []models.Manual, store ContentStore, query string) []models.SearchResult {
	if query == "" || store == nil {
		return nil
	}
	needle := lowerRunes(query)

	var results []models.SearchResult
	for _, m := range manuals {
		for _, ref := range toc.PageTitles(m.TOC) {
			text, ok := pageText(store, ref.PageID)
			if !ok {
				continue
			}
			if indexFold(lowerRunes(text), needle) < 0 {
				continue
			}
			results = append(results, models.SearchResult{
				PageID:       ref.PageID,
				TocItemTitle: ref.Title,
				Snippet:      CreateSnippet(text, query, DefaultSnippetLength),
				ManualID:     m.ID,
				ManualTitle:  m.Title,
			})
		}
	}
	return results
}
