// Package toc содержит операции над деревом оглавления руководства.
// Все функции чистые: входные деревья не изменяются.
package toc

import (
	"strings"

	"manualdesk/internal/models"
)

// Filter возвращает обрезанную копию леса: узел остаётся, если его заголовок
// содержит query (без учёта регистра) или остался хотя бы один потомок.
// Оставшиеся узлы несут только оставшихся потомков.
//
// Пустой query означает «без фильтра»: лес возвращается как есть.
func Filter(nodes []models.TocNode, query string) []models.TocNode {
	if query == "" {
		return nodes
	}
	return filter(nodes, strings.ToLower(query))
}

func filter(nodes []models.TocNode, lowerQuery string) []models.TocNode {
	out := make([]models.TocNode, 0, len(nodes))
	for _, n := range nodes {
		children := filter(n.Children, lowerQuery)
		if !strings.Contains(strings.ToLower(n.Title), lowerQuery) && len(children) == 0 {
			continue
		}
		kept := n
		kept.Children = nil
		if len(children) > 0 {
			kept.Children = children
		}
		out = append(out, kept)
	}
	return out
}

// Walk обходит лес в прямом порядке (pre-order). Обход прекращается,
// как только fn вернёт false.
func Walk(nodes []models.TocNode, fn func(n *models.TocNode, depth int) bool) {
	walk(nodes, 0, fn)
}

func walk(nodes []models.TocNode, depth int, fn func(n *models.TocNode, depth int) bool) bool {
	for i := range nodes {
		if !fn(&nodes[i], depth) {
			return false
		}
		if !walk(nodes[i].Children, depth+1, fn) {
			return false
		}
	}
	return true
}

// Find возвращает первый узел (pre-order, в глубину), для которого match == true.
func Find(nodes []models.TocNode, match func(n *models.TocNode) bool) (*models.TocNode, bool) {
	var found *models.TocNode
	Walk(nodes, func(n *models.TocNode, _ int) bool {
		if match(n) {
			found = n
			return false
		}
		return true
	})
	return found, found != nil
}

func FindByPageID(nodes []models.TocNode, pageID string) (*models.TocNode, bool) {
	return Find(nodes, func(n *models.TocNode) bool { return n.PageID == pageID })
}

func FindByID(nodes []models.TocNode, id string) (*models.TocNode, bool) {
	return Find(nodes, func(n *models.TocNode) bool { return n.ID == id })
}

// First — первый узел верхнего уровня.
func First(nodes []models.TocNode) (*models.TocNode, bool) {
	if len(nodes) == 0 {
		return nil, false
	}
	return &nodes[0], true
}

// PageRef — страница, достижимая из оглавления, и заголовок узла, который на неё указывает.
type PageRef struct {
	PageID string
	Title  string
}

// PageTitles разворачивает лес в упорядоченный список страниц.
// Если на страницу ссылаются несколько узлов, побеждает первый встреченный.
func PageTitles(nodes []models.TocNode) []PageRef {
	seen := make(map[string]struct{})
	var refs []PageRef
	Walk(nodes, func(n *models.TocNode, _ int) bool {
		if _, ok := seen[n.PageID]; ok {
			return true
		}
		seen[n.PageID] = struct{}{}
		refs = append(refs, PageRef{PageID: n.PageID, Title: n.Title})
		return true
	})
	return refs
}

// Count — общее число узлов в лесу.
func Count(nodes []models.TocNode) int {
	total := 0
	Walk(nodes, func(*models.TocNode, int) bool {
		total++
		return true
	})
	return total
}
