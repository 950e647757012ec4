package models

import "fmt"

// SearchScope — охват поиска в просмотрщике.
type SearchScope string

const (
	ScopePage       SearchScope = "page"
	ScopeIndex      SearchScope = "index"
	ScopeManual     SearchScope = "manual"
	ScopeAllManuals SearchScope = "all-manuals"
)

func ParseSearchScope(s string) (SearchScope, error) {
	switch sc := SearchScope(s); sc {
	case ScopePage, ScopeIndex, ScopeManual, ScopeAllManuals:
		return sc, nil
	case "":
		return ScopePage, nil
	}
	return "", fmt.Errorf("unknown search scope %q", s)
}

type SearchResult struct {
	PageID       string `json:"pageId"`
	TocItemTitle string `json:"tocItemTitle"`
	Snippet      string `json:"snippet"`
	ManualID     string `json:"manualId"`
	ManualTitle  string `json:"manualTitle"`
}
