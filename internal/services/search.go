package services

import (
	"context"
	"strings"

	"manualdesk/internal/models"
	"manualdesk/internal/repository"
	"manualdesk/internal/search"
)

// SearchService — поиск без состояния просмотрщика (API, MCP, CLI).
type SearchService struct {
	catalog repository.CatalogRepo
}

func NewSearchService(catalog repository.CatalogRepo) *SearchService {
	return &SearchService{catalog: catalog}
}

// Search ищет по всем руководствам машины, либо только по manualID, если он задан.
func (s *SearchService) Search(_ context.Context, machineID, manualID, query string) ([]models.SearchResult, error) {
	snap := s.catalog.Snapshot()
	machine, err := snap.ModelWithManuals(machineID)
	if err != nil {
		return nil, err
	}

	manuals := machine.Manuals
	if manualID != "" {
		manuals = nil
		for _, m := range machine.Manuals {
			if m.ID == manualID {
				manuals = []models.Manual{m}
				break
			}
		}
		if manuals == nil {
			return nil, repository.ErrNotFound
		}
	}

	results := search.Search(manuals, s.catalog, strings.TrimSpace(query))
	if results == nil {
		results = []models.SearchResult{}
	}
	return results, nil
}
