package repository

import (
	"context"
	"fmt"
	"sync"

	"manualdesk/internal/models"
	"manualdesk/internal/search"
)

// CatalogSnapshot — неизменяемая версия каталога. Мутации репозитория
// не трогают уже выданные снимки.
type CatalogSnapshot struct {
	Version uint64
	Models  []models.Model
	Manuals []models.Manual
}

// ManualsFor — руководства, привязанные к машине, в порядке каталога.
func (s *CatalogSnapshot) ManualsFor(machineID string) []models.Manual {
	out := []models.Manual{}
	for _, m := range s.Manuals {
		if m.MappedTo(machineID) {
			out = append(out, m)
		}
	}
	return out
}

// ModelsWithManuals — проекция машин с производным списком руководств.
// Считается на каждый вызов.
func (s *CatalogSnapshot) ModelsWithManuals() []models.ModelWithManuals {
	out := make([]models.ModelWithManuals, 0, len(s.Models))
	for _, m := range s.Models {
		out = append(out, models.ModelWithManuals{Model: m, Manuals: s.ManualsFor(m.ID)})
	}
	return out
}

func (s *CatalogSnapshot) ModelWithManuals(id string) (models.ModelWithManuals, error) {
	for _, m := range s.Models {
		if m.ID == id {
			return models.ModelWithManuals{Model: m, Manuals: s.ManualsFor(id)}, nil
		}
	}
	return models.ModelWithManuals{}, fmt.Errorf("машина %s: %w", id, ErrNotFound)
}

func (s *CatalogSnapshot) Manual(id string) (models.Manual, error) {
	for _, m := range s.Manuals {
		if m.ID == id {
			return m, nil
		}
	}
	return models.Manual{}, fmt.Errorf("руководство %s: %w", id, ErrNotFound)
}

func (s *CatalogSnapshot) hasModel(id string) bool {
	_, err := s.ModelWithManuals(id)
	return err == nil
}

type CatalogRepo interface {
	Snapshot() *CatalogSnapshot
	AddModel(ctx context.Context, m models.Model) (*CatalogSnapshot, error)
	UpdateModel(ctx context.Context, m models.Model) (*CatalogSnapshot, error)
	AddManual(ctx context.Context, m models.Manual) (*CatalogSnapshot, error)

	Page(id string) (models.PageContent, bool)
	PageText(id string) (string, bool)
}

var (
	_ search.ContentStore = (CatalogRepo)(nil)
	_ search.TextStore    = (CatalogRepo)(nil)
)

type storedPage struct {
	content models.PageContent
	text    string
}

// catalogRepo — каталог в памяти. Удаления нет: только добавление и замена.
type catalogRepo struct {
	mu    sync.RWMutex
	snap  *CatalogSnapshot
	pages map[string]storedPage
}

func NewCatalogRepo(ms []models.Model, manuals []models.Manual, pages map[string]models.PageContent) CatalogRepo {
	stored := make(map[string]storedPage, len(pages))
	for id, p := range pages {
		stored[id] = storedPage{content: p, text: search.PlainText(p.HTML)}
	}
	return &catalogRepo{
		snap: &CatalogSnapshot{
			Version: 1,
			Models:  append([]models.Model(nil), ms...),
			Manuals: append([]models.Manual(nil), manuals...),
		},
		pages: stored,
	}
}

func (r *catalogRepo) Snapshot() *CatalogSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap
}

// AddModel добавляет машину в начало списка.
func (r *catalogRepo) AddModel(_ context.Context, m models.Model) (*CatalogSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.snap.hasModel(m.ID) {
		return nil, fmt.Errorf("машина %s: %w", m.ID, ErrConflict)
	}
	next := &CatalogSnapshot{
		Version: r.snap.Version + 1,
		Models:  append([]models.Model{m}, r.snap.Models...),
		Manuals: r.snap.Manuals,
	}
	r.snap = next
	return next, nil
}

// UpdateModel заменяет машину с тем же id; руководства остаются производными.
func (r *catalogRepo) UpdateModel(_ context.Context, m models.Model) (*CatalogSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, existing := range r.snap.Models {
		if existing.ID == m.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("машина %s: %w", m.ID, ErrNotFound)
	}
	ms := append([]models.Model(nil), r.snap.Models...)
	ms[idx] = m
	next := &CatalogSnapshot{
		Version: r.snap.Version + 1,
		Models:  ms,
		Manuals: r.snap.Manuals,
	}
	r.snap = next
	return next, nil
}

// AddManual добавляет руководство в начало списка. Все привязанные машины
// должны существовать в текущей версии каталога.
func (r *catalogRepo) AddManual(_ context.Context, m models.Manual) (*CatalogSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.snap.Manual(m.ID); err == nil {
		return nil, fmt.Errorf("руководство %s: %w", m.ID, ErrConflict)
	}
	for _, id := range m.MappedMachineIDs {
		if !r.snap.hasModel(id) {
			return nil, fmt.Errorf("машина %s: %w", id, ErrNotFound)
		}
	}
	next := &CatalogSnapshot{
		Version: r.snap.Version + 1,
		Models:  r.snap.Models,
		Manuals: append([]models.Manual{m}, r.snap.Manuals...),
	}
	r.snap = next
	return next, nil
}

func (r *catalogRepo) Page(id string) (models.PageContent, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pages[id]
	return p.content, ok
}

func (r *catalogRepo) PageText(id string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pages[id]
	return p.text, ok
}
