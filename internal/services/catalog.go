package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"manualdesk/internal/logger"
	"manualdesk/internal/models"
	"manualdesk/internal/navigation"
	"manualdesk/internal/repository"
	"manualdesk/internal/toc"
)

// EventTracker — отправка событий аналитики от имени запроса.
type EventTracker interface {
	Track(ctx context.Context, name models.EventName, payload any)
}

// AuditRecorder — запись действий администраторов в журнал.
type AuditRecorder interface {
	Record(ctx context.Context, action, target string, success bool)
}

// CatalogView — производное представление каталога конкретной версии.
type CatalogView struct {
	Version  uint64                    `json:"version"`
	Machines []models.ModelWithManuals `json:"machines"`
}

func viewOf(s *repository.CatalogSnapshot) CatalogView {
	return CatalogView{Version: s.Version, Machines: s.ModelsWithManuals()}
}

type CatalogService struct {
	repo   repository.CatalogRepo
	events EventTracker
	audit  AuditRecorder
}

func NewCatalogService(repo repository.CatalogRepo, events EventTracker, audit AuditRecorder) *CatalogService {
	return &CatalogService{repo: repo, events: events, audit: audit}
}

// Store — хранилище страниц для поиска и просмотрщика.
func (s *CatalogService) Store() repository.CatalogRepo { return s.repo }

func (s *CatalogService) Snapshot() *repository.CatalogSnapshot { return s.repo.Snapshot() }

// Machines — машины с руководствами; q фильтрует по названию, коду,
// производителю, категории и тегам без учёта регистра.
func (s *CatalogService) Machines(_ context.Context, q string) []models.ModelWithManuals {
	all := s.repo.Snapshot().ModelsWithManuals()
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return all
	}
	out := make([]models.ModelWithManuals, 0, len(all))
	for _, m := range all {
		if machineMatches(m.Model, q) {
			out = append(out, m)
		}
	}
	return out
}

func machineMatches(m models.Model, lowerQuery string) bool {
	fields := append([]string{m.Name, m.ModelCode, m.Manufacturer, m.Category}, m.Tags...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), lowerQuery) {
			return true
		}
	}
	return false
}

func (s *CatalogService) Machine(_ context.Context, id string) (models.ModelWithManuals, error) {
	return s.repo.Snapshot().ModelWithManuals(id)
}

func (s *CatalogService) Manual(_ context.Context, id string) (models.Manual, error) {
	return s.repo.Snapshot().Manual(id)
}

// ManualTOC — оглавление руководства, отфильтрованное по q (пустой q — целиком).
func (s *CatalogService) ManualTOC(ctx context.Context, id, q string) ([]models.TocNode, error) {
	m, err := s.Manual(ctx, id)
	if err != nil {
		return nil, err
	}
	nodes := toc.Filter(m.TOC, q)
	if nodes == nil {
		nodes = []models.TocNode{}
	}
	return nodes, nil
}

// Page — страница из хранилища. Страница, на которую ссылается оглавление,
// но которой нет в хранилище, отдаётся заглушкой с заголовком узла.
func (s *CatalogService) Page(_ context.Context, id string) (navigation.ResolvedPage, error) {
	if p, ok := s.repo.Page(id); ok {
		return navigation.ResolvedPage{ID: id, PageContent: p}, nil
	}
	for _, m := range s.repo.Snapshot().Manuals {
		if n, ok := toc.FindByPageID(m.TOC, id); ok {
			return navigation.ResolvePage(nil, *n), nil
		}
	}
	return navigation.ResolvedPage{}, fmt.Errorf("страница %s: %w", id, repository.ErrNotFound)
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(s string) string {
	return strings.Trim(slugRe.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

func (s *CatalogService) modelFromRequest(req models.CreateModelRequest) (models.Model, error) {
	m := models.Model{
		ID:           strings.TrimSpace(req.ID),
		Name:         strings.TrimSpace(req.Name),
		ModelCode:    strings.TrimSpace(req.ModelCode),
		Manufacturer: strings.TrimSpace(req.Manufacturer),
		Year:         strings.TrimSpace(req.Year),
		Category:     strings.TrimSpace(req.Category),
		Description:  strings.TrimSpace(req.Description),
		Image:        strings.TrimSpace(req.Image),
	}
	if m.Name == "" || m.ModelCode == "" {
		return m, fmt.Errorf("%w: name и modelCode обязательны", ErrValidation)
	}
	seen := make(map[string]struct{})
	for _, tag := range req.Tags {
		tag = strings.TrimSpace(tag)
		if _, dup := seen[tag]; tag == "" || dup {
			continue
		}
		seen[tag] = struct{}{}
		m.Tags = append(m.Tags, tag)
	}
	return m, nil
}

// AddModel добавляет машину в начало каталога. Пустой id выводится из кода модели.
func (s *CatalogService) AddModel(ctx context.Context, req models.CreateModelRequest) (models.ModelWithManuals, CatalogView, error) {
	m, err := s.modelFromRequest(req)
	if err != nil {
		return models.ModelWithManuals{}, CatalogView{}, err
	}
	generated := m.ID == ""
	if generated {
		m.ID = slugify(m.ModelCode)
		if m.ID == "" {
			m.ID = "model-" + uuid.NewString()[:8]
		}
	}

	snap, err := s.repo.AddModel(ctx, m)
	if generated && errors.Is(err, repository.ErrConflict) {
		m.ID = m.ID + "-" + uuid.NewString()[:8]
		snap, err = s.repo.AddModel(ctx, m)
	}
	if err != nil {
		s.audit.Record(ctx, "Add Machine", m.ModelCode, false)
		logger.WithCtx(ctx).Warn("catalog: машина не добавлена", zap.String("model_id", m.ID), zap.Error(err))
		return models.ModelWithManuals{}, CatalogView{}, err
	}

	s.audit.Record(ctx, "Add Machine", m.ModelCode, true)
	s.events.Track(ctx, models.EventAdminAction, models.AdminActionPayload{ActionType: models.AdminMachineCreated, TargetID: m.ID})
	logger.WithCtx(ctx).Info("catalog: машина добавлена", zap.String("model_id", m.ID), zap.Uint64("version", snap.Version))

	created, err := snap.ModelWithManuals(m.ID)
	return created, viewOf(snap), err
}

// UpdateModel заменяет поля машины; список руководств остаётся производным.
func (s *CatalogService) UpdateModel(ctx context.Context, id string, req models.CreateModelRequest) (models.ModelWithManuals, CatalogView, error) {
	req.ID = id
	m, err := s.modelFromRequest(req)
	if err != nil {
		return models.ModelWithManuals{}, CatalogView{}, err
	}
	snap, err := s.repo.UpdateModel(ctx, m)
	if err != nil {
		s.audit.Record(ctx, "Update Machine", id, false)
		return models.ModelWithManuals{}, CatalogView{}, err
	}

	s.audit.Record(ctx, "Update Machine", m.ModelCode, true)
	s.events.Track(ctx, models.EventAdminAction, models.AdminActionPayload{ActionType: models.AdminMachineUpdated, TargetID: m.ID})
	logger.WithCtx(ctx).Info("catalog: машина обновлена", zap.String("model_id", m.ID), zap.Uint64("version", snap.Version))

	updated, err := snap.ModelWithManuals(m.ID)
	return updated, viewOf(snap), err
}

// AddManual регистрирует руководство с пустым оглавлением в начале каталога.
func (s *CatalogService) AddManual(ctx context.Context, req models.CreateManualRequest) (models.Manual, CatalogView, error) {
	m := models.Manual{
		ID:               "manual-" + uuid.NewString(),
		Title:            strings.TrimSpace(req.Title),
		Type:             req.Type,
		Version:          strings.TrimSpace(req.Version),
		PublishedDate:    strings.TrimSpace(req.PublishedDate),
		Language:         strings.TrimSpace(req.Language),
		Visibility:       req.Visibility,
		MappedMachineIDs: req.MappedMachineIDs,
		TOC:              []models.TocNode{},
	}
	if m.Title == "" {
		return models.Manual{}, CatalogView{}, fmt.Errorf("%w: title обязателен", ErrValidation)
	}
	if m.Type == "" {
		m.Type = models.ManualTypeOther
	}
	if m.Visibility == "" {
		m.Visibility = models.VisibilityPublic
	}
	if !m.Type.Valid() {
		return models.Manual{}, CatalogView{}, fmt.Errorf("%w: неизвестный тип руководства %q", ErrValidation, m.Type)
	}
	if !m.Visibility.Valid() {
		return models.Manual{}, CatalogView{}, fmt.Errorf("%w: неизвестная видимость %q", ErrValidation, m.Visibility)
	}
	if m.Language == "" {
		m.Language = "English"
	}
	if m.MappedMachineIDs == nil {
		m.MappedMachineIDs = []string{}
	}

	snap, err := s.repo.AddManual(ctx, m)
	if err != nil {
		s.audit.Record(ctx, "Upload Manual", m.Title, false)
		if errors.Is(err, repository.ErrNotFound) {
			return models.Manual{}, CatalogView{}, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return models.Manual{}, CatalogView{}, err
	}

	s.audit.Record(ctx, "Upload Manual", m.Title, true)
	s.events.Track(ctx, models.EventAdminAction, models.AdminActionPayload{ActionType: models.AdminManualUploaded, TargetID: m.ID})
	logger.WithCtx(ctx).Info("catalog: руководство добавлено", zap.String("manual_id", m.ID), zap.Uint64("version", snap.Version))
	return m, viewOf(snap), nil
}
