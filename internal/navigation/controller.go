// Package navigation держит состояние просмотрщика руководства: выбранное
// руководство, узел оглавления, страницу, поисковый запрос и его охват.
package navigation

import (
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"manualdesk/internal/logger"
	"manualdesk/internal/models"
	"manualdesk/internal/search"
	"manualdesk/internal/toc"
)

var ErrTargetNotFound = errors.New("navigation target not found")

// EventSink принимает события аналитики. Вызов не должен блокировать.
type EventSink interface {
	Track(name models.EventName, payload any)
}

type nopSink struct{}

func (nopSink) Track(models.EventName, any) {}

type Mode string

const (
	ModeBrowsing        Mode = "browsing"
	ModeSearchingScoped Mode = "searching"
)

type Options struct {
	// NarrowViewport — узкий экран: после выбора узла боковая панель сворачивается.
	NarrowViewport bool
	Logger         *zap.Logger
}

// Controller — состояние одного открытого просмотрщика. Безопасен для
// конкурентного использования; события отправляются после обновления состояния.
type Controller struct {
	mu sync.Mutex

	machine models.ModelWithManuals
	store   search.ContentStore
	sink    EventSink
	log     *zap.Logger
	narrow  bool

	manual  int // индекс в machine.Manuals, -1 если руководство не выбрано
	node    *models.TocNode
	page    ResolvedPage
	hasPage bool

	query       string
	scope       models.SearchScope
	allManuals  bool
	sidebarOpen bool
}

// New открывает просмотрщик машины на руководстве manualID (пустой id означает
// первое руководство машины) и отправляет manual_open.
func New(machine models.ModelWithManuals, manualID string, store search.ContentStore, sink EventSink, opts Options) (*Controller, error) {
	if sink == nil {
		sink = nopSink{}
	}
	log := opts.Logger
	if log == nil {
		log = logger.Log
	}
	c := &Controller{
		machine:     machine,
		store:       store,
		sink:        sink,
		log:         log.With(zap.String("machine_id", machine.ID)),
		narrow:      opts.NarrowViewport,
		manual:      -1,
		scope:       models.ScopePage,
		sidebarOpen: true,
	}
	if len(machine.Manuals) == 0 {
		if manualID != "" {
			return nil, ErrTargetNotFound
		}
		return c, nil
	}
	if manualID == "" {
		manualID = machine.Manuals[0].ID
	}
	if err := c.SelectManual(manualID); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Controller) manualIndex(id string) int {
	for i := range c.machine.Manuals {
		if c.machine.Manuals[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Controller) currentManual() *models.Manual {
	if c.manual < 0 {
		return nil
	}
	return &c.machine.Manuals[c.manual]
}

// SelectManual переключает руководство, выбирает его первый узел верхнего
// уровня (или ничего для пустого оглавления) и отправляет manual_open.
func (c *Controller) SelectManual(manualID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.manualIndex(manualID)
	if idx < 0 {
		c.log.Warn("navigation: руководство не найдено", zap.String("manual_id", manualID))
		return ErrTargetNotFound
	}
	c.switchManual(idx)

	m := c.currentManual()
	c.sink.Track(models.EventManualOpen, models.ManualOpenPayload{
		MachineID:   c.machine.ID,
		ManualID:    m.ID,
		ManualTitle: m.Title,
	})
	return nil
}

func (c *Controller) switchManual(idx int) {
	c.manual = idx
	c.node = nil
	c.page = ResolvedPage{}
	c.hasPage = false
	if first, ok := toc.First(c.machine.Manuals[idx].TOC); ok {
		c.setNode(first)
	}
}

func (c *Controller) setNode(n *models.TocNode) {
	node := *n
	c.node = &node
	c.page = ResolvePage(c.store, node)
	c.hasPage = true
}

// SelectTocNode выбирает узел текущего руководства по его id.
func (c *Controller) SelectTocNode(nodeID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.currentManual()
	if m == nil {
		return ErrTargetNotFound
	}
	n, ok := toc.FindByID(m.TOC, nodeID)
	if !ok {
		c.log.Warn("navigation: узел оглавления не найден", zap.String("manual_id", m.ID), zap.String("node_id", nodeID))
		return ErrTargetNotFound
	}
	c.selectNode(n)
	return nil
}

// selectNode: состояние, потом page_view, потом сворачивание панели на узком экране.
func (c *Controller) selectNode(n *models.TocNode) {
	c.setNode(n)

	c.sink.Track(models.EventPageView, models.PageViewPayload{
		MachineID:    c.machine.ID,
		ManualID:     c.currentManual().ID,
		PageID:       n.PageID,
		ChapterTitle: n.Title,
	})

	if c.narrow {
		c.sidebarOpen = false
	}
}

// NavigateToPage ищет страницу только в оглавлении текущего руководства
// (pre-order). При промахе состояние не меняется, пишется предупреждение
// и возвращается ErrTargetNotFound.
func (c *Controller) NavigateToPage(pageID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.navigateToPage(pageID)
}

func (c *Controller) navigateToPage(pageID string) error {
	m := c.currentManual()
	if m == nil {
		c.log.Warn("navigation: нет открытого руководства", zap.String("page_id", pageID))
		return ErrTargetNotFound
	}
	n, ok := toc.FindByPageID(m.TOC, pageID)
	if !ok {
		c.log.Warn("navigation: цель перехода не найдена в текущем руководстве",
			zap.String("manual_id", m.ID), zap.String("page_id", pageID))
		return ErrTargetNotFound
	}
	c.selectNode(n)
	return nil
}

// NavigateToSearchResult открывает результат поиска, переключая руководство
// при необходимости. После перехода запрос очищается, охват сбрасывается на page.
func (c *Controller) NavigateToSearchResult(r models.SearchResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.manualIndex(r.ManualID)
	if idx < 0 {
		c.log.Warn("navigation: руководство из результата поиска не найдено",
			zap.String("manual_id", r.ManualID), zap.String("page_id", r.PageID))
		return ErrTargetNotFound
	}
	n, ok := toc.FindByPageID(c.machine.Manuals[idx].TOC, r.PageID)
	if !ok {
		c.log.Warn("navigation: страница из результата поиска не найдена",
			zap.String("manual_id", r.ManualID), zap.String("page_id", r.PageID))
		return ErrTargetNotFound
	}

	query := c.query
	if idx != c.manual {
		c.switchManual(idx)
		m := c.currentManual()
		c.sink.Track(models.EventManualOpen, models.ManualOpenPayload{
			MachineID:   c.machine.ID,
			ManualID:    m.ID,
			ManualTitle: m.Title,
		})
	}
	c.selectNode(n)
	c.query = ""
	c.scope = models.ScopePage

	c.sink.Track(models.EventSearchResultClick, models.SearchResultClickPayload{
		QueryText:       query,
		ClickedPageID:   r.PageID,
		ClickedTocTitle: r.TocItemTitle,
	})
	return nil
}

// Search задаёт поисковый запрос. Непустой после обрезки пробелов запрос
// отправляет search_query.
func (c *Controller) Search(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.query = query
	if q := strings.TrimSpace(query); q != "" {
		c.sink.Track(models.EventSearchQuery, models.SearchQueryPayload{
			QueryText:             q,
			SearchScope:           c.scope,
			IsSearchingAllManuals: c.allManuals,
			MachineID:             c.machine.ID,
		})
	}
}

func (c *Controller) ClearQuery() {
	c.mu.Lock()
	c.query = ""
	c.mu.Unlock()
}

func (c *Controller) SetScope(scope models.SearchScope) {
	c.mu.Lock()
	c.scope = scope
	c.mu.Unlock()
}

func (c *Controller) SetSearchAllManuals(v bool) {
	c.mu.Lock()
	c.allManuals = v
	c.mu.Unlock()
}

func (c *Controller) SetSidebarOpen(open bool) {
	c.mu.Lock()
	c.sidebarOpen = open
	c.mu.Unlock()
}

func (c *Controller) mode() Mode {
	if c.query == "" {
		return ModeBrowsing
	}
	switch {
	case c.scope == models.ScopeManual, c.scope == models.ScopeAllManuals:
		return ModeSearchingScoped
	case c.allManuals && c.scope != models.ScopeIndex:
		return ModeSearchingScoped
	}
	return ModeBrowsing
}

func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode()
}

// searchTargets — руководства, по которым идёт поиск в режиме SearchingScoped.
func (c *Controller) searchTargets() []models.Manual {
	if c.scope == models.ScopeAllManuals || c.allManuals {
		return c.machine.Manuals
	}
	if m := c.currentManual(); m != nil {
		return []models.Manual{*m}
	}
	return nil
}

// View — снимок состояния для отображения.
type View struct {
	Mode        Mode                  `json:"mode"`
	MachineID   string                `json:"machineId"`
	ManualID    string                `json:"manualId,omitempty"`
	ManualTitle string                `json:"manualTitle,omitempty"`
	Node        *models.TocNode       `json:"node,omitempty"`
	Page        *ResolvedPage         `json:"page,omitempty"`
	PageHTML    string                `json:"pageHtml,omitempty"`
	Hints       *RenderHints          `json:"hints,omitempty"`
	TOC         []models.TocNode      `json:"toc"`
	TocExpanded bool                  `json:"tocExpanded"`
	Query       string                `json:"query"`
	Scope       models.SearchScope    `json:"scope"`
	AllManuals  bool                  `json:"allManuals"`
	Results     []models.SearchResult `json:"results,omitempty"`
	SidebarOpen bool                  `json:"sidebarOpen"`
}

// View пересчитывает производные данные (фильтр оглавления, подсветку,
// результаты поиска) из текущего состояния при каждом вызове.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		Mode:        c.mode(),
		MachineID:   c.machine.ID,
		Query:       c.query,
		Scope:       c.scope,
		AllManuals:  c.allManuals,
		SidebarOpen: c.sidebarOpen,
	}

	m := c.currentManual()
	if m != nil {
		v.ManualID = m.ID
		v.ManualTitle = m.Title
		v.TOC = m.TOC
		if c.query != "" && c.scope == models.ScopeIndex {
			v.TOC = toc.Filter(m.TOC, c.query)
			v.TocExpanded = true
		}
	}
	if c.node != nil {
		node := *c.node
		v.Node = &node
	}
	if c.hasPage {
		page := c.page
		hints := RenderHintsFor(page.Kind)
		v.Page = &page
		v.Hints = &hints
		v.PageHTML = page.HTML
		if c.query != "" && c.scope == models.ScopePage {
			v.PageHTML = search.HighlightHTML(page.HTML, c.query)
		}
	}
	if v.Mode == ModeSearchingScoped {
		v.Results = search.Search(c.searchTargets(), c.store, c.query)
	}
	return v
}

// CurrentPage — текущая страница; false, если ничего не выбрано.
func (c *Controller) CurrentPage() (ResolvedPage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page, c.hasPage
}

// CurrentManual — открытое руководство; false для машины без руководств.
func (c *Controller) CurrentManual() (models.Manual, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m := c.currentManual(); m != nil {
		return *m, true
	}
	return models.Manual{}, false
}

func (c *Controller) Machine() models.ModelWithManuals {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine
}
