package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"manualdesk/internal/logger"
	"manualdesk/internal/models"
	"manualdesk/internal/navigation"
	"manualdesk/internal/repository"
	"manualdesk/internal/reqctx"
)

// SessionSinks выдаёт приёмник аналитики для сессии просмотрщика.
type SessionSinks interface {
	Session(sessionID, userID, browser string) navigation.EventSink
}

type viewerSession struct {
	ctrl     *navigation.Controller
	lastSeen time.Time
}

// ViewerService держит открытые просмотрщики (по одному navigation.Controller
// на сессию) и выселяет простаивающие дольше ttl.
type ViewerService struct {
	catalog repository.CatalogRepo
	sinks   SessionSinks
	ttl     time.Duration
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*viewerSession
}

func NewViewerService(catalog repository.CatalogRepo, sinks SessionSinks, ttl time.Duration) *ViewerService {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &ViewerService{
		catalog:  catalog,
		sinks:    sinks,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*viewerSession),
	}
}

type OpenViewerRequest struct {
	MachineID      string `json:"machineId"`
	ManualID       string `json:"manualId"`
	NarrowViewport bool   `json:"narrowViewport"`
	Browser        string `json:"-"`
}

// ViewerState — состояние сессии для клиента.
type ViewerState struct {
	SessionID string `json:"sessionId"`
	navigation.View
}

// Open создаёт сессию просмотрщика над текущей версией каталога.
func (s *ViewerService) Open(ctx context.Context, req OpenViewerRequest) (ViewerState, error) {
	machine, err := s.catalog.Snapshot().ModelWithManuals(req.MachineID)
	if err != nil {
		return ViewerState{}, err
	}

	id := uuid.NewString()
	userID, _ := reqctx.GetUserID(ctx)
	log := logger.WithCtx(reqctx.WithSessionID(ctx, id))
	ctrl, err := navigation.New(machine, req.ManualID, s.catalog, s.sinks.Session(id, userID, req.Browser), navigation.Options{
		NarrowViewport: req.NarrowViewport,
		Logger:         log,
	})
	if err != nil {
		return ViewerState{}, fmt.Errorf("руководство %s: %w", req.ManualID, err)
	}

	s.mu.Lock()
	s.sessions[id] = &viewerSession{ctrl: ctrl, lastSeen: s.now()}
	s.mu.Unlock()

	log.Info("viewer: сессия открыта", zap.String("machine_id", machine.ID), zap.String("manual_id", req.ManualID))
	return ViewerState{SessionID: id, View: ctrl.View()}, nil
}

// Controller возвращает контроллер сессии и продлевает её жизнь.
func (s *ViewerService) Controller(id string) (*navigation.Controller, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.lastSeen = s.now()
	return sess.ctrl, nil
}

func (s *ViewerService) State(id string) (ViewerState, error) {
	ctrl, err := s.Controller(id)
	if err != nil {
		return ViewerState{}, err
	}
	return ViewerState{SessionID: id, View: ctrl.View()}, nil
}

// Apply выполняет действие над контроллером сессии и возвращает новое состояние.
// Ошибка действия (например, navigation.ErrTargetNotFound) возвращается вместе
// с неизменённым состоянием.
func (s *ViewerService) Apply(id string, action func(c *navigation.Controller) error) (ViewerState, error) {
	ctrl, err := s.Controller(id)
	if err != nil {
		return ViewerState{}, err
	}
	err = action(ctrl)
	return ViewerState{SessionID: id, View: ctrl.View()}, err
}

type SearchRequest struct {
	Query      string             `json:"query"`
	Scope      models.SearchScope `json:"scope"`
	AllManuals bool               `json:"allManuals"`
}

// Search выставляет охват и флаг "все руководства", затем запрос.
func (s *ViewerService) Search(id string, req SearchRequest) (ViewerState, error) {
	scope, err := models.ParseSearchScope(string(req.Scope))
	if err != nil {
		return ViewerState{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return s.Apply(id, func(c *navigation.Controller) error {
		c.SetScope(scope)
		c.SetSearchAllManuals(req.AllManuals)
		c.Search(req.Query)
		return nil
	})
}

func (s *ViewerService) Close(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *ViewerService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Evict удаляет сессии, простаивающие дольше ttl. Возвращает число удалённых.
func (s *ViewerService) Evict() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	deadline := s.now().Add(-s.ttl)
	n := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(deadline) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// RunCleaner периодически выселяет простаивающие сессии до отмены ctx.
func (s *ViewerService) RunCleaner(ctx context.Context, every time.Duration) error {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if n := s.Evict(); n > 0 {
				logger.Log.Info("viewer: выселены простаивающие сессии", zap.Int("count", n))
			}
		}
	}
}
