package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"manualdesk/internal/logger"
	"manualdesk/internal/models"
	"manualdesk/internal/navigation"
	"manualdesk/internal/repository"
	"manualdesk/internal/reqctx"
)

const (
	analyticsQueueSize   = 1024
	analyticsFlushTries  = 3
	analyticsRetryDelay  = 200 * time.Millisecond
	analyticsStopTimeout = 5 * time.Second
	topQueriesLimit      = 5
)

type AnalyticsConfig struct {
	BatchSize     int
	FlushInterval time.Duration
}

// AnalyticsService собирает события в пачки и отправляет их в EventRepo:
// по достижении BatchSize или через FlushInterval после первого события пачки.
// Пачки отправляет только воркер Run; Track никогда не блокируется.
type AnalyticsService struct {
	repo     repository.EventRepo
	batch    int
	interval time.Duration
	in       chan models.AnalyticsEvent
	now      func() time.Time

	mu      sync.Mutex
	counts  map[models.EventName]int
	queries map[string]int
	users   map[string]struct{}
	sess    map[string]struct{}
}

func NewAnalyticsService(repo repository.EventRepo, cfg AnalyticsConfig) *AnalyticsService {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 10
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = 5 * time.Second
	}
	return &AnalyticsService{
		repo:     repo,
		batch:    cfg.BatchSize,
		interval: cfg.FlushInterval,
		in:       make(chan models.AnalyticsEvent, analyticsQueueSize),
		now:      time.Now,
		counts:   make(map[models.EventName]int),
		queries:  make(map[string]int),
		users:    make(map[string]struct{}),
		sess:     make(map[string]struct{}),
	}
}

// Track ставит событие в очередь от имени пользователя и сессии из контекста.
func (s *AnalyticsService) Track(ctx context.Context, name models.EventName, payload any) {
	userID, _ := reqctx.GetUserID(ctx)
	sessionID, _ := reqctx.GetSessionID(ctx)
	s.Record(models.AnalyticsEvent{
		EventName: name,
		UserID:    userID,
		SessionID: sessionID,
		Payload:   payload,
	})
}

// Record дополняет событие (id, время, контекст) и ставит его в очередь.
func (s *AnalyticsService) Record(e models.AnalyticsEvent) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = s.now().UTC()
	}
	if e.Context.Device == "" {
		e.Context.Device = "web"
	}
	if e.Context.Browser == "" {
		e.Context.Browser = "Unknown"
	}
	s.account(e)

	select {
	case s.in <- e:
	default:
		logger.Log.Warn("analytics: очередь переполнена, событие отброшено",
			zap.String("event_name", string(e.EventName)))
	}
}

func (s *AnalyticsService) account(e models.AnalyticsEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[e.EventName]++
	if e.UserID != "" {
		s.users[e.UserID] = struct{}{}
	}
	if e.SessionID != "" {
		s.sess[e.SessionID] = struct{}{}
	}
	if e.EventName != models.EventSearchQuery {
		return
	}
	var q string
	switch p := e.Payload.(type) {
	case models.SearchQueryPayload:
		q = p.QueryText
	case map[string]any:
		q, _ = p["query_text"].(string)
	}
	if q != "" {
		s.queries[q]++
	}
}

// Session возвращает приёмник событий для контроллера просмотрщика.
func (s *AnalyticsService) Session(sessionID, userID, browser string) navigation.EventSink {
	return &sessionSink{svc: s, sessionID: sessionID, userID: userID, browser: browser}
}

type sessionSink struct {
	svc       *AnalyticsService
	sessionID string
	userID    string
	browser   string
}

func (t *sessionSink) Track(name models.EventName, payload any) {
	t.svc.Record(models.AnalyticsEvent{
		EventName: name,
		UserID:    t.userID,
		SessionID: t.sessionID,
		Context:   models.EventContext{Device: "web", Browser: t.browser},
		Payload:   payload,
	})
}

// Run — воркер отправки пачек. Завершается при отмене ctx, предварительно
// отправив всё, что осталось в очереди.
func (s *AnalyticsService) Run(ctx context.Context) error {
	var (
		queue  []models.AnalyticsEvent
		timer  *time.Timer
		timerC <-chan time.Time
	)
	stopTimer := func() {
		if timer != nil {
			timer.Stop()
			timer, timerC = nil, nil
		}
	}
	flush := func(fctx context.Context) {
		stopTimer()
		if len(queue) == 0 {
			return
		}
		s.flush(fctx, queue)
		queue = nil
	}

	for {
		select {
		case e := <-s.in:
			queue = append(queue, e)
			if len(queue) >= s.batch {
				flush(ctx)
			} else if timerC == nil {
				timer = time.NewTimer(s.interval)
				timerC = timer.C
			}
		case <-timerC:
			timer, timerC = nil, nil
			flush(ctx)
		case <-ctx.Done():
			for drained := false; !drained; {
				select {
				case e := <-s.in:
					queue = append(queue, e)
				default:
					drained = true
				}
			}
			stopCtx, cancel := context.WithTimeout(context.Background(), analyticsStopTimeout)
			flush(stopCtx)
			cancel()
			return nil
		}
	}
}

func (s *AnalyticsService) flush(ctx context.Context, batch []models.AnalyticsEvent) {
	err := retry.Do(
		func() error { return s.repo.SaveBatch(ctx, batch) },
		retry.Context(ctx),
		retry.Attempts(analyticsFlushTries),
		retry.Delay(analyticsRetryDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.Log.Warn("analytics: повтор отправки пачки", zap.Uint("attempt", n+1), zap.Error(err))
		}),
	)
	if err != nil {
		logger.Log.Error("analytics: пачка событий потеряна", zap.Int("size", len(batch)), zap.Error(err))
		return
	}
	logger.Log.Debug("analytics: пачка событий отправлена", zap.Int("size", len(batch)))
}

// Summary — KPI по событиям, принятым с момента запуска процесса.
func (s *AnalyticsService) Summary() models.AnalyticsSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, n := range s.counts {
		total += n
	}
	out := models.AnalyticsSummary{
		TotalEvents:      total,
		ManualOpens:      s.counts[models.EventManualOpen],
		PageViews:        s.counts[models.EventPageView],
		SearchQueries:    s.counts[models.EventSearchQuery],
		ResultClicks:     s.counts[models.EventSearchResultClick],
		DistinctSessions: len(s.sess),
		DistinctUsers:    len(s.users),
		TopQueries:       []models.QueryCount{},
	}
	if out.SearchQueries > 0 {
		out.SearchCTR = float64(out.ResultClicks) / float64(out.SearchQueries)
	}

	for q, n := range s.queries {
		out.TopQueries = append(out.TopQueries, models.QueryCount{Query: q, Count: n})
	}
	sort.Slice(out.TopQueries, func(i, j int) bool {
		a, b := out.TopQueries[i], out.TopQueries[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Query < b.Query
	})
	if len(out.TopQueries) > topQueriesLimit {
		out.TopQueries = out.TopQueries[:topQueriesLimit]
	}
	return out
}

// Ingest принимает пачку событий от клиента. Допускаются только известные имена.
func (s *AnalyticsService) Ingest(ctx context.Context, events []models.AnalyticsEvent) (int, error) {
	for i, e := range events {
		if !e.EventName.Valid() {
			return 0, fmt.Errorf("%w: событие %d: неизвестное имя %q", ErrValidation, i, e.EventName)
		}
	}
	sessionID, _ := reqctx.GetSessionID(ctx)
	for _, e := range events {
		if e.SessionID == "" {
			e.SessionID = sessionID
		}
		e.ID = ""
		s.Record(e)
	}
	return len(events), nil
}
