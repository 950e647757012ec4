package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"manualdesk/internal/models"
)

// EventRepo — приёмник пачек событий аналитики.
type EventRepo interface {
	SaveBatch(ctx context.Context, events []models.AnalyticsEvent) error
}

const analyticsSchema = `
	CREATE TABLE IF NOT EXISTS analytics_events (
		id          UUID PRIMARY KEY,
		event_name  TEXT        NOT NULL,
		occurred_at TIMESTAMPTZ NOT NULL,
		user_id     TEXT        NOT NULL DEFAULT '',
		session_id  TEXT        NOT NULL DEFAULT '',
		context     JSONB       NOT NULL,
		payload     JSONB       NOT NULL
	);
	CREATE INDEX IF NOT EXISTS analytics_events_name_idx ON analytics_events (event_name, occurred_at);
`

type PgEventRepository struct{ db *pgxpool.Pool }

func NewPgEventRepository(db *pgxpool.Pool) *PgEventRepository {
	return &PgEventRepository{db: db}
}

// EnsureSchema создаёт таблицу событий, если её ещё нет.
func (r *PgEventRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, analyticsSchema)
	return err
}

// SaveBatch пишет пачку одной транзакцией; повторная вставка того же id игнорируется,
// поэтому повтор после сетевой ошибки не дублирует события.
func (r *PgEventRepository) SaveBatch(ctx context.Context, events []models.AnalyticsEvent) error {
	if len(events) == 0 {
		return nil
	}
	const q = `
		INSERT INTO analytics_events (id, event_name, occurred_at, user_id, session_id, context, payload)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7::jsonb)
		ON CONFLICT (id) DO NOTHING
	`

	batch := &pgx.Batch{}
	for _, e := range events {
		ctxJSON, err := json.Marshal(e.Context)
		if err != nil {
			return fmt.Errorf("событие %s: context: %w", e.ID, err)
		}
		payloadJSON, err := json.Marshal(e.Payload)
		if err != nil {
			return fmt.Errorf("событие %s: payload: %w", e.ID, err)
		}
		batch.Queue(q, e.ID, string(e.EventName), e.Timestamp, e.UserID, e.SessionID, ctxJSON, payloadJSON)
	}

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		return tx.SendBatch(ctx, batch).Close()
	})
}

// LogEventRepository пишет события в структурированный лог. Используется,
// когда Postgres не настроен.
type LogEventRepository struct{ log *zap.Logger }

func NewLogEventRepository(log *zap.Logger) *LogEventRepository {
	return &LogEventRepository{log: log}
}

func (r *LogEventRepository) SaveBatch(_ context.Context, events []models.AnalyticsEvent) error {
	for _, e := range events {
		r.log.Info("analytics: событие",
			zap.String("event_id", e.ID),
			zap.String("event_name", string(e.EventName)),
			zap.Time("timestamp", e.Timestamp),
			zap.String("user_id", e.UserID),
			zap.String("session_id", e.SessionID),
			zap.Any("payload", e.Payload),
		)
	}
	return nil
}
