package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"

	"manualdesk/internal/logger"
	"manualdesk/internal/models"
	"manualdesk/internal/navigation"
	"manualdesk/internal/toc"
)

const (
	msgAINotInitialized = "AI client is not initialized. API key may be missing."
	msgAIFailed         = "Sorry, I encountered an error. Please try again."
	msgProcedureFailed  = "Failed to generate procedure. Please try again."
)

// AIClient — внешний генеративный сервис.
type AIClient interface {
	Troubleshoot(ctx context.Context, manualContext, symptom string) (string, error)
	ExtractProcedure(ctx context.Context, pageHTML string) (*models.ProcedureDetails, error)
}

// AssistantService отвечает на вопросы по открытой странице просмотрщика.
// Состояние просмотрщика ассистент не меняет: ссылки в ответе клиент
// разрешает отдельным запросом навигации.
type AssistantService struct {
	viewer *ViewerService
	ai     AIClient
	limit  int
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewAssistantService: ai может быть nil, тогда все вызовы возвращают ErrAIUnavailable.
func NewAssistantService(viewer *ViewerService, ai AIClient, contextLimit int) *AssistantService {
	if contextLimit <= 0 {
		contextLimit = 4000
	}
	return &AssistantService{
		viewer: viewer,
		ai:     ai,
		limit:  contextLimit,
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: bluemonday.UGCPolicy(),
	}
}

// BuildContext собирает контекст для модели: заголовки, текст страницы в
// Markdown (обрезанный до limit рун) и список разделов руководства с page id.
func BuildContext(manual *models.Manual, page *navigation.ResolvedPage, limit int) string {
	manualTitle, pageTitle, content := "N/A", "N/A", ""
	if manual != nil && manual.Title != "" {
		manualTitle = manual.Title
	}
	if page != nil {
		if page.Title != "" {
			pageTitle = page.Title
		}
		md, err := htmltomarkdown.ConvertString(page.HTML)
		if err != nil {
			logger.Log.Warn("assistant: html→markdown не удался, отправляем HTML", zap.String("page_id", page.ID), zap.Error(err))
			md = page.HTML
		}
		content = truncateRunes(strings.TrimSpace(md), limit)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Manual: %s\nSection: %s\n\nContent:\n%s", manualTitle, pageTitle, content)
	if manual != nil {
		if refs := toc.PageTitles(manual.TOC); len(refs) > 0 {
			b.WriteString("\n\nSections:\n")
			for _, r := range refs {
				fmt.Fprintf(&b, "- %s (page-id:%s)\n", r.Title, r.PageID)
			}
		}
	}
	return b.String()
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Troubleshoot отправляет симптом вместе с контекстом текущей страницы сессии.
// При сбое AI ответ содержит сообщение об ошибке и возвращается ErrAIUnavailable.
func (s *AssistantService) Troubleshoot(ctx context.Context, sessionID, symptom string) (models.AssistantReply, error) {
	symptom = strings.TrimSpace(symptom)
	if symptom == "" {
		return models.AssistantReply{}, fmt.Errorf("%w: пустой симптом", ErrValidation)
	}
	ctrl, err := s.viewer.Controller(sessionID)
	if err != nil {
		return models.AssistantReply{}, err
	}
	if s.ai == nil {
		return models.AssistantReply{Error: msgAINotInitialized}, ErrAIUnavailable
	}

	var manualPtr *models.Manual
	manual, hasManual := ctrl.CurrentManual()
	if hasManual {
		manualPtr = &manual
	}
	var pagePtr *navigation.ResolvedPage
	if page, ok := ctrl.CurrentPage(); ok {
		pagePtr = &page
	}

	log := logger.WithCtx(ctx).With(zap.String("session_id", sessionID))
	text, err := s.ai.Troubleshoot(ctx, BuildContext(manualPtr, pagePtr, s.limit), symptom)
	if err != nil {
		log.Error("assistant: ошибка AI", zap.Error(err))
		if !errors.Is(err, ErrAIUnavailable) {
			err = fmt.Errorf("%w: %v", ErrAIUnavailable, err)
		}
		return models.AssistantReply{Error: msgAIFailed}, err
	}

	reply := models.AssistantReply{Text: text, Segments: s.segments(text, manual)}
	log.Info("assistant: ответ получен", zap.Int("segments", len(reply.Segments)))
	return reply, nil
}

// segments делит ответ на HTML-текст и ссылки. Ссылки на страницы вне
// оглавления текущего руководства становятся текстом.
func (s *AssistantService) segments(text string, manual models.Manual) []models.ReplySegment {
	var (
		out     []models.ReplySegment
		pending strings.Builder
	)
	flush := func() {
		if pending.Len() == 0 {
			return
		}
		if html := s.render(pending.String()); html != "" {
			out = append(out, models.ReplySegment{HTML: html})
		}
		pending.Reset()
	}
	for _, p := range navigation.ParseAssistantReply(text) {
		if !p.IsLink() {
			pending.WriteString(p.Text)
			continue
		}
		if _, ok := toc.FindByPageID(manual.TOC, p.PageID); !ok {
			pending.WriteString(p.Label)
			continue
		}
		flush()
		out = append(out, models.ReplySegment{Label: p.Label, PageID: p.PageID})
	}
	flush()
	if out == nil {
		out = []models.ReplySegment{}
	}
	return out
}

func (s *AssistantService) render(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(md), &buf); err != nil {
		logger.Log.Warn("assistant: markdown не отрисован", zap.Error(err))
		return s.policy.Sanitize(md)
	}
	return strings.TrimSpace(s.policy.Sanitize(buf.String()))
}

// ExtractProcedure строит пошаговую процедуру для текущей страницы сессии.
// Доступно только для страниц типа procedure.
func (s *AssistantService) ExtractProcedure(ctx context.Context, sessionID string) (*models.ProcedureDetails, error) {
	ctrl, err := s.viewer.Controller(sessionID)
	if err != nil {
		return nil, err
	}
	page, ok := ctrl.CurrentPage()
	if !ok || page.Kind != models.PageKindProcedure || page.Placeholder {
		return nil, fmt.Errorf("%w: текущая страница не является процедурой", ErrValidation)
	}
	if s.ai == nil {
		return nil, fmt.Errorf("%w: %s", ErrAIUnavailable, msgAINotInitialized)
	}

	details, err := s.ai.ExtractProcedure(ctx, page.HTML)
	if err != nil || details == nil {
		logger.WithCtx(ctx).Error("assistant: процедура не извлечена", zap.String("page_id", page.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %s", ErrAIUnavailable, msgProcedureFailed)
	}
	return details, nil
}
