package models

import "time"

type EventName string

const (
	EventPageView          EventName = "page_view"
	EventSearchQuery       EventName = "search_query"
	EventSearchResultClick EventName = "search_result_click"
	EventManualOpen        EventName = "manual_open"
	EventAdminAction       EventName = "admin_action"
)

type PageViewPayload struct {
	MachineID    string `json:"machine_id"`
	ManualID     string `json:"manual_id"`
	PageID       string `json:"page_id"`
	ChapterTitle string `json:"chapter_title"`
}

type SearchQueryPayload struct {
	QueryText             string      `json:"query_text"`
	SearchScope           SearchScope `json:"search_scope"`
	IsSearchingAllManuals bool        `json:"is_searching_all_manuals"`
	MachineID             string      `json:"machine_id"`
}

type SearchResultClickPayload struct {
	QueryText       string `json:"query_text"`
	ClickedPageID   string `json:"clicked_page_id"`
	ClickedTocTitle string `json:"clicked_toc_title"`
}

type ManualOpenPayload struct {
	MachineID   string `json:"machine_id"`
	ManualID    string `json:"manual_id"`
	ManualTitle string `json:"manual_title"`
}

type AdminActionType string

const (
	AdminMachineCreated AdminActionType = "machine_created"
	AdminMachineUpdated AdminActionType = "machine_updated"
	AdminManualUploaded AdminActionType = "manual_uploaded"
)

type AdminActionPayload struct {
	ActionType AdminActionType `json:"action_type"`
	TargetID   string          `json:"target_id"`
}

type EventContext struct {
	Device  string `json:"device"`
	Browser string `json:"browser"`
}

type AnalyticsEvent struct {
	ID        string       `json:"id"`
	EventName EventName    `json:"event_name"`
	Timestamp time.Time    `json:"timestamp"`
	UserID    string       `json:"user_id"`
	SessionID string       `json:"session_id"`
	Context   EventContext `json:"context"`
	Payload   any          `json:"payload"`
}

type QueryCount struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

type AnalyticsSummary struct {
	TotalEvents      int          `json:"total_events"`
	ManualOpens      int          `json:"manual_opens"`
	PageViews        int          `json:"page_views"`
	SearchQueries    int          `json:"search_queries"`
	ResultClicks     int          `json:"result_clicks"`
	SearchCTR        float64      `json:"search_ctr"`
	DistinctSessions int          `json:"distinct_sessions"`
	DistinctUsers    int          `json:"distinct_users"`
	TopQueries       []QueryCount `json:"top_queries"`
}

func (n EventName) Valid() bool {
	switch n {
	case EventPageView, EventSearchQuery, EventSearchResultClick, EventManualOpen, EventAdminAction:
		return true
	}
	return false
}
