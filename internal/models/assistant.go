package models

type ProcedureStep struct {
	Step        int    `json:"step"`
	Description string `json:"description"`
}

type TorqueSpec struct {
	Part string `json:"part"`
	Spec string `json:"spec"`
}

// ProcedureDetails — структурированная выжимка процедуры, которую возвращает AI.
type ProcedureDetails struct {
	Title       string          `json:"title"`
	Tools       []string        `json:"tools"`
	Parts       []string        `json:"parts"`
	Warnings    []string        `json:"warnings"`
	Steps       []ProcedureStep `json:"steps"`
	TorqueSpecs []TorqueSpec    `json:"torqueSpecs"`
}

type ChatSender string

const (
	SenderUser ChatSender = "user"
	SenderAI   ChatSender = "ai"
)

type ChatMessage struct {
	Sender ChatSender `json:"sender"`
	Text   string     `json:"text"`
}

// ReplySegment — кусок ответа ассистента: либо HTML-текст, либо ссылка на страницу.
type ReplySegment struct {
	HTML   string `json:"html,omitempty"`
	Label  string `json:"label,omitempty"`
	PageID string `json:"pageId,omitempty"`
}

func (s ReplySegment) IsLink() bool { return s.PageID != "" }

type AssistantReply struct {
	Text     string         `json:"text"`
	Segments []ReplySegment `json:"segments"`
	Error    string         `json:"error,omitempty"`
}
