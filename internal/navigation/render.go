package navigation

import (
	"fmt"

	"manualdesk/internal/models"
)

// RenderHints — как клиенту показывать страницу данного типа.
type RenderHints struct {
	Kind models.PageKind `json:"kind"`
	// Layout — имя шаблона отображения на клиенте.
	Layout string `json:"layout"`
	// Procedure — доступно извлечение чек-листа процедуры через AI.
	Procedure bool `json:"procedure"`
	// Troubleshooting — открывать панель ассистента по умолчанию.
	Troubleshooting bool `json:"troubleshooting"`
	Zoomable        bool `json:"zoomable"`
}

// RenderHintsFor сопоставляет каждому типу страницы подсказки отображения.
// Неизвестный тип здесь является ошибкой программиста: ParsePageKind не пропускает такие значения.
func RenderHintsFor(kind models.PageKind) RenderHints {
	switch kind {
	case models.PageKindContent:
		return RenderHints{Kind: kind, Layout: "article"}
	case models.PageKindProcedure:
		return RenderHints{Kind: kind, Layout: "procedure", Procedure: true}
	case models.PageKindTroubleshooting:
		return RenderHints{Kind: kind, Layout: "troubleshooting", Troubleshooting: true}
	case models.PageKindDiagram:
		return RenderHints{Kind: kind, Layout: "diagram", Zoomable: true}
	}
	panic(fmt.Sprintf("navigation: неизвестный тип страницы %q", kind))
}
