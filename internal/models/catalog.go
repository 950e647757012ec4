package models

import "fmt"

// PageKind — тип содержимого страницы. Набор закрыт: новые значения
// добавляются только вместе с обработкой в navigation.RenderHintsFor.
type PageKind string

const (
	PageKindContent         PageKind = "content"
	PageKindProcedure       PageKind = "procedure"
	PageKindTroubleshooting PageKind = "troubleshooting"
	PageKindDiagram         PageKind = "diagram"
)

func ParsePageKind(s string) (PageKind, error) {
	switch k := PageKind(s); k {
	case PageKindContent, PageKindProcedure, PageKindTroubleshooting, PageKindDiagram:
		return k, nil
	case "":
		return PageKindContent, nil
	}
	return "", fmt.Errorf("unknown page kind %q", s)
}

type ManualType string

const (
	ManualTypeService  ManualType = "Service"
	ManualTypeOperator ManualType = "Operator"
	ManualTypeParts    ManualType = "Parts"
	ManualTypeWiring   ManualType = "Wiring"
	ManualTypeOther    ManualType = "Other"
)

func (t ManualType) Valid() bool {
	switch t {
	case ManualTypeService, ManualTypeOperator, ManualTypeParts, ManualTypeWiring, ManualTypeOther:
		return true
	}
	return false
}

type Visibility string

const (
	VisibilityPublic     Visibility = "Public"
	VisibilityRestricted Visibility = "Restricted"
	VisibilityAdminOnly  Visibility = "Admin-only"
)

func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityRestricted, VisibilityAdminOnly:
		return true
	}
	return false
}

type PageContent struct {
	Title string   `json:"title" yaml:"title"`
	HTML  string   `json:"html"  yaml:"html"`
	Kind  PageKind `json:"type"  yaml:"type"`
}

// TocNode — узел оглавления. PageID может повторяться в разных узлах
// и может ссылаться на отсутствующую страницу.
type TocNode struct {
	ID       string    `json:"id"                 yaml:"id"`
	Title    string    `json:"title"              yaml:"title"`
	PageID   string    `json:"pageId"             yaml:"pageId"`
	Children []TocNode `json:"children,omitempty" yaml:"children,omitempty"`
}

type Manual struct {
	ID               string     `json:"id"               yaml:"id"`
	Title            string     `json:"title"            yaml:"title"`
	Type             ManualType `json:"type"             yaml:"type"`
	Version          string     `json:"version"          yaml:"version"`
	PublishedDate    string     `json:"publishedDate"    yaml:"publishedDate"`
	Language         string     `json:"language"         yaml:"language"`
	Visibility       Visibility `json:"visibility"       yaml:"visibility"`
	MappedMachineIDs []string   `json:"mappedMachineIds" yaml:"mappedMachineIds"`
	TOC              []TocNode  `json:"toc"              yaml:"toc"`
}

func (m Manual) MappedTo(machineID string) bool {
	for _, id := range m.MappedMachineIDs {
		if id == machineID {
			return true
		}
	}
	return false
}

// Model — единица техники (машина).
type Model struct {
	ID           string   `json:"id"                    yaml:"id"`
	Name         string   `json:"name"                  yaml:"name"`
	ModelCode    string   `json:"modelCode"             yaml:"modelCode"`
	Manufacturer string   `json:"manufacturer"          yaml:"manufacturer"`
	Year         string   `json:"year"                  yaml:"year"`
	Category     string   `json:"category"              yaml:"category"`
	Tags         []string `json:"tags,omitempty"        yaml:"tags,omitempty"`
	Description  string   `json:"description,omitempty" yaml:"description,omitempty"`
	Image        string   `json:"image,omitempty"       yaml:"image,omitempty"`
}

// ModelWithManuals — проекция машины вместе с привязанными руководствами.
// Никогда не хранится, строится на каждый запрос.
type ModelWithManuals struct {
	Model
	Manuals []Manual `json:"manuals"`
}

// CreateModelRequest
// swagger:model CreateModelRequest
type CreateModelRequest struct {
	ID           string   `json:"id,omitempty"`
	Name         string   `json:"name"         example:"Excavator 5000X"`
	ModelCode    string   `json:"modelCode"    example:"EX5000-2023-A"`
	Manufacturer string   `json:"manufacturer" example:"Heavy Industries Inc."`
	Year         string   `json:"year"         example:"2023"`
	Category     string   `json:"category"     example:"Heavy Equipment"`
	Tags         []string `json:"tags"`
	Description  string   `json:"description"`
	Image        string   `json:"image"`
}

// CreateManualRequest
// swagger:model CreateManualRequest
type CreateManualRequest struct {
	Title            string     `json:"title"            example:"Operator Manual"`
	Type             ManualType `json:"type"             example:"Operator"`
	Version          string     `json:"version"          example:"1.0"`
	PublishedDate    string     `json:"publishedDate"    example:"2023-01-20"`
	Language         string     `json:"language"         example:"English"`
	Visibility       Visibility `json:"visibility"       example:"Public"`
	MappedMachineIDs []string   `json:"mappedMachineIds"`
}
