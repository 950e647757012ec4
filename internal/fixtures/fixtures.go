// Package fixtures загружает стартовые данные: каталог техники, руководства,
// страницы и демо-данные админки. По умолчанию используется встроенный seed.yaml.
package fixtures

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"

	"manualdesk/internal/models"
	"manualdesk/internal/search"
	"manualdesk/internal/toc"
)

//go:embed seed.yaml
var seedYAML []byte

type Dataset struct {
	Models   []models.Model                `yaml:"models"`
	Manuals  []models.Manual               `yaml:"manuals"`
	Pages    map[string]models.PageContent `yaml:"pages"`
	Users    []models.User                 `yaml:"users"`
	Plans    []models.SubscriptionPlan     `yaml:"plans"`
	Invoices []models.Invoice              `yaml:"invoices"`
	AuditLog []models.AuditLogEntry        `yaml:"auditLog"`
	Branding models.BrandingConfig         `yaml:"branding"`
}

// Seed — встроенный набор данных.
func Seed() (*Dataset, error) {
	return Parse(seedYAML)
}

// Load читает набор данных из файла; пустой путь означает встроенный seed.
func Load(path string) (*Dataset, error) {
	if path == "" {
		return Seed()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixtures: чтение %s: %w", path, err)
	}
	return Parse(data)
}

// Parse разбирает YAML, нормализует типы страниц, санитизирует HTML страниц
// и проверяет ссылочную целостность каталога.
func Parse(data []byte) (*Dataset, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var ds Dataset
	if err := dec.Decode(&ds); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("fixtures: разбор yaml: %w", err)
	}
	if ds.Pages == nil {
		ds.Pages = make(map[string]models.PageContent)
	}

	policy := PagePolicy()
	for id, p := range ds.Pages {
		kind, err := models.ParsePageKind(string(p.Kind))
		if err != nil {
			return nil, fmt.Errorf("fixtures: страница %s: %w", id, err)
		}
		p.Kind = kind
		p.HTML = policy.Sanitize(p.HTML)
		ds.Pages[id] = p
	}

	if err := ds.validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

func (ds *Dataset) validate() error {
	modelIDs := make(map[string]struct{}, len(ds.Models))
	for _, m := range ds.Models {
		if m.ID == "" {
			return fmt.Errorf("fixtures: машина без id (%q)", m.Name)
		}
		if _, dup := modelIDs[m.ID]; dup {
			return fmt.Errorf("fixtures: повторный id машины %s", m.ID)
		}
		modelIDs[m.ID] = struct{}{}
	}

	manualIDs := make(map[string]struct{}, len(ds.Manuals))
	for _, m := range ds.Manuals {
		if _, dup := manualIDs[m.ID]; dup || m.ID == "" {
			return fmt.Errorf("fixtures: пустой или повторный id руководства %q", m.ID)
		}
		manualIDs[m.ID] = struct{}{}
		if !m.Type.Valid() {
			return fmt.Errorf("fixtures: руководство %s: неизвестный тип %q", m.ID, m.Type)
		}
		if !m.Visibility.Valid() {
			return fmt.Errorf("fixtures: руководство %s: неизвестная видимость %q", m.ID, m.Visibility)
		}
		for _, id := range m.MappedMachineIDs {
			if _, ok := modelIDs[id]; !ok {
				return fmt.Errorf("fixtures: руководство %s привязано к неизвестной машине %s", m.ID, id)
			}
		}
		nodeIDs := make(map[string]struct{})
		var dupNode string
		toc.Walk(m.TOC, func(n *models.TocNode, _ int) bool {
			if _, dup := nodeIDs[n.ID]; dup {
				dupNode = n.ID
				return false
			}
			nodeIDs[n.ID] = struct{}{}
			return true
		})
		if dupNode != "" {
			return fmt.Errorf("fixtures: руководство %s: повторный id узла оглавления %s", m.ID, dupNode)
		}
	}

	for _, u := range ds.Users {
		if !u.Role.Valid() || !u.Status.Valid() {
			return fmt.Errorf("fixtures: пользователь %s: некорректная роль или статус", u.ID)
		}
	}
	return nil
}

// DanglingPages — страницы, на которые ссылается оглавление, но которых нет
// в наборе. Для них просмотрщик покажет заглушку.
func (ds *Dataset) DanglingPages() []string {
	store := search.PageMap(ds.Pages)
	var missing []string
	for _, m := range ds.Manuals {
		for _, ref := range toc.PageTitles(m.TOC) {
			if _, ok := store.Page(ref.PageID); !ok {
				missing = append(missing, ref.PageID)
			}
		}
	}
	return missing
}

// PagePolicy — политика санитизации HTML страниц руководств: UGC плюс классы
// оформления и атрибут внутренних ссылок.
func PagePolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	p.AllowAttrs(search.LinkAttr).OnElements("a", "button", "span")
	p.AllowElements("img")
	p.AllowAttrs("src", "alt").OnElements("img")
	return p
}
