package logger

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

var ErrNoLogs = errors.New("logs: нет файлов за этот день")

var reDay = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidDay проверяет формат YYYY-MM-DD.
func ValidDay(day string) bool { return reDay.MatchString(day) }

// Query — выборка записей за один день. Пустые поля не фильтруют.
type Query struct {
	Day       string
	Levels    []string
	RequestID string
	SessionID string
	Text      string
	Cursor    int
	Limit     int
}

type Page struct {
	Day        string            `json:"day"`
	Items      []json.RawMessage `json:"items"`
	NextCursor int               `json:"nextCursor"`
}

// Reader читает JSON-логи из каталога: текущий app.log и сжатые
// резервные копии lumberjack (app-<время>.log[.gz]).
type Reader struct {
	dir string
	now func() time.Time
}

func NewReader(dir string) *Reader {
	return &Reader{dir: dir, now: time.Now}
}

// Days — дни за последние retention суток, по которым есть файлы.
func (r *Reader) Days(retention int) []string {
	today := r.now()
	days := make([]string, 0, retention)
	for i := 0; i < retention; i++ {
		d := today.AddDate(0, 0, -i).Format(time.DateOnly)
		if files, err := r.files(d); err == nil && len(files) > 0 {
			days = append(days, d)
		}
	}
	sort.Strings(days)
	return days
}

// Read возвращает до q.Limit подходящих строк начиная со строки q.Cursor.
// Строки не в JSON (консольный формат) пропускаются.
func (r *Reader) Read(q Query) (Page, error) {
	levels := make(map[string]bool, len(q.Levels))
	for _, l := range q.Levels {
		if l = strings.ToUpper(strings.TrimSpace(l)); l != "" {
			levels[l] = true
		}
	}
	text := strings.ToLower(strings.TrimSpace(q.Text))

	page := Page{Day: q.Day, Items: make([]json.RawMessage, 0)}
	line := 0
	err := r.each(q.Day, func(raw []byte) bool {
		line++
		if line <= q.Cursor {
			return true
		}
		if text != "" && !strings.Contains(strings.ToLower(string(raw)), text) {
			return true
		}
		var rec map[string]any
		if json.Unmarshal(raw, &rec) != nil {
			return true
		}
		if len(levels) > 0 && !levels[strings.ToUpper(field(rec, "level"))] {
			return true
		}
		if q.RequestID != "" && field(rec, "request_id") != q.RequestID {
			return true
		}
		if q.SessionID != "" && field(rec, "session_id") != q.SessionID {
			return true
		}
		page.Items = append(page.Items, append(json.RawMessage(nil), raw...))
		return q.Limit <= 0 || len(page.Items) < q.Limit
	})
	page.NextCursor = line
	return page, err
}

// Stats — число записей по часам и уровням за день.
func (r *Reader) Stats(day string) (map[int]map[string]int, error) {
	stats := make(map[int]map[string]int, 24)
	for h := 0; h < 24; h++ {
		stats[h] = map[string]int{}
	}
	err := r.each(day, func(raw []byte) bool {
		var rec map[string]any
		if json.Unmarshal(raw, &rec) != nil {
			return true
		}
		lvl := strings.ToUpper(field(rec, "level"))
		t, ok := parseTime(field(rec, "time"))
		if lvl == "" || !ok {
			return true
		}
		stats[t.Hour()][lvl]++
		return true
	})
	return stats, err
}

func (r *Reader) files(day string) ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, err
	}
	today := r.now().Format(time.DateOnly)
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		switch {
		case name == "app.log":
			if day == today {
				files = append(files, filepath.Join(r.dir, name))
			}
		case strings.HasPrefix(name, "app-") && strings.Contains(name, day) &&
			(strings.HasSuffix(name, ".log") || strings.HasSuffix(name, ".log.gz")):
			files = append(files, filepath.Join(r.dir, name))
		}
	}
	// резервные копии раньше текущего файла
	sort.Slice(files, func(i, j int) bool {
		bi, bj := filepath.Base(files[i]) == "app.log", filepath.Base(files[j]) == "app.log"
		if bi != bj {
			return bj
		}
		return files[i] < files[j]
	})
	return files, nil
}

func (r *Reader) each(day string, fn func([]byte) bool) error {
	files, err := r.files(day)
	if err != nil || len(files) == 0 {
		return ErrNoLogs
	}
	for _, path := range files {
		if !scanFile(path, fn) {
			break
		}
	}
	return nil
}

// scanFile возвращает false, если fn попросил остановиться.
func scanFile(path string, fn func([]byte) bool) bool {
	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()

	var src io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			Log.Warn("logs: битый архив", zap.String("path", path), zap.Error(err))
			return true
		}
		defer gz.Close()
		src = gz
	}

	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if !fn(sc.Bytes()) {
			return false
		}
	}
	return true
}

func field(rec map[string]any, key string) string {
	s, _ := rec[key].(string)
	return s
}

var timeLayouts = []string{"2006-01-02T15:04:05.000Z0700", time.RFC3339Nano}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
