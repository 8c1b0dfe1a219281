package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/rickgao/metawin-stats/internal/model"
)

const watermarkFile = "latest_id.json"

// dayFormat is the date-bucket layout used in history blob names.
const dayFormat = "2006-01-02"

// Store persists fetched pages and the ingestion watermark under one
// directory. A single process owns the directory at a time; no locking.
type Store struct {
	dir    string
	logger *slog.Logger
}

// New opens (creating if needed) a store rooted at dir.
func New(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// SavePage writes one fetched page as a new blob. Empty pages
// (totalCount == 0) are not worth a file and are skipped. bucket scopes the
// blob name to one ingestion pass: watermark sources pass their high-water
// id, history passes the YYYY-MM-DD day.
func (s *Store) SavePage(source string, page int, bucket string, p *model.Page) error {
	if p == nil || p.TotalCount == 0 {
		return nil
	}

	name := fmt.Sprintf("%s_%d.json", source, page)
	if bucket != "" {
		name = fmt.Sprintf("%s_%s_%d.json", source, bucket, page)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode page: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("write blob %s: %w", name, err)
	}

	s.logger.Debug("page stored", "blob", name, "items", len(p.Items))
	return nil
}

// Blobs groups every stored page by aggregation phase. Primary pages
// (wagering activity, mini-game results) fold before secondary pages
// (rewards, claims, notifications) so reward months extend the months the
// play activity established.
type Blobs struct {
	Primary   []model.Page
	Secondary []model.Page
}

// ReadAll loads every blob in the store. Sources listed in secondaryKeys
// land in Secondary; everything else is Primary. Blob names sort
// lexicographically within each phase so reads are deterministic.
func (s *Store) ReadAll(secondaryKeys []string) (*Blobs, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read store dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == watermarkFile || !strings.HasSuffix(name, ".json") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	blobs := &Blobs{}
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			return nil, fmt.Errorf("read blob %s: %w", name, err)
		}
		var page model.Page
		if err := json.Unmarshal(data, &page); err != nil {
			return nil, fmt.Errorf("decode blob %s: %w", name, err)
		}

		if isSecondary(name, secondaryKeys) {
			blobs.Secondary = append(blobs.Secondary, page)
		} else {
			blobs.Primary = append(blobs.Primary, page)
		}
	}

	return blobs, nil
}

func isSecondary(name string, secondaryKeys []string) bool {
	for _, key := range secondaryKeys {
		if strings.HasPrefix(name, key+"_") {
			return true
		}
	}
	return false
}

// DropLatestHistoryDay deletes every page blob stored for the most recent
// date bucket of source and returns that day. The history downloader
// re-fetches the dropped day in full, so a run interrupted mid-day cannot
// leave a partial day behind. ok is false when no history exists yet.
func (s *Store) DropLatestHistoryDay(source string) (day time.Time, ok bool, err error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("read store dir: %w", err)
	}

	re := regexp.MustCompile(`^` + regexp.QuoteMeta(source) + `_(\d{4}-\d{2}-\d{2})_\d+\.json$`)

	latest := ""
	for _, e := range entries {
		m := re.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		if m[1] > latest {
			latest = m[1]
		}
	}
	if latest == "" {
		return time.Time{}, false, nil
	}

	prefix := fmt.Sprintf("%s_%s_", source, latest)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), prefix) {
			if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
				return time.Time{}, false, fmt.Errorf("remove blob %s: %w", e.Name(), err)
			}
		}
	}

	day, err = time.ParseInLocation(dayFormat, latest, time.UTC)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse history day %q: %w", latest, err)
	}

	s.logger.Info("dropped latest history day for re-fetch", "source", source, "day", latest)
	return day, true, nil
}
