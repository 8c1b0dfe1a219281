package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Watermark key suffixes for interrupted pagination state.
const (
	resumeSuffix      = "_resume"
	resumePagesSuffix = "_resume_totalpages"
)

// LastSeen returns the highest identifier durably ingested for source,
// or 0 when the source has never been ingested.
func (s *Store) LastSeen(source string) (int64, error) {
	wm, err := s.readWatermarks()
	if err != nil {
		return 0, err
	}
	return wm[source], nil
}

// SetLastSeen advances the watermark for source. Re-writing the same value
// is safe; the ingestion engine relies on that after partial failures.
func (s *Store) SetLastSeen(source string, id int64) error {
	return s.updateWatermarks(func(wm map[string]int64) {
		wm[source] = id
	})
}

// Resume returns the pagination resume state recorded for source. A page
// of 0 means the last pass completed and the next one starts fresh.
func (s *Store) Resume(source string) (page, totalPages int, err error) {
	wm, err := s.readWatermarks()
	if err != nil {
		return 0, 0, err
	}
	return int(wm[source+resumeSuffix]), int(wm[source+resumePagesSuffix]), nil
}

// SetResume records that pagination for source failed at page, so the next
// run can pick up exactly there.
func (s *Store) SetResume(source string, page, totalPages int) error {
	return s.updateWatermarks(func(wm map[string]int64) {
		wm[source+resumeSuffix] = int64(page)
		wm[source+resumePagesSuffix] = int64(totalPages)
	})
}

// ClearResume marks source's pagination as fully completed.
func (s *Store) ClearResume(source string) error {
	return s.SetResume(source, 0, 0)
}

func (s *Store) readWatermarks() (map[string]int64, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, watermarkFile))
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]int64{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read watermark file: %w", err)
	}

	wm := map[string]int64{}
	if err := json.Unmarshal(data, &wm); err != nil {
		return nil, fmt.Errorf("decode watermark file: %w", err)
	}
	return wm, nil
}

func (s *Store) updateWatermarks(mutate func(map[string]int64)) error {
	wm, err := s.readWatermarks()
	if err != nil {
		return err
	}
	mutate(wm)

	data, err := json.MarshalIndent(wm, "", "  ")
	if err != nil {
		return fmt.Errorf("encode watermark file: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, watermarkFile), data, 0o644); err != nil {
		return fmt.Errorf("write watermark file: %w", err)
	}
	return nil
}
