package history

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Store persists the history list as a single JSON array in one file, the
// server-side equivalent of the browser's localStorage key.
type Store struct {
	Path string
}

func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Load reads the full list. A missing or malformed file degrades to an empty
// list; corruption is logged but never surfaced to the caller.
func (s *Store) Load() []Entry {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Str("path", s.Path).Msg("history read failed, starting empty")
		}
		return []Entry{}
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Warn().Err(err).Str("path", s.Path).Msg("history file malformed, starting empty")
		return []Entry{}
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries
}

// Save rewrites the full list. The write goes through a temp file + rename so
// a crash mid-write cannot leave a half-written list behind.
func (s *Store) Save(entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.Path)
}
