package models

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultDir is where transcripts go when no directory is configured.
const DefaultDir = ".transcripts"

// Save writes the transcript to <dir>/<id>.yaml and returns the path.
func (t *Transcript) Save(dir string) (string, error) {
	if t.ID == "" {
		return "", errors.New("transcript has no ID")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating transcript dir: %w", err)
	}
	data, err := yaml.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("encoding transcript %s: %w", t.ID, err)
	}
	path := filepath.Join(dir, t.ID+".yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing transcript: %w", err)
	}
	return path, nil
}

// ListTranscripts reads every transcript in dir, newest first. A missing
// directory holds no transcripts.
func ListTranscripts(dir string) ([]*Transcript, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []*Transcript{}, nil
	}
	if err != nil {
		return nil, err
	}

	var out []*Transcript
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		var t Transcript
		if err := yaml.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("parsing transcript %s: %w", entry.Name(), err)
		}
		out = append(out, &t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EndedAt.After(out[j].EndedAt) })
	return out, nil
}
