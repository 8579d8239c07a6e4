package artifact_manager

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dtnitsch/lexicon-scraper/models"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseDir = "lxs-results"
	WordsDir       = "words"

	RawHTMLFile    = "raw.html"
	ParsedYAMLFile = "parsed.yaml"
)

// GetWordDir returns the directory for one word id.
// Example: lxs-results/words/42/
func GetWordDir(baseDir string, wordID int64) string {
	if baseDir == "" {
		baseDir = DefaultBaseDir
	}
	return filepath.Join(baseDir, WordsDir, strconv.FormatInt(wordID, 10))
}

// GetWordArtifactPath returns the full path of one artifact of a word.
// Example: lxs-results/words/42/raw.html
func GetWordArtifactPath(baseDir string, wordID int64, artifact string) string {
	return filepath.Join(GetWordDir(baseDir, wordID), artifact)
}

// Manager stores fetched pages and their parses per word, so repeated runs
// do not hit the network for pages that are still fresh.
type Manager struct {
	baseDir string
	maxAge  time.Duration // non-positive means artifacts never go stale
}

func NewManager(baseDir string, maxAge time.Duration) (*Manager, error) {
	if baseDir == "" {
		baseDir = DefaultBaseDir
	}
	if err := os.MkdirAll(filepath.Join(baseDir, WordsDir), 0750); err != nil {
		return nil, fmt.Errorf("failed to create artifact directory: %w", err)
	}
	return &Manager{baseDir: baseDir, maxAge: maxAge}, nil
}

func (m *Manager) BaseDir() string {
	return m.baseDir
}

func (m *Manager) MaxAge() time.Duration {
	return m.maxAge
}

// EnsureWordDir creates lxs-results/words/{id}/ if needed.
func (m *Manager) EnsureWordDir(wordID int64) error {
	if err := os.MkdirAll(GetWordDir(m.baseDir, wordID), 0750); err != nil {
		return fmt.Errorf("failed to create word directory: %w", err)
	}
	return nil
}

// GetRawHTML returns the stored page of a word. The bool is false when the
// page is missing or older than the max age.
func (m *Manager) GetRawHTML(wordID int64) ([]byte, bool, error) {
	return m.readFresh(GetWordArtifactPath(m.baseDir, wordID, RawHTMLFile))
}

// SetRawHTML stores the page of a word and returns the written path.
func (m *Manager) SetRawHTML(wordID int64, data []byte) (string, error) {
	return m.write(wordID, RawHTMLFile, data)
}

// GetParsed returns the stored parse of a word if it is fresh.
func (m *Manager) GetParsed(wordID int64) (*models.LexiconPage, bool, error) {
	data, fresh, err := m.readFresh(GetWordArtifactPath(m.baseDir, wordID, ParsedYAMLFile))
	if err != nil || !fresh {
		return nil, false, err
	}

	var page models.LexiconPage
	if err := yaml.Unmarshal(data, &page); err != nil {
		return nil, false, fmt.Errorf("failed to decode parsed artifact: %w", err)
	}
	return &page, true, nil
}

// SetParsed stores the parse of a word as YAML and returns the written path.
func (m *Manager) SetParsed(wordID int64, page *models.LexiconPage) (string, error) {
	data, err := yaml.Marshal(page)
	if err != nil {
		return "", fmt.Errorf("failed to encode parsed artifact: %w", err)
	}
	return m.write(wordID, ParsedYAMLFile, data)
}

func (m *Manager) readFresh(path string) ([]byte, bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("error statting artifact: %w", err)
	}
	if m.maxAge > 0 && time.Since(info.ModTime()) > m.maxAge {
		return nil, false, nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, false, fmt.Errorf("error reading artifact: %w", err)
	}
	return data, true, nil
}

func (m *Manager) write(wordID int64, name string, data []byte) (string, error) {
	if err := m.EnsureWordDir(wordID); err != nil {
		return "", err
	}
	path := GetWordArtifactPath(m.baseDir, wordID, name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	return path, nil
}
