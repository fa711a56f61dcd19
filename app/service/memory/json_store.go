package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

var _ Store = (*JSONStore)(nil)

// JSONStore keeps each document in its own JSON file.
type JSONStore struct {
	userPath   string
	customPath string
}

func NewJSONStore(dir, userFile, customFile string) (*JSONStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	return &JSONStore{
		userPath:   filepath.Join(dir, userFile),
		customPath: filepath.Join(dir, customFile),
	}, nil
}

func (s *JSONStore) LoadIdentity() (string, error) {
	var doc identityDocument

	ok, err := readJSON(s.userPath, &doc)
	if err != nil || !ok {
		return "", err
	}

	return doc.Name, nil
}

func (s *JSONStore) SaveIdentity(name string) error {
	return writeJSON(s.userPath, identityDocument{Name: name})
}

func (s *JSONStore) DeleteIdentity() error {
	if err := os.Remove(s.userPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove identity file: %w", err)
	}

	return nil
}

func (s *JSONStore) LoadResponses() (*Responses, error) {
	responses := NewResponses()

	if _, err := readJSON(s.customPath, responses); err != nil {
		return nil, err
	}

	return responses, nil
}

func (s *JSONStore) SaveResponses(responses *Responses) error {
	return writeJSON(s.customPath, responses)
}

func (s *JSONStore) Close() error {
	return nil
}

func readJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err = json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return true, nil
}

// writeJSON replaces path atomically: the document goes to a temp file in the
// same directory which is then renamed over the target.
func writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}
