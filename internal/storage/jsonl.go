package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"perpscope/internal/model"
)

// JsonlStorage appends decoded account records to a JSONL file.
type JsonlStorage struct {
	path string
	mu   sync.Mutex
}

func NewJsonlStorage(path string) *JsonlStorage {
	return &JsonlStorage{path: path}
}

// PutAccountBatch appends a batch of decoded accounts as JSON lines.
func (s *JsonlStorage) PutAccountBatch(records []model.AccountRecord) error {
	lines := make([]interface{}, 0, len(records))
	for _, record := range records {
		lines = append(lines, record)
	}
	return s.appendLines(lines)
}

// PutFailureBatch appends a batch of decode failures as JSON lines.
func (s *JsonlStorage) PutFailureBatch(failures []model.DecodeFailure) error {
	lines := make([]interface{}, 0, len(failures))
	for _, failure := range failures {
		lines = append(lines, failure)
	}
	return s.appendLines(lines)
}

func (s *JsonlStorage) appendLines(values []interface{}) error {
	if len(values) == 0 {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, value := range values {
		line, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("marshal record: %w", err)
		}
		if _, err := writer.Write(line); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("write newline: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	return nil
}
