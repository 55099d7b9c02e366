package message

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileStore reads and writes the commit message file git hands to the hook
type FileStore struct {
	Path string
}

// NewFileStore creates a FileStore for path
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Read loads the message, keeping every line terminator
func (s *FileStore) Read() (Message, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return Message{}, fmt.Errorf("failed to read commit message: %w", err)
	}
	return Parse(data), nil
}

// Write replaces the file with msg. The new content goes to a temp file in the
// same directory first and is renamed over the original, keeping its mode.
func (s *FileStore) Write(msg Message) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(s.Path); err == nil {
		mode = info.Mode().Perm()
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(s.Path), ".commit-msg-*")
	if err != nil {
		return fmt.Errorf("failed to write commit message: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(msg.Bytes()); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write commit message: %w", err)
	}
	tmpFile.Close()

	if err := os.Chmod(tmpPath, mode); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write commit message: %w", err)
	}

	if err := os.Rename(tmpPath, s.Path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write commit message: %w", err)
	}
	return nil
}

// MemoryStore holds a message in memory. Writes replace Message and are counted.
type MemoryStore struct {
	Message Message
	Writes  int
}

// Read returns the held message
func (s *MemoryStore) Read() (Message, error) {
	return s.Message, nil
}

// Write replaces the held message
func (s *MemoryStore) Write(msg Message) error {
	s.Message = msg
	s.Writes++
	return nil
}
