package catalog

import (
	"context"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/etchant/internal/model"
)

// Document is the YAML layout of a catalog file
type Document struct {
	Materials []model.Material `yaml:"materials"`
	Etchants  []model.Etchant  `yaml:"etchants"`
}

// ParseDocument decodes a YAML catalog
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return &doc, nil
}

// FileSource reads the catalog from a YAML file. The file is read once.
type FileSource struct {
	path string

	once sync.Once
	doc  *Document
	err  error
}

// NewFileSource creates a source backed by a YAML file
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name implements Source
func (s *FileSource) Name() string { return model.SourceFile }

func (s *FileSource) load() (*Document, error) {
	s.once.Do(func() {
		data, err := os.ReadFile(s.path)
		if err != nil {
			s.err = fmt.Errorf("read catalog file: %w", err)
			return
		}
		s.doc, s.err = ParseDocument(data)
	})
	return s.doc, s.err
}

// Materials implements Source
func (s *FileSource) Materials(ctx context.Context) ([]model.Material, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc.Materials, nil
}

// Etchants implements Source
func (s *FileSource) Etchants(ctx context.Context) ([]model.Etchant, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc.Etchants, nil
}
