package catalog

import (
	"context"
	_ "embed"
	"sync"

	"github.com/ppiankov/etchant/internal/model"
)

//go:embed catalog.yaml
var embeddedYAML []byte

var (
	embeddedOnce sync.Once
	embeddedDoc  *Document
	embeddedErr  error
)

func loadEmbedded() (*Document, error) {
	embeddedOnce.Do(func() {
		embeddedDoc, embeddedErr = ParseDocument(embeddedYAML)
	})
	return embeddedDoc, embeddedErr
}

// EmbeddedSource serves the sample catalog compiled into the binary
type EmbeddedSource struct{}

// Name implements Source
func (EmbeddedSource) Name() string { return model.SourceEmbedded }

// Materials implements Source
func (EmbeddedSource) Materials(ctx context.Context) ([]model.Material, error) {
	doc, err := loadEmbedded()
	if err != nil {
		return nil, err
	}
	return append([]model.Material(nil), doc.Materials...), nil
}

// Etchants implements Source
func (EmbeddedSource) Etchants(ctx context.Context) ([]model.Etchant, error) {
	doc, err := loadEmbedded()
	if err != nil {
		return nil, err
	}
	return append([]model.Etchant(nil), doc.Etchants...), nil
}
