// Package catalog loads the material and etchant records the recommender
// works against, from a Supabase (PostgREST) backend, a YAML file or the
// sample catalog compiled into the binary.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ppiankov/etchant/internal/model"
)

// ErrNotFound is returned when a material or etchant lookup has no match
var ErrNotFound = errors.New("not found")

// Source provides catalog records
type Source interface {
	Name() string
	Materials(ctx context.Context) ([]model.Material, error)
	Etchants(ctx context.Context) ([]model.Etchant, error)
}

// Load fetches materials and etchants concurrently and waits for both.
// Unpublished records are dropped.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	var (
		materials []model.Material
		etchants  []model.Etchant
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := src.Materials(gctx)
		if err != nil {
			return fmt.Errorf("load materials: %w", err)
		}
		materials = m
		return nil
	})
	g.Go(func() error {
		e, err := src.Etchants(gctx)
		if err != nil {
			return fmt.Errorf("load etchants: %w", err)
		}
		etchants = e
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s catalog: %w", src.Name(), err)
	}

	return New(src.Name(), materials, etchants), nil
}
