package resolve

import (
	"context"
	"fmt"

	"github.com/fwojciec/cratedoc"
)

var (
	_ Stage = (*RegistryStage)(nil)
	_ Stage = TemplateStage{}
)

// RegistryStage renders the crate's crates.io metadata.
type RegistryStage struct {
	Registry cratedoc.Registry
}

// Name implements Stage.
func (s *RegistryStage) Name() string { return "registry" }

// Run implements Stage.
func (s *RegistryStage) Run(ctx context.Context, ref cratedoc.Reference) (string, error) {
	crate, err := s.Registry.FindCrate(ctx, ref.Name)
	if err != nil {
		return "", fmt.Errorf("find crate: %w", err)
	}
	return cratedoc.FormatRegistryDocument(ref, crate), nil
}

// TemplateStage renders the minimal document with documentation and
// registry links. It never fails.
type TemplateStage struct{}

// Name implements Stage.
func (TemplateStage) Name() string { return "template" }

// Run implements Stage.
func (TemplateStage) Run(ctx context.Context, ref cratedoc.Reference) (string, error) {
	return cratedoc.FormatMinimalDocument(ref), nil
}
