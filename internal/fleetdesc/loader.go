package fleetdesc

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/psfleet/internal/ctxlog"
	"github.com/vk/psfleet/internal/descriptor"
)

// Loader parses fleet descriptor files.
type Loader struct{}

// NewLoader creates a new fleet descriptor loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadFile parses and translates the descriptor file at path.
func (l *Loader) LoadFile(ctx context.Context, path string) (*descriptor.PSParameter, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading fleet descriptor file.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse fleet descriptor %s: %w", path, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode fleet descriptor %s: %w", path, diags)
	}

	ps, err := l.translate(&root)
	if err != nil {
		return nil, fmt.Errorf("invalid fleet descriptor %s: %w", path, err)
	}

	logger.Debug("Fleet descriptor loaded.",
		"tables", len(ps.Server.Tables),
		"trainers", len(ps.Trainers),
	)
	return ps, nil
}

// Load parses descriptor source held in memory. The filename only labels
// diagnostics.
func (l *Loader) Load(ctx context.Context, filename string, src []byte) (*descriptor.PSParameter, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse fleet descriptor %s: %w", filename, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode fleet descriptor %s: %w", filename, diags)
	}

	ps, err := l.translate(&root)
	if err != nil {
		return nil, fmt.Errorf("invalid fleet descriptor %s: %w", filename, err)
	}
	return ps, nil
}
