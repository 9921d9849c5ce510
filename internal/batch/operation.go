package batch

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fulmenhq/datavault/pkg/logger"
	"github.com/fulmenhq/datavault/pkg/mode"
)

// ImportArea is the part of a storage root's configuration a batch copy needs.
type ImportArea struct {
	Root          string
	FileMode      string
	DirectoryMode string
	Exclude       []string
}

// CopyRequest names the batch to copy and where it should go.
type CopyRequest struct {
	Source string
	Target string
}

// Result describes a finished (or, with DryRun, planned) batch copy.
type Result struct {
	Source        string    `json:"source" yaml:"source"`
	Destination   string    `json:"destination" yaml:"destination"`
	FileMode      string    `json:"fileMode" yaml:"fileMode"`
	DirectoryMode string    `json:"directoryMode" yaml:"directoryMode"`
	DryRun        bool      `json:"dryRun,omitempty" yaml:"dryRun,omitempty"`
	Stats         CopyStats `json:"stats" yaml:"stats"`
}

// Operation copies batches into one import area.
type Operation struct {
	area       ImportArea
	copier     *Copier
	normalizer *Normalizer
	dryRun     bool
}

// Option configures an Operation.
type Option func(*Operation)

// WithDryRun makes Run stop after resolving the destination.
func WithDryRun(dryRun bool) Option {
	return func(o *Operation) {
		o.dryRun = dryRun
	}
}

// NewOperation prepares a batch copy into area on fs.
func NewOperation(fs FS, area ImportArea, opts ...Option) (*Operation, error) {
	copier, err := NewCopier(fs, area.Exclude)
	if err != nil {
		return nil, err
	}
	op := &Operation{
		area:       area,
		copier:     copier,
		normalizer: NewNormalizer(fs),
	}
	for _, opt := range opts {
		opt(op)
	}
	return op, nil
}

// Run validates the modes, resolves the destination, copies the batch and
// normalizes permissions, stopping at the first error. ctx is consulted
// between steps only; a step that has started always runs to completion.
func (o *Operation) Run(ctx context.Context, req CopyRequest) (*Result, error) {
	logger.Debug("Copying batch",
		logger.String("source", req.Source),
		logger.String("target", req.Target),
		logger.Bool("dryRun", o.dryRun))

	filePerm, err := mode.Parse(o.area.FileMode)
	if err != nil {
		return nil, fmt.Errorf("file mode: %w", err)
	}
	dirPerm, err := mode.Parse(o.area.DirectoryMode)
	if err != nil {
		return nil, fmt.Errorf("directory mode: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dest, err := Resolve(req.Source, req.Target, o.area.Root)
	if err != nil {
		return nil, err
	}
	source, err := filepath.Abs(req.Source)
	if err != nil {
		return nil, ioErr("resolve", req.Source, err)
	}

	result := &Result{
		Source:        source,
		Destination:   dest,
		FileMode:      filePerm.Octal(),
		DirectoryMode: dirPerm.Octal(),
		DryRun:        o.dryRun,
	}
	if o.dryRun {
		logger.Info("Would copy batch", logger.String("source", source), logger.String("destination", dest))
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stats, err := o.copier.Copy(source, dest)
	if err != nil {
		return nil, err
	}
	result.Stats = stats

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger.Debug("Setting permissions", logger.String("destination", dest))
	if err := o.normalizer.Normalize(dest, filePerm, dirPerm); err != nil {
		return nil, err
	}

	return result, nil
}
