package infrastructure

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"slices"

	"github.com/rs/zerolog"

	"botdash/internal/repository"
)

//go:embed seed/*.json
var seedFS embed.FS

// DecodeDataset reads one tenant fixture. Unknown fields and malformed
// timestamps are errors.
func DecodeDataset(r io.Reader) (repository.Dataset, error) {
	var d repository.Dataset
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return repository.Dataset{}, err
	}
	return d, nil
}

// LoadDatasets reads every *.json fixture in dir, in name order. An empty dir
// selects the fixtures bundled with the binary.
func LoadDatasets(dir string) ([]repository.Dataset, error) {
	var (
		fsys fs.FS = seedFS
		root       = "seed"
	)
	if dir != "" {
		fsys, root = os.DirFS(dir), "."
	}
	names, err := fs.Glob(fsys, path.Join(root, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("unable to list fixtures: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no *.json fixtures in %q", dir)
	}
	slices.Sort(names)

	datasets := make([]repository.Dataset, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("unable to read %s: %w", name, err)
		}
		d, err := DecodeDataset(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("unable to decode %s: %w", name, err)
		}
		datasets = append(datasets, d)
	}
	return datasets, nil
}

// NewDatasetStore loads the fixtures and validates them into a MemoryStore.
func NewDatasetStore(dir string, log zerolog.Logger) (*repository.MemoryStore, error) {
	datasets, err := LoadDatasets(dir)
	if err != nil {
		return nil, err
	}
	store, err := repository.NewMemoryStore(datasets...)
	if err != nil {
		return nil, fmt.Errorf("dataset validation failed: %w", err)
	}
	for _, d := range datasets {
		log.Info().
			Str("tenant", d.Tenant.Slug).
			Str("kind", string(d.Tenant.Kind)).
			Int("conversations", len(d.Conversations)).
			Int("orders", len(d.Orders)).
			Int("viewings", len(d.Viewings)).
			Msg("tenant dataset loaded")
	}
	return store, nil
}
