package seed

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/bornholm/producthub/internal/core/model"
	"github.com/bornholm/producthub/internal/core/port"
	"github.com/bornholm/producthub/internal/workflow"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var data embed.FS

const defaultFixtures = "data/fixtures.yaml"

// Fixtures are the records loaded into empty stores at start up.
type Fixtures struct {
	Feedback     []*model.Feedback    `json:"feedback"`
	Features     []*model.Feature     `json:"features"`
	Roadmaps     []*model.Roadmap     `json:"roadmaps"`
	RoadmapItems []*model.RoadmapItem `json:"roadmapItems"`
	Integrations []*model.Integration `json:"integrations"`
	Frameworks   []*model.Framework   `json:"frameworks"`
	MindMaps     []*model.MindMap     `json:"mindMaps"`
	Ideas        []*model.Idea        `json:"ideas"`
}

// Parse decodes YAML fixtures. Documents are converted to JSON before being
// decoded so records share their wire format with the API.
func Parse(r io.Reader) (*Fixtures, error) {
	var raw any

	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return &Fixtures{}, nil
		}

		return nil, errors.Wrap(err, "could not decode yaml fixtures")
	}

	buff, err := json.Marshal(raw)
	if err != nil {
		return nil, errors.Wrap(err, "could not convert fixtures to json")
	}

	var fixtures Fixtures

	jsonDecoder := json.NewDecoder(bytes.NewReader(buff))
	jsonDecoder.DisallowUnknownFields()

	if err := jsonDecoder.Decode(&fixtures); err != nil {
		return nil, errors.Wrap(err, "could not decode fixtures")
	}

	return &fixtures, nil
}

// Default returns the embedded fixtures.
func Default() (*Fixtures, error) {
	file, err := data.Open(defaultFixtures)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	defer file.Close()

	fixtures, err := Parse(file)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return fixtures, nil
}

// Load reads the fixtures file at path, or the embedded fixtures if path is
// empty.
func Load(path string) (*Fixtures, error) {
	if path == "" {
		return Default()
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open fixtures file '%s'", path)
	}

	defer file.Close()

	fixtures, err := Parse(file)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse fixtures file '%s'", path)
	}

	return fixtures, nil
}

// Import loads records into store if it is empty. It reports whether
// records were written to the store, which remains true when the write
// fails midway.
func Import[T model.Record[T]](ctx context.Context, store port.CollectionStore[T], records []T) (bool, error) {
	empty, err := isEmpty(ctx, store)
	if err != nil {
		return false, errors.WithStack(err)
	}

	if !empty {
		return false, nil
	}

	prepared, err := prepare(records)
	if err != nil {
		return false, errors.WithStack(err)
	}

	if err := store.ImportRecords(ctx, prepared...); err != nil {
		return true, errors.WithStack(err)
	}

	return true, nil
}

func isEmpty[T model.Record[T]](ctx context.Context, store port.CollectionStore[T]) (bool, error) {
	existing, err := store.ListRecords(ctx)
	if err != nil {
		return false, errors.WithStack(err)
	}

	return len(existing) == 0, nil
}

func prepare[T model.Record[T]](records []T) ([]T, error) {
	prepared := make([]T, 0, len(records))
	for _, r := range records {
		r = r.Clone()
		r.ApplyDefaults()

		if err := r.Validate(); err != nil {
			return nil, errors.Wrapf(err, "invalid fixture '%d'", r.GetID())
		}

		if r.GetUpdatedAt().IsZero() || r.GetUpdatedAt().Before(r.GetCreatedAt()) {
			r.SetUpdatedAt(r.GetCreatedAt())
		}

		prepared = append(prepared, r)
	}

	return prepared, nil
}

// importStep imports records into an empty store. Its compensation removes
// the fixtures from the store, unless the store was not empty.
func importStep[T model.Record[T]](name string, store port.CollectionStore[T], records []T) workflow.Step {
	skipped := true

	execute := func(ctx context.Context) error {
		imported, err := Import(ctx, store, records)
		skipped = !imported

		if err != nil {
			return errors.WithStack(err)
		}

		if !imported {
			return nil
		}

		slog.DebugContext(ctx, "fixtures imported", slog.String("collection", name), slog.Int("total", len(records)))

		return nil
	}

	compensate := func(ctx context.Context) error {
		if skipped {
			return nil
		}

		for _, r := range records {
			if _, err := store.DeleteRecord(ctx, r.GetID()); err != nil && !errors.Is(err, port.ErrNotFound) {
				return errors.Wrapf(err, "could not remove fixture '%d'", r.GetID())
			}
		}

		return nil
	}

	return workflow.StepFunc(name, execute, compensate)
}

// Stores are the collection stores fixtures are imported into.
type Stores struct {
	Feedback     port.CollectionStore[*model.Feedback]
	Features     port.CollectionStore[*model.Feature]
	Roadmaps     port.CollectionStore[*model.Roadmap]
	RoadmapItems port.CollectionStore[*model.RoadmapItem]
	Integrations port.CollectionStore[*model.Integration]
	Frameworks   port.CollectionStore[*model.Framework]
	MindMaps     port.CollectionStore[*model.MindMap]
	Ideas        port.CollectionStore[*model.Idea]
}

// Apply imports every fixture into its store. Either every empty store is
// seeded or none is.
func Apply(ctx context.Context, fixtures *Fixtures, stores *Stores) error {
	wf := workflow.New(
		importStep("feedback", stores.Feedback, fixtures.Feedback),
		importStep("features", stores.Features, fixtures.Features),
		importStep("roadmaps", stores.Roadmaps, fixtures.Roadmaps),
		importStep("roadmapItems", stores.RoadmapItems, fixtures.RoadmapItems),
		importStep("integrations", stores.Integrations, fixtures.Integrations),
		importStep("frameworks", stores.Frameworks, fixtures.Frameworks),
		importStep("mindMaps", stores.MindMaps, fixtures.MindMaps),
		importStep("ideas", stores.Ideas, fixtures.Ideas),
	)

	if err := wf.Execute(ctx); err != nil {
		return errors.Wrap(err, "could not import fixtures")
	}

	return nil
}
