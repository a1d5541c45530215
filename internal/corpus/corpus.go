// Package corpus loads the static caption, event and template collections.
// Every document is checked against its JSON schema before it is decoded.
package corpus

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"fluiq-workers/internal/common/config"
	"fluiq-workers/internal/common/errors"
	"fluiq-workers/internal/common/validation"
	"fluiq-workers/internal/models"
)

//go:embed data/*.json schemas/*.json
var files embed.FS

// Corpus names, also used as the embedded file stem.
const (
	Captions  = "captions"
	Events    = "events"
	Templates = "templates"
)

// Names lists every corpus in load order.
var Names = []string{Captions, Events, Templates}

// Corpus is the immutable content bundle shared by all workers.
type Corpus struct {
	Captions  []models.CaptionTemplate
	Events    []models.Event
	Templates []models.Template
}

// Load reads all three corpora. An empty path in cfg selects the embedded copy.
func Load(cfg config.CorpusConfig) (*Corpus, error) {
	captions, err := LoadCaptions(cfg.CaptionsPath)
	if err != nil {
		return nil, err
	}
	events, err := LoadEvents(cfg.EventsPath)
	if err != nil {
		return nil, err
	}
	templates, err := LoadTemplates(cfg.TemplatesPath)
	if err != nil {
		return nil, err
	}
	return &Corpus{Captions: captions, Events: events, Templates: templates}, nil
}

func LoadCaptions(path string) ([]models.CaptionTemplate, error) {
	return load(Captions, path, func(c models.CaptionTemplate) int { return c.ID })
}

func LoadEvents(path string) ([]models.Event, error) {
	return load(Events, path, func(e models.Event) int { return e.ID })
}

// LoadTemplates also fills each template's display category label.
func LoadTemplates(path string) ([]models.Template, error) {
	templates, err := load(Templates, path, func(t models.Template) int { return t.ID })
	if err != nil {
		return nil, err
	}
	for i := range templates {
		templates[i].CategoryLabel = templates[i].Category.Label()
	}
	return templates, nil
}

// Read returns the raw document for name, from path when set.
func Read(name, path string) ([]byte, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s corpus from %s: %w", name, path, err)
		}
		return data, nil
	}
	data, err := files.ReadFile("data/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("unknown corpus %q: %w", name, err)
	}
	return data, nil
}

// Schema returns the embedded JSON schema for name.
func Schema(name string) ([]byte, error) {
	data, err := files.ReadFile("schemas/" + name + ".schema.json")
	if err != nil {
		return nil, fmt.Errorf("unknown corpus %q: %w", name, err)
	}
	return data, nil
}

// Validate checks a raw document against the schema for name.
func Validate(name string, document []byte) error {
	schema, err := Schema(name)
	if err != nil {
		return err
	}
	result, err := validation.ValidateDocument(document, schema)
	if err != nil {
		return errors.NewCorpusInvalidError(name, err.Error())
	}
	if !result.Valid {
		return errors.NewCorpusInvalidError(name, strings.Join(result.GetErrorMessages(), "; ")).
			WithMetadata("validationErrors", result.Errors)
	}
	return nil
}

func load[T any](name, path string, id func(T) int) ([]T, error) {
	data, err := Read(name, path)
	if err != nil {
		return nil, err
	}
	if err := Validate(name, data); err != nil {
		return nil, err
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.NewCorpusInvalidError(name, err.Error())
	}

	seen := make(map[int]struct{}, len(records))
	for _, r := range records {
		key := id(r)
		if _, dup := seen[key]; dup {
			return nil, errors.NewCorpusInvalidError(name, fmt.Sprintf("duplicate id %d", key))
		}
		seen[key] = struct{}{}
	}
	return records, nil
}
