// Package captions picks a caption template for a creator's niche, city and
// tone and fills in its placeholders.
package captions

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"fluiq-workers/internal/models"
)

// ErrEmptyCorpus is returned by NewEngine when there is nothing to select from.
var ErrEmptyCorpus = errors.New("captions: corpus is empty")

const (
	cityPlaceholder  = "{city}"
	emojiPlaceholder = "{emoji}"
)

var cityDisplayNames = map[string]string{
	"abidjan":     "Abidjan",
	"dakar":       "Dakar",
	"ouagadougou": "Ouagadougou",
	"lome":        "Lome",
}

// Emojis is the palette {emoji} is drawn from.
var Emojis = []string{"✨", "💫", "🔥", "💪", "🙌", "❤️", "🌟", "👏", "💯", "🎯"}

// Rand is the entropy source used for both the template and the emoji draw.
type Rand interface {
	Intn(n int) int
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand replaces the default time-seeded source.
func WithRand(r Rand) Option {
	return func(e *Engine) {
		e.rng = r
	}
}

// Engine selects captions from an immutable corpus. It is safe for
// concurrent use as long as the injected Rand is.
type Engine struct {
	corpus []models.CaptionTemplate
	rng    Rand
}

// NewEngine copies corpus into a new Engine. It returns ErrEmptyCorpus when
// there is nothing to pick from. Without WithRand the engine draws from a
// time-seeded source.
func NewEngine(corpus []models.CaptionTemplate, opts ...Option) (*Engine, error) {
	if len(corpus) == 0 {
		return nil, ErrEmptyCorpus
	}
	e := &Engine{
		corpus: append([]models.CaptionTemplate(nil), corpus...),
		rng:    &lockedRand{r: rand.New(rand.NewSource(time.Now().UnixNano()))},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Size returns the number of templates in the corpus.
func (e *Engine) Size() int {
	return len(e.corpus)
}

// Candidates runs the fallback chain and returns the first non-empty set
// together with the level that produced it.
func (e *Engine) Candidates(niche, city string, tone models.Tone) ([]models.CaptionTemplate, models.MatchLevel) {
	cityMatches := func(c models.CaptionTemplate) bool {
		return c.City == city || c.City == models.WildcardCity
	}

	levels := []struct {
		level models.MatchLevel
		keep  func(models.CaptionTemplate) bool
	}{
		{models.MatchExact, func(c models.CaptionTemplate) bool {
			return c.Niche == niche && cityMatches(c) && c.Tone == tone
		}},
		{models.MatchNicheCity, func(c models.CaptionTemplate) bool {
			return c.Niche == niche && cityMatches(c)
		}},
		{models.MatchNiche, func(c models.CaptionTemplate) bool {
			return c.Niche == niche
		}},
	}

	for _, l := range levels {
		if found := filter(e.corpus, l.keep); len(found) > 0 {
			return found, l.level
		}
	}
	return e.corpus, models.MatchAny
}

// Select picks one candidate uniformly at random and fills its placeholders.
// Repeated calls with the same arguments may return different captions.
func (e *Engine) Select(niche, city string, tone models.Tone) models.CaptionResult {
	candidates, level := e.Candidates(niche, city, tone)
	chosen := candidates[e.rng.Intn(len(candidates))]
	emoji := Emojis[e.rng.Intn(len(Emojis))]

	return models.CaptionResult{
		TemplateID: chosen.ID,
		Niche:      chosen.Niche,
		City:       chosen.City,
		Tone:       chosen.Tone,
		Text:       Fill(chosen.Template, DisplayCity(city), emoji),
		Hashtags:   append([]string(nil), chosen.Hashtags...),
		MatchLevel: level,
	}
}

// DisplayCity returns the human-readable name for a city tag, or the tag itself.
func DisplayCity(tag string) string {
	if name, ok := cityDisplayNames[tag]; ok {
		return name
	}
	return tag
}

// Fill replaces only the first {city} and the first {emoji}.
func Fill(template, city, emoji string) string {
	out := strings.Replace(template, cityPlaceholder, city, 1)
	return strings.Replace(out, emojiPlaceholder, emoji, 1)
}

func filter(corpus []models.CaptionTemplate, keep func(models.CaptionTemplate) bool) []models.CaptionTemplate {
	var out []models.CaptionTemplate
	for _, c := range corpus {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}
