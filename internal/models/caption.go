package models

// Tone is the voice a caption is written in.
type Tone string

const (
	ToneFun           Tone = "fun"
	ToneProfessional  Tone = "professional"
	ToneInspirational Tone = "inspirational"
	ToneSales         Tone = "sales"
)

var Tones = []Tone{ToneFun, ToneProfessional, ToneInspirational, ToneSales}

func (t Tone) Valid() bool {
	for _, v := range Tones {
		if t == v {
			return true
		}
	}
	return false
}

// WildcardCity marks a caption template usable for any city.
const WildcardCity = "all"

// CaptionTemplate is one read-only record of the caption corpus.
type CaptionTemplate struct {
	ID       int      `json:"id"`
	Niche    string   `json:"niche"`
	City     string   `json:"city"`
	Tone     Tone     `json:"tone"`
	Template string   `json:"template"`
	Hashtags []string `json:"hashtags"`
}

// MatchLevel records which step of the fallback chain produced the candidates.
type MatchLevel string

const (
	MatchExact     MatchLevel = "exact"
	MatchNicheCity MatchLevel = "niche_city"
	MatchNiche     MatchLevel = "niche"
	MatchAny       MatchLevel = "any"
)

// CaptionResult is a filled-in caption ready for display.
type CaptionResult struct {
	TemplateID int        `json:"templateId"`
	Niche      string     `json:"niche"`
	City       string     `json:"city"`
	Tone       Tone       `json:"tone"`
	Text       string     `json:"text"`
	Hashtags   []string   `json:"hashtags"`
	MatchLevel MatchLevel `json:"matchLevel"`
}
