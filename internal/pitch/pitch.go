// Package pitch turns a creator's pitch data into a one-page deck and hands
// it to an Exporter.
package pitch

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"text/template"

	"fluiq-workers/internal/common/errors"
	"fluiq-workers/internal/models"
)

const Footer = "Cree avec Fluiq - fluiq.app"

// Stat is one figure of the stats band.
type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Section is a titled block of text lines.
type Section struct {
	Title string   `json:"title"`
	Lines []string `json:"lines"`
}

// Document is the layout-free content of a pitch deck.
type Document struct {
	FileName  string    `json:"fileName"`
	Recipient string    `json:"-"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	Stats     []Stat    `json:"stats"`
	Sections  []Section `json:"sections"`
	Footer    string    `json:"footer"`
}

// Validate enforces the fields a deck cannot be built without.
func Validate(data models.PitchData) error {
	var missing []string
	if strings.TrimSpace(data.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(data.Niche) == "" {
		missing = append(missing, "niche")
	}
	if strings.TrimSpace(data.Handle) == "" {
		missing = append(missing, "handle")
	}
	if len(missing) > 0 {
		return errors.NewValidationError("missing required fields: " + strings.Join(missing, ", ")).
			WithMetadata("missingFields", missing)
	}
	if data.Followers < 0 {
		return errors.NewValidationError("followers must not be negative")
	}
	return nil
}

// Build lays out the deck content. It does not validate data.
func Build(data models.PitchData) Document {
	handle := strings.TrimPrefix(strings.TrimSpace(data.Handle), "@")

	return Document{
		FileName:  FileName(data.Name),
		Recipient: data.Email,
		Title:     data.Name,
		Subtitle:  fmt.Sprintf("@%s • %s", handle, data.Niche),
		Stats: []Stat{
			{Label: "ABONNES", Value: FormatFollowers(data.Followers)},
			{Label: "ENGAGEMENT", Value: FormatEngagement(data.Engagement)},
			{Label: "LOCALISATION", Value: data.Location},
		},
		Sections: []Section{
			{Title: "A propos", Lines: bioLines(data.Bio)},
			{Title: "Plateformes", Lines: []string{strings.Join(data.Platforms, " • ")}},
			{Title: "Contact", Lines: []string{data.Email}},
		},
		Footer: Footer,
	}
}

var whitespace = regexp.MustCompile(`\s+`)

// FileName derives the download name from the creator's name.
func FileName(name string) string {
	return "pitch-deck-" + whitespace.ReplaceAllString(strings.ToLower(name), "-") + ".pdf"
}

// FormatFollowers abbreviates counts to one decimal with K or M.
func FormatFollowers(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return strconv.Itoa(n)
	}
}

func FormatEngagement(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64) + "%"
}

func bioLines(bio string) []string {
	var lines []string
	for _, l := range strings.Split(strings.TrimSpace(bio), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

var textLayout = template.Must(template.New("pitch").Parse(`{{.Title}}
{{.Subtitle}}
{{range .Stats}}
{{.Label}}: {{.Value}}{{end}}
{{range .Sections}}
{{.Title}}
{{range .Lines}}{{.}}
{{end}}{{end}}
{{.Footer}}
`))

// Text renders the document as plain text.
func (d Document) Text() (string, error) {
	var buf bytes.Buffer
	if err := textLayout.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("render %s: %w", d.FileName, err)
	}
	return buf.String(), nil
}
