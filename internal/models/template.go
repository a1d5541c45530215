package models

// TemplateCategory groups downloadable templates.
type TemplateCategory string

const (
	CategoryMediaKit TemplateCategory = "media-kit"
	CategoryContrat  TemplateCategory = "contrat"
	CategoryFacture  TemplateCategory = "facture"
	CategoryEmail    TemplateCategory = "email"
	CategoryPlanning TemplateCategory = "planning"
)

var templateCategoryLabels = map[TemplateCategory]string{
	CategoryMediaKit: "Media Kit",
	CategoryContrat:  "Contrat",
	CategoryFacture:  "Facture",
	CategoryEmail:    "Email",
	CategoryPlanning: "Planning",
}

// Label returns the display label, or the raw category when unknown.
func (c TemplateCategory) Label() string {
	if label, ok := templateCategoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Template is a downloadable static resource.
type Template struct {
	ID            int              `json:"id"`
	Name          string           `json:"name"`
	Category      TemplateCategory `json:"category"`
	CategoryLabel string           `json:"categoryLabel,omitempty"`
	Description   string           `json:"description"`
	Image         string           `json:"image"`
	DownloadURL   string           `json:"downloadUrl"`
}
