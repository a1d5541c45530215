package exportpitchdeck

import (
	"fluiq-workers/internal/common/auth"
	"fluiq-workers/internal/common/logger"
	"fluiq-workers/internal/models"
	"fluiq-workers/internal/pitch"
)

type Input struct {
	SessionToken string           `json:"sessionToken"`
	Pitch        models.PitchData `json:"pitch"`
}

// Output.Delivered is false when no exporter is configured; the document is
// still returned so the process can render it elsewhere.
type Output struct {
	FileName  string         `json:"fileName"`
	Delivered bool           `json:"delivered"`
	Document  pitch.Document `json:"document"`
}

type ServiceDependencies struct {
	Gate     auth.Authenticator
	Exporter pitch.Exporter
	Logger   logger.Logger
}
