package generatecaption

import (
	"fluiq-workers/internal/captions"
	"fluiq-workers/internal/common/auth"
	"fluiq-workers/internal/common/logger"
	"fluiq-workers/internal/models"
)

type Input struct {
	SessionToken string      `json:"sessionToken"`
	Niche        string      `json:"niche"`
	City         string      `json:"city"`
	Tone         models.Tone `json:"tone"`
}

type Output struct {
	Caption models.CaptionResult `json:"caption"`
}

type ServiceDependencies struct {
	Gate   auth.Authenticator
	Engine *captions.Engine
	Logger logger.Logger
}
