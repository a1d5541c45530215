package deallist

import (
	"fluiq-workers/internal/common/auth"
	"fluiq-workers/internal/common/logger"
	"fluiq-workers/internal/ledger"
	"fluiq-workers/internal/models"
)

type Input struct {
	SessionToken string `json:"sessionToken"`
}

type Output struct {
	Deals []models.Deal    `json:"deals"`
	Stats models.DealStats `json:"stats"`
}

type ServiceDependencies struct {
	Gate     auth.Authenticator
	Registry *ledger.Registry
	Logger   logger.Logger
}
