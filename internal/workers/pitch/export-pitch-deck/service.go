package exportpitchdeck

import (
	"context"

	"fluiq-workers/internal/common/auth"
	"fluiq-workers/internal/common/logger"
	"fluiq-workers/internal/pitch"
)

type ServiceInterface interface {
	Execute(ctx context.Context, input *Input) (*Output, error)
}

type Service struct {
	config   *Config
	logger   logger.Logger
	gate     auth.Authenticator
	exporter pitch.Exporter
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config:   config,
		logger:   deps.Logger,
		gate:     deps.Gate,
		exporter: deps.Exporter,
	}
}

func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	ctx, id, err := s.gate.Require(ctx, input.SessionToken)
	if err != nil {
		return nil, err
	}

	if err := pitch.Validate(input.Pitch); err != nil {
		return nil, err
	}

	doc := pitch.Build(input.Pitch)
	if doc.Recipient == "" {
		doc.Recipient = id.Email
	}

	output := &Output{FileName: doc.FileName, Document: doc}
	if s.exporter == nil {
		s.logger.Info("No exporter configured, returning document only", map[string]interface{}{
			"userId":   id.UserID,
			"fileName": doc.FileName,
		})
		return output, nil
	}

	if err := s.exporter.Export(ctx, doc); err != nil {
		return nil, err
	}
	output.Delivered = true
	return output, nil
}
