package pitch

import (
	"context"
	"fmt"

	"fluiq-workers/internal/common/aws"
	"fluiq-workers/internal/common/errors"
)

// Exporter delivers a finished document. A failed export leaves no state behind.
type Exporter interface {
	Export(ctx context.Context, doc Document) error
}

// SESExporter mails the rendered deck to the creator.
type SESExporter struct {
	client aws.SESAPI
	from   string
}

func NewSESExporter(client aws.SESAPI, from string) *SESExporter {
	return &SESExporter{client: client, from: from}
}

func (e *SESExporter) Export(ctx context.Context, doc Document) error {
	if doc.Recipient == "" {
		return errors.NewValidationError("email is required to deliver the pitch deck")
	}

	body, err := doc.Text()
	if err != nil {
		return errors.NewExportFailedError(doc.FileName, err)
	}

	subject := fmt.Sprintf("Ton pitch deck - %s", doc.Title)
	if _, err := e.client.SendEmail(ctx, aws.TextEmail(e.from, doc.Recipient, subject, body)); err != nil {
		return errors.NewExportFailedError(doc.FileName, err)
	}
	return nil
}
