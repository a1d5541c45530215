// Package notify announces final deal outcomes on an SNS topic.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fluiq-workers/internal/common/aws"
	"fluiq-workers/internal/common/logger"
	"fluiq-workers/internal/models"
)

// DealOutcome is the message body published for a closed deal.
type DealOutcome struct {
	UserID     string            `json:"userId"`
	DealID     string            `json:"dealId"`
	BrandName  string            `json:"brandName"`
	Status     models.DealStatus `json:"status"`
	Previous   models.DealStatus `json:"previousStatus"`
	OccurredAt time.Time         `json:"occurredAt"`
}

// Notifier is called after every successful deal update.
type Notifier interface {
	DealUpdated(ctx context.Context, userID string, before, after models.Deal)
}

// ShouldNotify reports whether an update moved a deal into accepted or rejected.
func ShouldNotify(before, after models.Deal) bool {
	return after.Status.Closed() && before.Status != after.Status
}

// SNSNotifier publishes outcomes. Failures are logged and never reach the caller.
type SNSNotifier struct {
	client   aws.SNSAPI
	topicARN string
	logger   logger.Logger
	now      func() time.Time
}

func NewSNSNotifier(client aws.SNSAPI, topicARN string, log logger.Logger) *SNSNotifier {
	return &SNSNotifier{client: client, topicARN: topicARN, logger: log, now: time.Now}
}

func (n *SNSNotifier) DealUpdated(ctx context.Context, userID string, before, after models.Deal) {
	if !ShouldNotify(before, after) {
		return
	}

	outcome := DealOutcome{
		UserID:     userID,
		DealID:     after.ID,
		BrandName:  after.BrandName,
		Status:     after.Status,
		Previous:   before.Status,
		OccurredAt: n.now().UTC(),
	}
	body, err := json.Marshal(outcome)
	if err != nil {
		n.logger.Error("Failed to encode deal outcome", map[string]interface{}{"dealId": after.ID, "error": err.Error()})
		return
	}

	subject := fmt.Sprintf("Deal %s: %s", after.Status, after.BrandName)
	input := aws.TopicMessage(n.topicARN, subject, string(body), map[string]string{
		"status": string(after.Status),
		"userId": userID,
	})
	if _, err := n.client.Publish(ctx, input); err != nil {
		n.logger.Warn("Deal outcome notification failed", map[string]interface{}{
			"dealId": after.ID,
			"status": string(after.Status),
			"error":  err.Error(),
		})
		return
	}

	n.logger.Info("Deal outcome published", map[string]interface{}{
		"dealId": after.ID,
		"status": string(after.Status),
	})
}

// Discard drops every notification. Used when SNS is disabled.
type Discard struct{}

func (Discard) DealUpdated(context.Context, string, models.Deal, models.Deal) {}
