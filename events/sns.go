package events

import (
	"context"
	"encoding/json"
	"fmt"

	awspkg "storefront/pkg/aws"
)

// SNSPublisher publishes order events to an SNS topic with an event_type
// message attribute for subscription filtering.
type SNSPublisher struct {
	client   awspkg.SNSPublisher
	topicArn string
}

func NewSNSPublisher(client awspkg.SNSPublisher, topicArn string) *SNSPublisher {
	return &SNSPublisher{client: client, topicArn: topicArn}
}

func (p *SNSPublisher) Publish(ctx context.Context, event OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", event.Type, err)
	}
	return p.client.Publish(ctx, p.topicArn, payload, map[string]string{"event_type": event.Type})
}
