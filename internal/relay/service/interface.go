// Package service implements the relay's per-record stages: activity code
// resolution, record transformation, message rendering, and bus delivery.
package service

import (
	"context"

	"github.com/cityops/esb-relay/internal/relay/domain"
)

// Transformer builds the outbound message payload from a raw record.
type Transformer interface {
	Transform(record *domain.RawRecord) (*domain.OutboundMessage, error)
}

// Renderer fills the message template with an outbound message's values.
type Renderer interface {
	Render(message *domain.OutboundMessage) (string, error)
}

// Deliverer posts a rendered XML message to the bus.
type Deliverer interface {
	Deliver(ctx context.Context, payload string) error
}
