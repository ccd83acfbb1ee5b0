package ports

import (
	"context"

	"github.com/AlsoShantanuBorkar/flutter/internal/core/domain"
)

// Telemetry accepts analytics events. Sends are fire-and-forget.
//
//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks
type Telemetry interface {
	// SendBuildEvent records a build-info event.
	SendBuildEvent(ctx context.Context, event domain.BuildEvent)
	// SendTiming records a timing event.
	SendTiming(ctx context.Context, event domain.TimingEvent)
}
