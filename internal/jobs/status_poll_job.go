package jobs

import (
	"context"
	"time"

	"github.com/gatewatch/console-api/internal/domain"
	"github.com/gatewatch/console-api/internal/service"
	"github.com/gatewatch/console-api/internal/unifi"
	"go.uber.org/zap"
)

// RegisterStatusPollJob schedules a job that probes every registered gateway
// and records the result on its status field: online on a successful probe,
// error on an HTTP failure, offline when the device cannot be reached.
//
// Status is the only field the poll touches; the registry's own CRUD
// semantics are unaffected.
func RegisterStatusPollJob(
	scheduler *Scheduler,
	registry *service.GatewayRegistry,
	prober *unifi.Client,
	logger *zap.Logger,
	cronExpr string,
	timeout time.Duration,
) error {
	return scheduler.AddJob("gateway-status-poll", cronExpr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		pollGatewayStatuses(ctx, registry, prober, logger)
	})
}

// pollGatewayStatuses runs one poll cycle over the registry.
func pollGatewayStatuses(ctx context.Context, registry *service.GatewayRegistry, prober *unifi.Client, logger *zap.Logger) {
	for _, gw := range registry.List() {
		result := prober.ProbeSites(ctx, gw.APIBaseURL, gw.APIKey)

		status := domain.GatewayStatusOffline
		switch {
		case result.Success:
			status = domain.GatewayStatusOnline
		case result.StatusCode != 0:
			status = domain.GatewayStatusError
		}

		if gw.Status == status {
			continue
		}

		st := status
		if _, err := registry.Update(ctx, gw.ID, &domain.UpdateGatewayRequest{Status: &st}); err != nil {
			logger.Warn("failed to record gateway status",
				zap.String("gateway_id", gw.ID.String()),
				zap.Error(err),
			)
			continue
		}

		logger.Info("gateway status changed",
			zap.String("gateway_id", gw.ID.String()),
			zap.String("name", gw.Name),
			zap.String("status", string(status)),
		)
	}
}
