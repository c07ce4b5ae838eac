package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/thewhitewolf2411/TaskManager/internal/events"
	"github.com/thewhitewolf2411/TaskManager/internal/repository"
)

// StartAuditWorker subscribes the login-audit handler. Each successful login
// lands one row in the login log; audit failures are logged and swallowed so
// they never affect the request that triggered them.
func StartAuditWorker(dispatcher events.Dispatcher, logins repository.LoginLogRepository, logger *zap.Logger) {
	if dispatcher == nil || logins == nil {
		return
	}

	dispatcher.Subscribe(events.EventUserLoggedIn, func(ctx context.Context, event events.Event) error {
		payload, ok := event.Payload.(events.UserLoggedInPayload)
		if !ok {
			return nil
		}
		if err := logins.Insert(ctx, payload.UserID, payload.TimeZone); err != nil {
			logger.Warn("failed to record login audit entry",
				zap.String("user_id", payload.UserID),
				zap.Error(err),
			)
		}
		return nil
	})
}
