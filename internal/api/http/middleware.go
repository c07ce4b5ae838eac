package http

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/thewhitewolf2411/TaskManager/internal/observability"
	apperrors "github.com/thewhitewolf2411/TaskManager/pkg/util"
)

// RegisterMiddlewares attaches the global middleware chain: request timeout,
// request logging and the terminal error boundary. The logger sits outside
// the boundary so it samples the status after failures have been rendered.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) {
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(observability.RequestLogger(logger, metrics))
	app.Use(errorHandlingMiddleware(logger, metrics))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorHandlingMiddleware is the single terminal boundary. Every typed
// failure raised below it is rendered here exactly once; nothing downstream
// recovers locally.
func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					zap.String("request_id", observability.RequestIDFromContext(c)),
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()),
				)
				err = apperrors.NewServerFault(nil)
			}
			if err == nil {
				return
			}

			appErr := apperrors.ToError(err)
			if metrics != nil {
				metrics.RecordError(c.Path(), c.Method(), appErr.Kind.Code())
			}
			if appErr.Kind == apperrors.KindServerFault {
				logger.Error("request failed",
					zap.String("request_id", observability.RequestIDFromContext(c)),
					zap.Error(appErr),
				)
			}

			// A response that has already started must never be written
			// twice; the failure goes to the log only.
			if len(c.Response().Body()) > 0 {
				logger.Warn("response already started, not rendering error",
					zap.String("request_id", observability.RequestIDFromContext(c)),
					zap.Error(appErr),
				)
				err = nil
				return
			}

			response := fiber.Map{"error": fiber.Map{
				"code":    appErr.Kind.Code(),
				"message": appErr.Message,
			}}
			if len(appErr.Meta) > 0 {
				response["error"].(fiber.Map)["details"] = appErr.Meta
			}

			c.Status(appErr.Kind.HTTPStatus())
			_ = c.JSON(response)
			err = nil
		}()
		return c.Next()
	}
}
