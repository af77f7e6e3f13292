package middleware

import (
	"errors"

	"talent-match/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// AppError is a handler failure with the status and message clients see.
// Cause is only logged.
type AppError struct {
	StatusCode int
	Message    string
	Data       interface{}
	Cause      error
}

func (e *AppError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.Cause == nil:
		return e.Message
	default:
		return e.Message + ": " + e.Cause.Error()
	}
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, data interface{}, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Data: data, Cause: cause}
}

// ErrorMiddleware renders returned errors and recovered panics as envelopes.
type ErrorMiddleware struct {
	logger *zap.Logger
}

func NewErrorMiddleware(logger *zap.Logger) *ErrorMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorMiddleware{logger: logger}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Error("panic recovered",
					zap.String("rid", RequestID(c)),
					zap.String("path", c.Path()),
					zap.Any("panic", r),
					zap.Stack("stack"),
				)
				err = response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
			}
		}()

		if err = c.Next(); err == nil {
			return nil
		}

		status, msg, data := normalizeError(err)
		fields := []zap.Field{
			zap.String("rid", RequestID(c)),
			zap.Int("status", status),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		}
		if status >= fiber.StatusInternalServerError {
			m.logger.Error("request failed", fields...)
		} else {
			m.logger.Debug("request rejected", fields...)
		}
		return response.Error(c, status, msg, data)
	}
}

// normalizeError maps err to the status, message and data clients see.
// Anything that is not an AppError or a 4xx fiber error becomes a bare 500.
func normalizeError(err error) (int, string, interface{}) {
	var (
		appErr   *AppError
		fiberErr *fiber.Error
	)
	switch {
	case errors.As(err, &appErr) && appErr.StatusCode > 0:
		status := appErr.StatusCode
		msg := appErr.Message
		if msg == "" {
			msg = response.DefaultMessageForStatus(status)
		}
		if status >= fiber.StatusInternalServerError {
			return status, msg, nil
		}
		return status, msg, appErr.Data

	case errors.As(err, &fiberErr) && fiberErr.Code > 0 && fiberErr.Code < fiber.StatusInternalServerError:
		msg := fiberErr.Message
		if msg == "" {
			msg = response.DefaultMessageForStatus(fiberErr.Code)
		}
		return fiberErr.Code, msg, nil
	}

	return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
}
