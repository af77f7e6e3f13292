package response

import (
	"mime"

	"github.com/gofiber/fiber/v3"
)

// SemanticResponse is the JSON envelope of every API reply.
type SemanticResponse struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

const (
	MessageOK                  = "ok"
	MessageBadRequest          = "bad request"
	MessageNotFound            = "not found"
	MessageUnprocessableEntity = "unprocessable entity"
	MessageInternalServerError = "internal server error"
	MessageBadGateway          = "upstream provider error"
	MessageServiceUnavailable  = "service unavailable"
	MessageGatewayTimeout      = "request timed out"
	MessageError               = "error"
)

var defaultMessages = map[int]string{
	fiber.StatusOK:                  MessageOK,
	fiber.StatusBadRequest:          MessageBadRequest,
	fiber.StatusNotFound:            MessageNotFound,
	fiber.StatusUnprocessableEntity: MessageUnprocessableEntity,
	fiber.StatusInternalServerError: MessageInternalServerError,
	fiber.StatusBadGateway:          MessageBadGateway,
	fiber.StatusServiceUnavailable:  MessageServiceUnavailable,
	fiber.StatusGatewayTimeout:      MessageGatewayTimeout,
}

func Success(c fiber.Ctx, status int, message string, data interface{}) error {
	return envelope(c, status, message, data)
}

func Error(c fiber.Ctx, status int, message string, data interface{}) error {
	return envelope(c, status, message, data)
}

// envelope writes the reply; out-of-range statuses become 500 and an empty
// message takes the status default.
func envelope(c fiber.Ctx, status int, message string, data interface{}) error {
	if status < 100 || status > 599 {
		status = fiber.StatusInternalServerError
	}
	if message == "" {
		message = DefaultMessageForStatus(status)
	}
	return c.Status(status).JSON(SemanticResponse{Status: status, Message: message, Data: data})
}

// Attachment sends body as a file download named filename.
func Attachment(c fiber.Ctx, contentType, filename string, body []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	return c.Status(fiber.StatusOK).Send(body)
}

func DefaultMessageForStatus(status int) string {
	if msg, ok := defaultMessages[status]; ok {
		return msg
	}
	if status >= fiber.StatusInternalServerError {
		return MessageInternalServerError
	}
	return MessageError
}
