// internal/common/errors/handler.go
package errors

// ErrorHandler turns handler failures into a logged StandardError plus the
// status and public body message that go back to the client.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// HandleRequestError logs err and returns the response status and message.
func (h *ErrorHandler) HandleRequestError(route, requestID string, err error) (int, string) {
	stdErr := Normalize(err)
	status := HTTPStatus(stdErr.Code)

	if status >= 500 {
		h.logError(route, requestID, stdErr)
	}
	return status, PublicMessage(stdErr.Code)
}

func (h *ErrorHandler) logError(route, requestID string, stdErr *StandardError) {
	h.logger.Error("Request failed", map[string]interface{}{
		"route":         route,
		"requestId":     requestID,
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
		"errorCategory": GetErrorCategory(stdErr.Code),
	})
}
