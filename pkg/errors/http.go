package errors

import (
	stderrors "errors"
	"net/http"
)

const serverErrorMessage = "Server error"

// HTTPStatus maps an error onto the REST status code returned to clients.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeInvalidArgument, CodeAlreadyExists, CodeFailedPrecondition:
		return http.StatusBadRequest
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodePermissionDenied:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeDeadlineExceeded:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message safe to show to a client.
// Internal and unknown errors never leak their cause.
func PublicMessage(err error) string {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return serverErrorMessage
	}
	switch appErr.Code {
	case CodeInternal, CodeUnknown:
		return serverErrorMessage
	}
	return appErr.Message
}
