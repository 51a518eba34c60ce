// Package httperr translates service-layer error kinds into huma status
// errors so individual handlers do not repeat the mapping.
package httperr

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/apperr"
)

// From maps err's kind to an HTTP status error. Unknown errors become a
// 500 with a generic message; their details stay in the logs.
func From(err error) huma.StatusError {
	message := apperr.MessageOf(err)
	switch apperr.KindOf(err) {
	case apperr.KindInvalidArgument:
		return huma.Error400BadRequest(message)
	case apperr.KindUnauthenticated:
		return huma.Error401Unauthorized(message)
	case apperr.KindForbidden:
		return huma.Error403Forbidden(message)
	case apperr.KindNotFound:
		return huma.Error404NotFound(message)
	case apperr.KindConflict:
		return huma.Error409Conflict(message)
	default:
		return huma.NewError(http.StatusInternalServerError, message)
	}
}
