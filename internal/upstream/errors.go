// internal/upstream/errors.go
//
// Error taxonomy shared by every upstream caller.
//
// Context
// -------
// Handlers and the aggregator only ever need to tell five situations apart,
// so each client call maps its failure to one of them:
//
//   - ErrNotFound      the upstream answered 404 (or the record is absent).
//   - *UpstreamError   any other non-2xx answer, carrying status + message.
//   - ErrTimeout       transport failure: deadline, refused, DNS, reset.
//   - ErrInvalidData   2xx with a body we cannot decode or that lacks
//     required fields.
//   - ErrNoIdentifier  the caller had nothing to look up.
//
// All are matched with errors.Is / errors.As.
package upstream

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrTimeout      = errors.New("upstream unreachable or timed out")
	ErrInvalidData  = errors.New("invalid upstream data")
	ErrNoIdentifier = errors.New("no practice id or customer code provided")
)

// UpstreamError is a non-2xx, non-404 answer.
type UpstreamError struct {
	Service string
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: upstream status %d: %s", e.Service, e.Status, e.Message)
}

// HTTPStatus maps an error from this package to the status a handler
// should answer with.
func HTTPStatus(err error) int {
	var ue *UpstreamError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNoIdentifier):
		return http.StatusBadRequest
	case errors.Is(err, ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, ErrInvalidData):
		return http.StatusBadGateway
	case errors.As(err, &ue):
		return ue.Status
	default:
		return http.StatusInternalServerError
	}
}
