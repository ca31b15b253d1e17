package netutil

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Sentinel errors for package netutil.
var (
	ErrInvalidURL         = errors.New("url must be an absolute http or https url")
	ErrDestinationMissing = errors.New("download destination directory does not exist")
)

// StatusError is returned when a server answers with a status code of 400 or above.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status code %d (%s)", e.URL, e.Code, http.StatusText(e.Code))
}
