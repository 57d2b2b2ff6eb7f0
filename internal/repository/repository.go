package repository

import (
	"fmt"

	"github.com/Domenick1991/flightgateway/internal/requester"
)

const userHeader = "X-User-Name"

func userHeaders(username string) map[string]string {
	return map[string]string{userHeader: username}
}

// expectNoContent turns anything but a 204 into an error.
func expectNoContent(resp *requester.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.StatusCode != 204 {
		return &requester.StatusError{Code: resp.StatusCode, Body: resp.Body}
	}
	return nil
}

func wrap(kind error, err error) error {
	return fmt.Errorf("%w: %w", kind, err)
}
