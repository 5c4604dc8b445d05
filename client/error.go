package client

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/adamwoolhether/httpq/errs"
)

// maxErrBodySize caps the amount of response body read when
// building an error for an unexpected status code. This prevents
// unbounded memory usage when a large response arrives with a
// wrong status.
const maxErrBodySize = 4 << 10 // 4KB

func configError(err error) error {
	return errs.New(errs.KindConfig, err.Error(), errs.WithCause(err))
}

func baseURLError(key string) error {
	return errs.New(errs.KindConfig, fmt.Sprintf("Base URL is not defined for %s client", key), errs.WithCause(errs.ErrBaseURLNotSet))
}

// transportError classifies a Doer failure. *url.Error is unwrapped so the
// message is that of the underlying failure.
func transportError(err error) error {
	cause := err
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		cause = urlErr.Err
	}
	return errs.New(errs.KindTransport, cause.Error(), errs.WithCause(err))
}

// statusError classifies a non-2xx response. body is the capped response body.
func statusError(resp *http.Response, body string) error {
	cause := errs.ErrUnexpectedStatus
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		cause = errors.Join(errs.ErrUnexpectedStatus, errs.ErrAuthFailure)
	}

	return errs.New(errs.KindTransport, statusLine(resp),
		errs.WithStatus(resp.StatusCode, body),
		errs.WithCause(cause),
	)
}

// statusLine renders "{code} {text}", preferring the text sent by the server.
func statusLine(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)

	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, code))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	if text == "" {
		return code
	}

	return code + " " + text
}
