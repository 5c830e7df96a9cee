package schedule

import (
	"net/url"

	"github.com/oszuidwest/zwfm-streamcast/internal/apperrors"
)

// ValidURL is a string known to parse as an absolute http/https URL.
type ValidURL string

// NewValidURL validates value and returns it as a ValidURL, or an
// InvalidURLError if it does not parse as an absolute http/https URL.
func NewValidURL(value string) (ValidURL, error) {
	u, err := url.Parse(value)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", &apperrors.InvalidURLError{Value: value}
	}
	return ValidURL(value), nil
}
