package domain

import (
	"net/url"
	"strconv"
	"strings"
)

// illegalURLChars are ASCII characters that may not appear unescaped anywhere in a URI (RFC 3986).
const illegalURLChars = " \t\r\n\"<>\\^`{|}"

// NormalizeURL validates raw and returns its canonical form.
// Inputs without a scheme are treated as https.
func NormalizeURL(raw string) (string, error) {
	if raw == "" {
		return "", ErrMalformedURL
	}
	if i := strings.IndexAny(raw, illegalURLChars); i >= 0 {
		return "", ErrMalformedURL.WithMetadata(map[string]string{"index": strconv.Itoa(i)})
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", ErrMalformedURL.WithCause(err)
	}

	if u.Scheme == "" {
		u, err = url.Parse("https://" + raw)
		if err != nil {
			return "", ErrMalformedURL.WithCause(err)
		}
	}

	if u.Hostname() == "" {
		return "", ErrMissingHost.WithMetadata(map[string]string{"url": raw})
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", ErrUnsupportedScheme.WithMetadata(map[string]string{"scheme": scheme})
	}

	return u.String(), nil
}
