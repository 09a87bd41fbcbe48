package urlutil

import (
	"net/url"
	"strconv"
)

// QueryParams returns the decoded query parameters of an href. Hrefs
// scraped out of markup are frequently junk ("javascript:...", bare
// fragments, unescaped titles), so malformed input yields an empty set
// rather than an error.
func QueryParams(raw string) url.Values {
	link, err := url.Parse(raw)
	if err != nil {
		return url.Values{}
	}
	params, err := url.ParseQuery(link.RawQuery)
	if err != nil {
		return url.Values{}
	}
	return params
}

// ID reads the numeric "id" query parameter out of an href. The second
// return is false when the parameter is missing or not an integer.
func ID(raw string) (int, bool) {
	value := QueryParams(raw).Get("id")
	if value == "" {
		return 0, false
	}
	id, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return id, true
}
