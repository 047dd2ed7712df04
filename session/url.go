package session

import "regexp"

// Video identifiers are exactly 11 characters drawn from the URL-safe
// base64 alphabet.
var (
	idPattern    = regexp.MustCompile(`^[0-9A-Za-z_-]{11}$`)
	watchPattern = regexp.MustCompile(`v=([0-9A-Za-z_-]{11})`)
	shortPattern = regexp.MustCompile(`youtu\.be/([0-9A-Za-z_-]{11})`)
)

// ParseVideoRef accepts either a bare video identifier or any watch URL.
func ParseVideoRef(ref string) (string, bool) {
	if idPattern.MatchString(ref) {
		return ref, true
	}
	return ExtractVideoID(ref)
}

// ExtractVideoID pulls the video identifier out of a watch URL. Both the
// long form (watch?v=...) and the short-link form (youtu.be/...) are
// recognized; anything else reports false.
func ExtractVideoID(url string) (string, bool) {
	if match := watchPattern.FindStringSubmatch(url); match != nil {
		return match[1], true
	}
	if match := shortPattern.FindStringSubmatch(url); match != nil {
		return match[1], true
	}
	return "", false
}
