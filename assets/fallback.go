package assets

// PlaceholderURL is shown in place of an image that failed to load.
const PlaceholderURL = "/static/images/placeholder.svg"

// PhotoFallback returns the replacement for an image src that failed to
// load. The placeholder itself has no replacement, so a broken image is
// swapped at most once.
func PhotoFallback(src string) (string, bool) {
	if src == PlaceholderURL {
		return "", false
	}
	return PlaceholderURL, true
}
