package imagecdn

import (
	"net/url"
	"strconv"
	"strings"
)

// Transform builds a CDN transformation directive appended to an image URL
// as a query string. The CDN renders variants on the fly; the stored object
// is never modified.
type Transform struct {
	Width   int
	Height  int
	Shape   string // aspect-ratio crop directive, e.g. "16:9"
	Quality string // quality tier hint: standard, hd, ultra
	Format  string // output format, e.g. "webp"
}

// Apply returns the URL with the transformation directives attached.
// A zero Transform returns the URL unchanged.
func (t Transform) Apply(imageURL string) string {
	params := make([]string, 0, 5)
	if t.Width > 0 {
		params = append(params, "w-"+strconv.Itoa(t.Width))
	}
	if t.Height > 0 {
		params = append(params, "h-"+strconv.Itoa(t.Height))
	}
	if t.Shape != "" {
		params = append(params, "ar-"+strings.ReplaceAll(t.Shape, ":", "-"))
	}
	if t.Quality != "" {
		params = append(params, "q-"+t.Quality)
	}
	if t.Format != "" {
		params = append(params, "f-"+t.Format)
	}
	if len(params) == 0 {
		return imageURL
	}

	directive := "tr=" + url.QueryEscape(strings.Join(params, ","))
	if strings.Contains(imageURL, "?") {
		return imageURL + "&" + directive
	}
	return imageURL + "?" + directive
}
