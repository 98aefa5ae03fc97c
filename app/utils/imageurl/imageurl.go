package imageurl

import (
	"fmt"
	"regexp"
)

// Asset refs look like "image-<asset>-<width>x<height>-<ext>", an
// opaque handle the catalog stores instead of a URL.
var refPattern = regexp.MustCompile(`^image-([A-Za-z0-9]+)-(\d+x\d+)-([a-z0-9]+)$`)

// Builder turns asset refs into displayable CDN URLs. Nothing in the
// pipeline depends on its output beyond display.
type Builder struct {
	baseURL string
}

func NewBuilder(baseURL string) *Builder {
	return &Builder{baseURL: baseURL}
}

func (b *Builder) URLFor(ref string) (string, error) {
	m := refPattern.FindStringSubmatch(ref)
	if m == nil {
		return "", fmt.Errorf("malformed image ref %q", ref)
	}
	return fmt.Sprintf("%s/images/%s-%s.%s", b.baseURL, m[1], m[2], m[3]), nil
}
