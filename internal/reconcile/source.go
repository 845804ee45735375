package reconcile

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/oasref-labs/oasref/internal/project"
)

// ErrInvalidSource indicates an identifier that is neither an existing local
// specification file, an existing project file, nor an absolute URL.
var ErrInvalidSource = errors.New("invalid source")

// specExtensions are the file extensions recognized as specification
// documents.
var specExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
}

// SourceKind enumerates the closed set of source identifier variants.
type SourceKind int

const (
	// SourceLocal is an existing specification file on disk.
	SourceLocal SourceKind = iota
	// SourceProjectLink is an existing nested project file.
	SourceProjectLink
	// SourceURL is an absolute http(s) URL to fetch.
	SourceURL
)

// Source is a classified source identifier. Raw is always the identifier as
// given, and is what gets recorded in the document; URL is set only for URL
// sources.
type Source struct {
	Kind SourceKind
	Raw  string
	URL  *url.URL
}

// Classify resolves an identifier once at entry, trying in priority order:
// an existing local specification file, an existing project file, then an
// absolute URL.
func Classify(workDir, identifier string) (Source, error) {
	p := identifier
	if !filepath.IsAbs(p) {
		p = filepath.Join(workDir, p)
	}

	if info, err := os.Stat(p); err == nil && !info.IsDir() {
		ext := strings.ToLower(filepath.Ext(p))
		switch {
		case specExtensions[ext]:
			return Source{Kind: SourceLocal, Raw: identifier}, nil
		case ext == project.Extension:
			return Source{Kind: SourceProjectLink, Raw: identifier}, nil
		}
	}

	if u, err := url.Parse(identifier); err == nil && u.IsAbs() && u.Host != "" &&
		(u.Scheme == "http" || u.Scheme == "https") {
		return Source{Kind: SourceURL, Raw: identifier, URL: u}, nil
	}

	return Source{}, fmt.Errorf("%w: %q is not an existing specification file, a project file, or an absolute URL", ErrInvalidSource, identifier)
}
