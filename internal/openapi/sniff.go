package openapi

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.yaml.in/yaml/v3"
)

// supportedRange covers Swagger 2.0 through OpenAPI 3.x.
var supportedRange = mustConstraint(">=2.0.0, <4.0.0")

func mustConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Info holds the identity fields sniffed from a specification document.
type Info struct {
	Version string // the declared openapi/swagger version, verbatim
	Title   string
}

// Sniff leniently parses data (JSON or YAML) and extracts the declared
// specification version and title. It does not validate the document shape.
func Sniff(data []byte) (*Info, error) {
	var doc struct {
		OpenAPI string `yaml:"openapi"`
		Swagger string `yaml:"swagger"`
		Info    struct {
			Title string `yaml:"title"`
		} `yaml:"info"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing specification document: %w", err)
	}

	version := doc.OpenAPI
	if version == "" {
		version = doc.Swagger
	}
	if version == "" {
		return nil, fmt.Errorf("document declares no openapi or swagger version")
	}
	return &Info{Version: version, Title: doc.Info.Title}, nil
}

// CheckVersion reports an error when the declared version falls outside the
// supported range. Two-part versions like "2.0" are tolerated.
func CheckVersion(declared string) error {
	v, err := semver.NewVersion(strings.TrimSpace(declared))
	if err != nil {
		return fmt.Errorf("parsing specification version %q: %w", declared, err)
	}
	if !supportedRange.Check(v) {
		return fmt.Errorf("specification version %s is outside the supported range %s", declared, supportedRange)
	}
	return nil
}
