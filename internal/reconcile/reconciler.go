package reconcile

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/oasref-labs/oasref/internal/console"
	"github.com/oasref-labs/oasref/internal/fetch"
	"github.com/oasref-labs/oasref/internal/openapi"
	"github.com/oasref-labs/oasref/internal/project"
)

// DefaultClassName is recorded on added references when the caller does not
// name one.
const DefaultClassName = "OpenApiClient"

// defaultOutputFile is used for URL sources whose path has no usable final
// segment.
const defaultOutputFile = "openapi.json"

// ErrNotFound indicates a refresh target whose URL matches no recorded
// reference.
var ErrNotFound = errors.New("no reference with a matching source URL")

// ErrOutputConflict indicates the download destination already holds
// different content and overwrite was not requested.
var ErrOutputConflict = errors.New("output file already exists with different content")

// Reconciler applies one operation at a time to a project document. The
// document is loaded fresh at operation start and persisted (or discarded)
// at operation end.
type Reconciler struct {
	workDir    string
	downloader fetch.Downloader
	log        console.Logger
}

// New builds a Reconciler. Downloaded files and relative reference paths
// resolve against workDir; the downloader fetches URL sources; the logger
// receives progress and warnings.
func New(workDir string, downloader fetch.Downloader, log console.Logger) *Reconciler {
	return &Reconciler{workDir: workDir, downloader: downloader, log: log}
}

// AddOptions carries the optional inputs of an add operation.
type AddOptions struct {
	ClassName  string // empty means DefaultClassName
	OutputFile string // empty means derive from the URL's final path segment
	Overwrite  bool   // replace an existing output file whose content differs
}

// Add records source in the project document at projectPath. Local
// specification files and nested projects are linked directly; URL sources
// are downloaded into the working directory first, and the resulting entry
// records the origin URL so it can be refreshed later. Adding a reference
// that already exists is a no-op.
func (r *Reconciler) Add(projectPath, source string, opts AddOptions) error {
	doc, err := project.Load(projectPath)
	if err != nil {
		return err
	}

	src, err := Classify(r.workDir, source)
	if err != nil {
		return err
	}

	className := opts.ClassName
	if className == "" {
		className = DefaultClassName
	}

	var entry project.Entry
	switch src.Kind {
	case SourceProjectLink:
		entry = project.Entry{Kind: project.KindProjectLink, SourcePath: src.Raw}
	case SourceLocal:
		entry = project.Entry{Kind: project.KindReference, SourcePath: src.Raw, ClassName: className}
	case SourceURL:
		outputFile := opts.OutputFile
		if outputFile == "" {
			outputFile = deriveOutputFile(src.URL)
		}
		if err := r.download(src.Raw, filepath.Join(r.workDir, outputFile), opts.Overwrite); err != nil {
			return err
		}
		entry = project.Entry{
			Kind:       project.KindReference,
			SourcePath: outputFile,
			ClassName:  className,
			SourceURL:  src.Raw,
		}
	}

	if !doc.Add(entry) {
		r.log.Info(fmt.Sprintf("reference %s already exists, nothing to do", entry.SourcePath))
		return nil
	}
	if err := doc.Save(); err != nil {
		return err
	}
	r.log.Info(fmt.Sprintf("added reference %s", entry.SourcePath))
	return nil
}

// Remove deletes the reference matching source by exact string equality and,
// for specification references, the backing local file. A missing reference
// is reported and treated as success.
func (r *Reconciler) Remove(projectPath, source string) error {
	doc, err := project.Load(projectPath)
	if err != nil {
		return err
	}

	kind := project.KindReference
	if strings.EqualFold(filepath.Ext(source), project.Extension) {
		kind = project.KindProjectLink
	}

	entry, ok := doc.Remove(kind, source)
	if !ok {
		r.log.Info(fmt.Sprintf("no reference found for %s, nothing to do", source))
		return nil
	}
	if err := doc.Save(); err != nil {
		return err
	}

	if kind == project.KindReference {
		backing := r.resolve(entry.SourcePath)
		if err := os.Remove(backing); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("deleting %s: %w", backing, err)
		}
	}
	r.log.Info(fmt.Sprintf("removed reference %s", source))
	return nil
}

// Refresh re-downloads the content behind a URL-sourced reference and
// overwrites the backing file in place. The reference entry itself is left
// untouched and the document is not re-persisted; only file content changes,
// and the file's modification time is guaranteed to advance.
func (r *Reconciler) Refresh(projectPath, source string) error {
	doc, err := project.Load(projectPath)
	if err != nil {
		return err
	}

	entry, ok := doc.FindByURL(source)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, source)
	}

	content, err := r.downloader.Fetch(entry.SourceURL)
	if err != nil {
		return err
	}
	r.inspect(entry.SourceURL, content)

	dest := r.resolve(entry.SourcePath)
	var before time.Time
	if info, err := os.Stat(dest); err == nil {
		before = info.ModTime()
	}
	if err := os.WriteFile(dest, content, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	// Coarse filesystem clocks can leave the mtime where it was.
	if info, err := os.Stat(dest); err == nil && !info.ModTime().After(before) {
		bump := before.Add(time.Second)
		if err := os.Chtimes(dest, bump, bump); err != nil {
			return fmt.Errorf("updating timestamp on %s: %w", dest, err)
		}
	}

	r.log.Info(fmt.Sprintf("refreshed %s from %s", entry.SourcePath, entry.SourceURL))
	return nil
}

// download fetches url and materializes the content at destPath. A
// destination already holding the same bytes is left alone; different
// content fails unless overwrite is set.
func (r *Reconciler) download(url, destPath string, overwrite bool) error {
	content, err := r.downloader.Fetch(url)
	if err != nil {
		return err
	}
	r.inspect(url, content)

	if existing, err := os.ReadFile(destPath); err == nil {
		if bytes.Equal(existing, content) {
			return nil
		}
		if !overwrite {
			return fmt.Errorf("%w: %s", ErrOutputConflict, destPath)
		}
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", destPath, err)
	}
	if err := os.WriteFile(destPath, content, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", destPath, err)
	}
	return nil
}

// inspect sniffs fetched content and reports problems as warnings. A
// malformed or out-of-range document still gets linked.
func (r *Reconciler) inspect(url string, content []byte) {
	info, err := openapi.Sniff(content)
	if err != nil {
		r.log.Warn(fmt.Sprintf("%s: %v", url, err))
		return
	}
	if err := openapi.CheckVersion(info.Version); err != nil {
		r.log.Warn(fmt.Sprintf("%s: %v", url, err))
	}

	result, err := openapi.Validate(content)
	if err != nil {
		r.log.Warn(fmt.Sprintf("%s: validating document: %v", url, err))
		return
	}
	if !result.Valid {
		for _, issue := range result.Issues {
			r.log.Warn(fmt.Sprintf("%s: %s %s", url, issue.Path, issue.Message))
		}
	}
}

// resolve turns a recorded (possibly relative) source path into an absolute
// one under the working directory.
func (r *Reconciler) resolve(sourcePath string) string {
	if filepath.IsAbs(sourcePath) {
		return sourcePath
	}
	return filepath.Join(r.workDir, sourcePath)
}

// deriveOutputFile picks a local file name for a URL source from its final
// path segment.
func deriveOutputFile(u *url.URL) string {
	base := path.Base(u.Path)
	if base == "" || base == "." || base == "/" {
		return defaultOutputFile
	}
	return base
}
