package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/beevik/etree"
)

// Extension is the file extension project documents use.
const Extension = ".oasproj"

// ErrPersistence indicates the project document could not be read, parsed,
// or written.
var ErrPersistence = errors.New("project document persistence failure")

// Kind identifies which grouping container a reference entry belongs to.
type Kind int

const (
	// KindReference covers entries backed by a local specification file,
	// whether added from disk or downloaded from a URL.
	KindReference Kind = iota
	// KindProjectLink covers entries pointing at another project file.
	KindProjectLink
)

const (
	rootTag        = "Project"
	groupTag       = "ItemGroup"
	referenceTag   = "OpenApiReference"
	projectLinkTag = "OpenApiProjectReference"

	includeAttr   = "Include"
	classNameAttr = "ClassName"
	sourceURLAttr = "SourceUrl"
)

// Entry is one reference recorded in a project document. SourcePath is the
// identity: within a document, no two entries of the same kind share one.
type Entry struct {
	Kind       Kind
	SourcePath string
	ClassName  string
	SourceURL  string // set only for entries downloaded from a URL
}

// Document is an in-memory project document bound to its on-disk path.
type Document struct {
	path string
	tree *etree.Document
	root *etree.Element
}

// Load reads and parses the project document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrPersistence, path, err)
	}
	tree := etree.NewDocument()
	if err := tree.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrPersistence, path, err)
	}
	root := tree.SelectElement(rootTag)
	if root == nil {
		return nil, fmt.Errorf("%w: %s has no <%s> root element", ErrPersistence, path, rootTag)
	}
	return &Document{path: path, tree: tree, root: root}, nil
}

// Path returns the on-disk location the document was loaded from.
func (d *Document) Path() string {
	return d.path
}

func elementTag(kind Kind) string {
	if kind == KindProjectLink {
		return projectLinkTag
	}
	return referenceTag
}

func entryFromElement(kind Kind, el *etree.Element) Entry {
	return Entry{
		Kind:       kind,
		SourcePath: el.SelectAttrValue(includeAttr, ""),
		ClassName:  el.SelectAttrValue(classNameAttr, ""),
		SourceURL:  el.SelectAttrValue(sourceURLAttr, ""),
	}
}

// References returns all entries of the given kind in document order.
func (d *Document) References(kind Kind) []Entry {
	tag := elementTag(kind)
	var entries []Entry
	for _, group := range d.root.SelectElements(groupTag) {
		for _, el := range group.SelectElements(tag) {
			entries = append(entries, entryFromElement(kind, el))
		}
	}
	return entries
}

// find locates the element whose Include attribute equals sourcePath.
// Matching is exact string equality on the raw value; no path normalization.
func (d *Document) find(kind Kind, sourcePath string) *etree.Element {
	tag := elementTag(kind)
	for _, group := range d.root.SelectElements(groupTag) {
		for _, el := range group.SelectElements(tag) {
			if el.SelectAttrValue(includeAttr, "") == sourcePath {
				return el
			}
		}
	}
	return nil
}

// Contains reports whether an entry of the given kind with the exact
// sourcePath exists.
func (d *Document) Contains(kind Kind, sourcePath string) bool {
	return d.find(kind, sourcePath) != nil
}

// FindByURL returns the reference entry whose recorded source URL equals url.
func (d *Document) FindByURL(url string) (Entry, bool) {
	for _, group := range d.root.SelectElements(groupTag) {
		for _, el := range group.SelectElements(referenceTag) {
			if v := el.SelectAttrValue(sourceURLAttr, ""); v != "" && v == url {
				return entryFromElement(KindReference, el), true
			}
		}
	}
	return Entry{}, false
}

// Add inserts an entry into the container for its kind, creating the
// container if needed. Returns false without modifying the document when an
// entry of the same kind and sourcePath already exists.
func (d *Document) Add(entry Entry) bool {
	if d.Contains(entry.Kind, entry.SourcePath) {
		return false
	}
	group := d.groupFor(entry.Kind)
	el := group.CreateElement(elementTag(entry.Kind))
	el.CreateAttr(includeAttr, entry.SourcePath)
	if entry.ClassName != "" {
		el.CreateAttr(classNameAttr, entry.ClassName)
	}
	if entry.SourceURL != "" {
		el.CreateAttr(sourceURLAttr, entry.SourceURL)
	}
	return true
}

// groupFor returns the ItemGroup already holding entries of kind, or creates
// a new one. Each kind gets its own container.
func (d *Document) groupFor(kind Kind) *etree.Element {
	tag := elementTag(kind)
	for _, group := range d.root.SelectElements(groupTag) {
		if len(group.SelectElements(tag)) > 0 {
			return group
		}
	}
	return d.root.CreateElement(groupTag)
}

// Remove deletes the entry of the given kind matching sourcePath exactly and
// returns it. An empty container left behind is dropped.
func (d *Document) Remove(kind Kind, sourcePath string) (Entry, bool) {
	el := d.find(kind, sourcePath)
	if el == nil {
		return Entry{}, false
	}
	entry := entryFromElement(kind, el)
	group := el.Parent()
	group.RemoveChild(el)
	if len(group.ChildElements()) == 0 {
		d.root.RemoveChild(group)
	}
	return entry, true
}

// Save writes the document back to its original path. Content goes to a temp
// file in the same directory which then replaces the original, so a failed
// save leaves the prior on-disk state unchanged.
func (d *Document) Save() error {
	d.tree.Indent(2)
	data, err := d.tree.WriteToBytes()
	if err != nil {
		return fmt.Errorf("%w: serializing %s: %v", ErrPersistence, d.path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(d.path), "."+filepath.Base(d.path)+".tmp-")
	if err != nil {
		return fmt.Errorf("%w: creating temp file for %s: %v", ErrPersistence, d.path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: writing %s: %v", ErrPersistence, tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: closing %s: %v", ErrPersistence, tmpPath, err)
	}
	if err := os.Rename(tmpPath, d.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: replacing %s: %v", ErrPersistence, d.path, err)
	}
	return nil
}
