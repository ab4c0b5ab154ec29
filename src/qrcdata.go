package main

// Resource collection model
// The in-memory tree behind the editor: a collection owns an ordered list
// of resource groups (one per qresource element / editor tab), each group
// owns an ordered list of file entries. All mutations go through the
// methods below so the GUI stays a thin layer over the model.

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Resource is a single file entry inside a group. Path is kept relative
// to the directory of the manifest file. Alias is optional; empty means
// the file is addressed by its path. Extra holds attributes we don't
// understand so a foreign manifest survives a round trip.
type Resource struct {
	ID    string // stable ref for the editor, never serialized
	Path  string
	Alias string
	Extra []xml.Attr
}

// ResourceGroup is one qresource element: a prefix plus optional language
// tag and its ordered file entries. Duplicate (prefix, lang) pairs are
// legal in the model; only the external compiler merges them.
type ResourceGroup struct {
	ID        string
	Prefix    string
	Lang      string
	Extra     []xml.Attr
	Resources []Resource
}

// ResourceCollection is the root of the tree. It remembers the manifest
// file it was loaded from (or last saved to) and whether there are
// unsaved changes.
type ResourceCollection struct {
	Groups   []ResourceGroup
	fileName string
	dirty    bool
}

// Sort keys for SortGroup.
const (
	SortByAlias = "alias"
	SortByPath  = "path"
)

// newRef mints a stable identifier for a group or entry.
func newRef() string {
	return uuid.NewString()
}

func NewResourceCollection() *ResourceCollection {
	return &ResourceCollection{}
}

// FileName returns the manifest path backing this collection, empty for a
// collection that was never saved.
func (c *ResourceCollection) FileName() string {
	return c.fileName
}

func (c *ResourceCollection) SetFileName(name string) {
	c.fileName = name
	c.dirty = true
}

func (c *ResourceCollection) Dirty() bool {
	return c.dirty
}

func (c *ResourceCollection) SetDirty(dirty bool) {
	c.dirty = dirty
}

// Dir returns the directory the entry paths are relative to.
func (c *ResourceCollection) Dir() string {
	if c.fileName == "" {
		return "."
	}
	return filepath.Dir(c.fileName)
}

// Clear drops all groups. When clearFileName is false the collection
// keeps its backing file and is marked dirty, mirroring "revert to empty"
// during a reload.
func (c *ResourceCollection) Clear(clearFileName bool) {
	c.Groups = nil
	if clearFileName {
		c.fileName = ""
		c.dirty = false
	} else {
		c.dirty = true
	}
}

// ResourceCount returns the total number of file entries across groups.
func (c *ResourceCollection) ResourceCount() int {
	count := 0
	for i := range c.Groups {
		count += len(c.Groups[i].Resources)
	}
	return count
}

// AddGroup appends a new empty group and returns its ref.
func (c *ResourceCollection) AddGroup(prefix, lang string) (string, error) {
	if strings.TrimSpace(prefix) == "" {
		return "", fmt.Errorf("%w: empty prefix", ErrInvalidIdentifier)
	}
	group := ResourceGroup{
		ID:     newRef(),
		Prefix: prefix,
		Lang:   lang,
	}
	c.Groups = append(c.Groups, group)
	c.dirty = true
	return group.ID, nil
}

func (c *ResourceCollection) groupIndex(ref string) int {
	for i := range c.Groups {
		if c.Groups[i].ID == ref {
			return i
		}
	}
	return -1
}

// Group resolves a group ref.
func (c *ResourceCollection) Group(ref string) (*ResourceGroup, error) {
	idx := c.groupIndex(ref)
	if idx < 0 {
		return nil, fmt.Errorf("group %s: %w", ref, ErrNotFound)
	}
	return &c.Groups[idx], nil
}

// GroupAt returns the group at a tab position.
func (c *ResourceCollection) GroupAt(index int) (*ResourceGroup, error) {
	if index < 0 || index >= len(c.Groups) {
		return nil, fmt.Errorf("group %d: %w", index, ErrOutOfRange)
	}
	return &c.Groups[index], nil
}

// FindGroup returns the ref of the first group matching prefix and lang.
func (c *ResourceCollection) FindGroup(prefix, lang string) (string, bool) {
	for i := range c.Groups {
		if c.Groups[i].Prefix == prefix && c.Groups[i].Lang == lang {
			return c.Groups[i].ID, true
		}
	}
	return "", false
}

func (c *ResourceCollection) RemoveGroup(ref string) error {
	idx := c.groupIndex(ref)
	if idx < 0 {
		return fmt.Errorf("group %s: %w", ref, ErrNotFound)
	}
	c.Groups = append(c.Groups[:idx], c.Groups[idx+1:]...)
	c.dirty = true
	return nil
}

// MoveGroup moves a group to a new position in the collection order.
func (c *ResourceCollection) MoveGroup(ref string, newIndex int) error {
	idx := c.groupIndex(ref)
	if idx < 0 {
		return fmt.Errorf("group %s: %w", ref, ErrNotFound)
	}
	if newIndex < 0 || newIndex >= len(c.Groups) {
		return fmt.Errorf("group index %d: %w", newIndex, ErrOutOfRange)
	}
	if idx == newIndex {
		return nil
	}
	moved := c.Groups[idx]
	c.Groups = append(c.Groups[:idx], c.Groups[idx+1:]...)
	c.Groups = append(c.Groups[:newIndex], append([]ResourceGroup{moved}, c.Groups[newIndex:]...)...)
	c.dirty = true
	return nil
}

// UpdateGroup changes prefix and language of an existing group.
func (c *ResourceCollection) UpdateGroup(ref, prefix, lang string) error {
	if strings.TrimSpace(prefix) == "" {
		return fmt.Errorf("%w: empty prefix", ErrInvalidIdentifier)
	}
	group, err := c.Group(ref)
	if err != nil {
		return err
	}
	if group.Prefix != prefix || group.Lang != lang {
		group.Prefix = prefix
		group.Lang = lang
		c.dirty = true
	}
	return nil
}

// MergeGroups appends all entries of src to dst and removes src. Used by
// the group dialog when the user renames a group onto an existing
// (prefix, lang) pair.
func (c *ResourceCollection) MergeGroups(dstRef, srcRef string) error {
	if dstRef == srcRef {
		return fmt.Errorf("%w: cannot merge a group with itself", ErrInvalidIdentifier)
	}
	dst, err := c.Group(dstRef)
	if err != nil {
		return err
	}
	src, err := c.Group(srcRef)
	if err != nil {
		return err
	}
	dst.Resources = append(dst.Resources, src.Resources...)
	c.dirty = true
	return c.RemoveGroup(srcRef)
}

// AddResource appends a file entry to a group and returns its ref.
func (c *ResourceCollection) AddResource(groupRef, path, alias string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: empty file path", ErrInvalidIdentifier)
	}
	group, err := c.Group(groupRef)
	if err != nil {
		return "", err
	}
	res := Resource{
		ID:    newRef(),
		Path:  path,
		Alias: alias,
	}
	group.Resources = append(group.Resources, res)
	c.dirty = true
	return res.ID, nil
}

func (c *ResourceCollection) findResource(ref string) (groupIdx, resIdx int) {
	for gi := range c.Groups {
		for ri := range c.Groups[gi].Resources {
			if c.Groups[gi].Resources[ri].ID == ref {
				return gi, ri
			}
		}
	}
	return -1, -1
}

// Resource resolves an entry ref.
func (c *ResourceCollection) Resource(ref string) (*Resource, error) {
	gi, ri := c.findResource(ref)
	if gi < 0 {
		return nil, fmt.Errorf("resource %s: %w", ref, ErrNotFound)
	}
	return &c.Groups[gi].Resources[ri], nil
}

// ResourceGroupRef returns the ref of the group owning the entry.
func (c *ResourceCollection) ResourceGroupRef(ref string) (string, error) {
	gi, _ := c.findResource(ref)
	if gi < 0 {
		return "", fmt.Errorf("resource %s: %w", ref, ErrNotFound)
	}
	return c.Groups[gi].ID, nil
}

func (c *ResourceCollection) RemoveResource(ref string) error {
	gi, ri := c.findResource(ref)
	if gi < 0 {
		return fmt.Errorf("resource %s: %w", ref, ErrNotFound)
	}
	group := &c.Groups[gi]
	group.Resources = append(group.Resources[:ri], group.Resources[ri+1:]...)
	c.dirty = true
	return nil
}

// MoveResource moves an entry to a new position within its group.
func (c *ResourceCollection) MoveResource(ref string, newIndex int) error {
	gi, ri := c.findResource(ref)
	if gi < 0 {
		return fmt.Errorf("resource %s: %w", ref, ErrNotFound)
	}
	group := &c.Groups[gi]
	if newIndex < 0 || newIndex >= len(group.Resources) {
		return fmt.Errorf("resource index %d: %w", newIndex, ErrOutOfRange)
	}
	if ri == newIndex {
		return nil
	}
	moved := group.Resources[ri]
	group.Resources = append(group.Resources[:ri], group.Resources[ri+1:]...)
	group.Resources = append(group.Resources[:newIndex], append([]Resource{moved}, group.Resources[newIndex:]...)...)
	c.dirty = true
	return nil
}

// UpdateResource changes path and alias of an existing entry.
func (c *ResourceCollection) UpdateResource(ref, path, alias string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: empty file path", ErrInvalidIdentifier)
	}
	res, err := c.Resource(ref)
	if err != nil {
		return err
	}
	if res.Path != path || res.Alias != alias {
		res.Path = path
		res.Alias = alias
		c.dirty = true
	}
	return nil
}

// SortGroup reorders the entries of a group by alias or path.
func (c *ResourceCollection) SortGroup(ref, key string, reverse bool) error {
	group, err := c.Group(ref)
	if err != nil {
		return err
	}
	var less func(a, b Resource) bool
	switch key {
	case SortByAlias:
		less = func(a, b Resource) bool {
			if a.Alias != b.Alias {
				return a.Alias < b.Alias
			}
			return a.Path < b.Path
		}
	case SortByPath:
		less = func(a, b Resource) bool {
			if a.Path != b.Path {
				return a.Path < b.Path
			}
			return a.Alias < b.Alias
		}
	default:
		return fmt.Errorf("%w: sort key %q", ErrInvalidOption, key)
	}
	sort.SliceStable(group.Resources, func(i, j int) bool {
		if reverse {
			return less(group.Resources[j], group.Resources[i])
		}
		return less(group.Resources[i], group.Resources[j])
	})
	c.dirty = true
	return nil
}

// IsDuplicateAlias reports whether more than one entry in the group
// carries the given non-empty alias.
func (g *ResourceGroup) IsDuplicateAlias(alias string) bool {
	if alias == "" {
		return false
	}
	count := 0
	for i := range g.Resources {
		if g.Resources[i].Alias == alias {
			count++
		}
	}
	return count > 1
}

// Title is the tab label used by the editor window.
func (g *ResourceGroup) Title() string {
	lang := g.Lang
	if lang == "" {
		lang = "Default"
	}
	title := "Lang: " + lang
	if g.Prefix != "" {
		title += " - Prefix: " + g.Prefix
	}
	return title
}

// Issue severities reported by Validate.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Issue is one validation finding, tied to the entry that caused it.
type Issue struct {
	Ref      string
	Prefix   string
	Path     string
	Severity string
	Reason   string
}

// Validate walks every entry and reports the ones whose file does not
// resolve to a readable regular file under rootDir. Duplicate aliases
// within one group come back as warnings. The result is recomputed on
// every call, nothing is cached.
func (c *ResourceCollection) Validate(rootDir string) []Issue {
	if rootDir == "" {
		rootDir = c.Dir()
	}
	var issues []Issue
	for gi := range c.Groups {
		group := &c.Groups[gi]
		for ri := range group.Resources {
			res := &group.Resources[ri]
			if reason := checkResourceFile(rootDir, res.Path); reason != "" {
				issues = append(issues, Issue{
					Ref:      res.ID,
					Prefix:   group.Prefix,
					Path:     res.Path,
					Severity: SeverityError,
					Reason:   reason,
				})
			}
			if group.IsDuplicateAlias(res.Alias) {
				issues = append(issues, Issue{
					Ref:      res.ID,
					Prefix:   group.Prefix,
					Path:     res.Path,
					Severity: SeverityWarning,
					Reason:   fmt.Sprintf("alias %q is used more than once in this prefix", res.Alias),
				})
			}
		}
	}
	return issues
}

func checkResourceFile(rootDir, path string) string {
	full := path
	if !filepath.IsAbs(full) {
		full = filepath.Join(rootDir, path)
	}
	info, err := os.Stat(full)
	if os.IsNotExist(err) {
		return "file does not exist"
	}
	if err != nil {
		return fmt.Sprintf("file is not accessible: %v", err)
	}
	if info.IsDir() {
		return "path is a directory, not a file"
	}
	file, err := os.Open(full)
	if err != nil {
		return "file is not readable"
	}
	file.Close()
	return ""
}

// Equal compares structure and order, ignoring refs and the
// fileName/dirty bookkeeping. This is the round-trip equality the
// serializer guarantees.
func (c *ResourceCollection) Equal(o *ResourceCollection) bool {
	if len(c.Groups) != len(o.Groups) {
		return false
	}
	for i := range c.Groups {
		if !c.Groups[i].equal(&o.Groups[i]) {
			return false
		}
	}
	return true
}

func (g *ResourceGroup) equal(o *ResourceGroup) bool {
	if g.Prefix != o.Prefix || g.Lang != o.Lang || !attrsEqual(g.Extra, o.Extra) {
		return false
	}
	if len(g.Resources) != len(o.Resources) {
		return false
	}
	for i := range g.Resources {
		a, b := &g.Resources[i], &o.Resources[i]
		if a.Path != b.Path || a.Alias != b.Alias || !attrsEqual(a.Extra, b.Extra) {
			return false
		}
	}
	return true
}

func attrsEqual(a, b []xml.Attr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || a[i].Value != b[i].Value {
			return false
		}
	}
	return true
}
