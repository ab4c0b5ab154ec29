package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestCollection(t *testing.T) (*ResourceCollection, string) {
	t.Helper()
	c := NewResourceCollection()
	ref, err := c.AddGroup("/icons", "")
	require.NoError(t, err)
	_, err = c.AddResource(ref, "images/new.png", "new")
	require.NoError(t, err)
	_, err = c.AddResource(ref, "images/open.png", "open")
	require.NoError(t, err)
	return c, ref
}

func TestAddGroupRequiresPrefix(t *testing.T) {
	c := NewResourceCollection()
	_, err := c.AddGroup("", "")
	require.ErrorIs(t, err, ErrInvalidIdentifier)
	_, err = c.AddGroup("   ", "en")
	require.ErrorIs(t, err, ErrInvalidIdentifier)
	assert.Len(t, c.Groups, 0)
}

func TestGroupLookup(t *testing.T) {
	c, ref := buildTestCollection(t)

	group, err := c.Group(ref)
	require.NoError(t, err)
	assert.Equal(t, "/icons", group.Prefix)

	_, err = c.Group("no-such-ref")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = c.GroupAt(5)
	require.ErrorIs(t, err, ErrOutOfRange)

	found, ok := c.FindGroup("/icons", "")
	require.True(t, ok)
	assert.Equal(t, ref, found)
	_, ok = c.FindGroup("/icons", "de")
	assert.False(t, ok)
}

func TestResourceOrderPreserved(t *testing.T) {
	c, ref := buildTestCollection(t)
	group, err := c.Group(ref)
	require.NoError(t, err)

	require.Len(t, group.Resources, 2)
	assert.Equal(t, "images/new.png", group.Resources[0].Path)
	assert.Equal(t, "images/open.png", group.Resources[1].Path)
}

func TestMoveResource(t *testing.T) {
	c, ref := buildTestCollection(t)
	group, err := c.Group(ref)
	require.NoError(t, err)
	first := group.Resources[0].ID

	require.NoError(t, c.MoveResource(first, 1))
	assert.Equal(t, "images/open.png", group.Resources[0].Path)
	assert.Equal(t, "images/new.png", group.Resources[1].Path)

	err = c.MoveResource(first, 7)
	require.ErrorIs(t, err, ErrOutOfRange)
	err = c.MoveResource(first, -1)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestUpdateAndRemoveResource(t *testing.T) {
	c, ref := buildTestCollection(t)
	group, err := c.Group(ref)
	require.NoError(t, err)
	target := group.Resources[0].ID

	require.NoError(t, c.UpdateResource(target, "images/fresh.png", "fresh"))
	res, err := c.Resource(target)
	require.NoError(t, err)
	assert.Equal(t, "images/fresh.png", res.Path)
	assert.Equal(t, "fresh", res.Alias)

	owner, err := c.ResourceGroupRef(target)
	require.NoError(t, err)
	assert.Equal(t, ref, owner)

	require.NoError(t, c.RemoveResource(target))
	require.Len(t, group.Resources, 1)
	err = c.RemoveResource(target)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveAndMoveGroup(t *testing.T) {
	c, first := buildTestCollection(t)
	second, err := c.AddGroup("/texts", "de")
	require.NoError(t, err)

	require.NoError(t, c.MoveGroup(second, 0))
	assert.Equal(t, "/texts", c.Groups[0].Prefix)
	assert.Equal(t, "/icons", c.Groups[1].Prefix)

	require.NoError(t, c.RemoveGroup(first))
	require.Len(t, c.Groups, 1)
	err = c.RemoveGroup(first)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMergeGroups(t *testing.T) {
	c, dst := buildTestCollection(t)
	src, err := c.AddGroup("/icons", "de")
	require.NoError(t, err)
	_, err = c.AddResource(src, "images/save.png", "save")
	require.NoError(t, err)

	require.NoError(t, c.MergeGroups(dst, src))
	require.Len(t, c.Groups, 1)
	group, err := c.Group(dst)
	require.NoError(t, err)
	require.Len(t, group.Resources, 3)
	assert.Equal(t, "images/save.png", group.Resources[2].Path)

	err = c.MergeGroups(dst, dst)
	require.ErrorIs(t, err, ErrInvalidIdentifier)
}

func TestSortGroup(t *testing.T) {
	c := NewResourceCollection()
	ref, err := c.AddGroup("/p", "")
	require.NoError(t, err)
	for _, entry := range [][2]string{
		{"c.png", "zebra"},
		{"a.png", "mango"},
		{"b.png", "apple"},
	} {
		_, err = c.AddResource(ref, entry[0], entry[1])
		require.NoError(t, err)
	}
	group, err := c.Group(ref)
	require.NoError(t, err)

	require.NoError(t, c.SortGroup(ref, SortByAlias, false))
	assert.Equal(t, "apple", group.Resources[0].Alias)
	assert.Equal(t, "zebra", group.Resources[2].Alias)

	require.NoError(t, c.SortGroup(ref, SortByPath, true))
	assert.Equal(t, "c.png", group.Resources[0].Path)
	assert.Equal(t, "a.png", group.Resources[2].Path)

	err = c.SortGroup(ref, "color", false)
	require.ErrorIs(t, err, ErrInvalidOption)
}

func TestDirtyTracking(t *testing.T) {
	c := NewResourceCollection()
	assert.False(t, c.Dirty())

	ref, err := c.AddGroup("/p", "")
	require.NoError(t, err)
	assert.True(t, c.Dirty())

	c.SetDirty(false)
	_, err = c.AddResource(ref, "a.png", "a")
	require.NoError(t, err)
	assert.True(t, c.Dirty())

	c.SetDirty(false)
	// updating with identical values stays clean
	require.NoError(t, c.UpdateGroup(ref, "/p", ""))
	assert.False(t, c.Dirty())
	require.NoError(t, c.UpdateGroup(ref, "/q", ""))
	assert.True(t, c.Dirty())
}

func TestGroupTitle(t *testing.T) {
	g := ResourceGroup{Prefix: "/icons", Lang: "it"}
	assert.Equal(t, "Lang: it - Prefix: /icons", g.Title())
	g = ResourceGroup{Prefix: "/icons"}
	assert.Equal(t, "Lang: Default - Prefix: /icons", g.Title())
}

func TestValidateMissingFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "images"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "images", "ok.png"), []byte("png"), 0644))

	c := NewResourceCollection()
	ref, err := c.AddGroup("/icons", "")
	require.NoError(t, err)
	_, err = c.AddResource(ref, "images/ok.png", "ok")
	require.NoError(t, err)
	missing1, err := c.AddResource(ref, "images/gone.png", "gone")
	require.NoError(t, err)
	missing2, err := c.AddResource(ref, "images/lost.png", "lost")
	require.NoError(t, err)

	issues := c.Validate(dir)
	require.Len(t, issues, 2)
	assert.Equal(t, missing1, issues[0].Ref)
	assert.Equal(t, missing2, issues[1].Ref)
	for _, issue := range issues {
		assert.Equal(t, SeverityError, issue.Severity)
		assert.Equal(t, "/icons", issue.Prefix)
	}
}

func TestValidateCleanCollection(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.png"), []byte("x"), 0644))

	c := NewResourceCollection()
	ref, err := c.AddGroup("/p", "")
	require.NoError(t, err)
	_, err = c.AddResource(ref, "a.png", "a")
	require.NoError(t, err)

	assert.Empty(t, c.Validate(dir))
}

func TestValidateDirectoryEntry(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "images"), 0755))

	c := NewResourceCollection()
	ref, err := c.AddGroup("/p", "")
	require.NoError(t, err)
	_, err = c.AddResource(ref, "images", "images")
	require.NoError(t, err)

	issues := c.Validate(dir)
	require.Len(t, issues, 1)
	assert.Equal(t, SeverityError, issues[0].Severity)
	assert.Contains(t, issues[0].Reason, "directory")
}

func TestValidateDuplicateAliasWarning(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.png"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.png"), []byte("x"), 0644))

	c := NewResourceCollection()
	ref, err := c.AddGroup("/p", "")
	require.NoError(t, err)
	_, err = c.AddResource(ref, "a.png", "twin")
	require.NoError(t, err)
	_, err = c.AddResource(ref, "b.png", "twin")
	require.NoError(t, err)

	issues := c.Validate(dir)
	require.Len(t, issues, 2)
	for _, issue := range issues {
		assert.Equal(t, SeverityWarning, issue.Severity)
		assert.Contains(t, issue.Reason, "twin")
	}

	group, err := c.Group(ref)
	require.NoError(t, err)
	assert.True(t, group.IsDuplicateAlias("twin"))
	assert.False(t, group.IsDuplicateAlias("other"))
	assert.False(t, group.IsDuplicateAlias(""))
}

func TestClear(t *testing.T) {
	c, _ := buildTestCollection(t)
	c.SetFileName("/tmp/x.qrc")

	c.Clear(false)
	assert.Empty(t, c.Groups)
	assert.Equal(t, "/tmp/x.qrc", c.FileName())

	c.Clear(true)
	assert.Equal(t, "", c.FileName())
}

func TestResourceCount(t *testing.T) {
	c, ref := buildTestCollection(t)
	assert.Equal(t, 2, c.ResourceCount())
	_, err := c.AddResource(ref, "x.png", "x")
	require.NoError(t, err)
	assert.Equal(t, 3, c.ResourceCount())
}
