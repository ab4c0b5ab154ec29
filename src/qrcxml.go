package main

// Qt resource manifest (.qrc) reader and writer
// The on-disk format is the documented Qt resource-collection schema:
//
//	<!DOCTYPE RCC><RCC version="1.0">
//	    <qresource lang="it" prefix="/icons">
//	        <file alias="ok">images/ok.png</file>
//	    </qresource>
//	</RCC>
//
// Attributes we don't know about are kept and written back unchanged so
// manifests produced by other tools survive an edit session.

import (
	"encoding/xml"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

const (
	qrcDocType = "<!DOCTYPE RCC>"
	qrcVersion = "1.0"
	qrcIndent  = "    "
)

type xmlFile struct {
	Alias string     `xml:"alias,attr,omitempty"`
	Extra []xml.Attr `xml:",any,attr"`
	Path  string     `xml:",chardata"`
}

type xmlGroup struct {
	Lang   string     `xml:"lang,attr,omitempty"`
	Prefix string     `xml:"prefix,attr,omitempty"`
	Extra  []xml.Attr `xml:",any,attr"`
	Files  []xmlFile  `xml:"file"`
}

type xmlRCC struct {
	XMLName xml.Name   `xml:"RCC"`
	Version string     `xml:"version,attr,omitempty"`
	Groups  []xmlGroup `xml:"qresource"`
}

// SerializeCollection renders the collection as .qrc text. Output is
// deterministic: groups and entries appear in collection order and the
// encoder handles escaping, so anything legal in a path or alias round
// trips verbatim.
func SerializeCollection(c *ResourceCollection) (string, error) {
	doc := xmlRCC{Version: qrcVersion}
	for gi := range c.Groups {
		group := &c.Groups[gi]
		xg := xmlGroup{
			Lang:   group.Lang,
			Prefix: group.Prefix,
			Extra:  group.Extra,
		}
		for ri := range group.Resources {
			res := &group.Resources[ri]
			xg.Files = append(xg.Files, xmlFile{
				Alias: res.Alias,
				Extra: res.Extra,
				Path:  res.Path,
			})
		}
		doc.Groups = append(doc.Groups, xg)
	}
	body, err := xml.MarshalIndent(doc, "", qrcIndent)
	if err != nil {
		return "", fmt.Errorf("serialize manifest: %w", err)
	}
	return qrcDocType + string(body) + "\n", nil
}

// DeserializeCollection parses .qrc text into a fresh collection.
func DeserializeCollection(data []byte) (*ResourceCollection, error) {
	var doc xmlRCC
	if err := xml.Unmarshal(data, &doc); err != nil {
		var syntax *xml.SyntaxError
		if errors.As(err, &syntax) {
			return nil, fmt.Errorf("%w: line %d: %s", ErrMalformedManifest, syntax.Line, syntax.Msg)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedManifest, err)
	}
	if doc.Version != "" && doc.Version != qrcVersion {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, doc.Version)
	}
	collection := NewResourceCollection()
	for _, xg := range doc.Groups {
		group := ResourceGroup{
			ID:     newRef(),
			Lang:   xg.Lang,
			Prefix: xg.Prefix,
			Extra:  xg.Extra,
		}
		for _, xf := range xg.Files {
			group.Resources = append(group.Resources, Resource{
				ID:    newRef(),
				Path:  strings.TrimSpace(xf.Path),
				Alias: xf.Alias,
				Extra: xf.Extra,
			})
		}
		collection.Groups = append(collection.Groups, group)
	}
	return collection, nil
}

// LoadCollection reads a manifest file from disk.
func LoadCollection(fileName string) (*ResourceCollection, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", fileName, err)
	}
	collection, err := DeserializeCollection(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", fileName, err)
	}
	collection.fileName = fileName
	collection.dirty = false
	log.Printf("Loaded %d resources from %s\n", collection.ResourceCount(), filepath.Base(fileName))
	return collection, nil
}

// Save writes the collection back to its current file name.
func (c *ResourceCollection) Save() error {
	if c.fileName == "" {
		return fmt.Errorf("save: no file name set: %w", ErrInvalidIdentifier)
	}
	return c.SaveAs(c.fileName)
}

// SaveAs writes the collection to fileName and adopts it as the backing
// file. The write goes through a temp file and rename so a failed save
// never truncates the previous manifest.
func (c *ResourceCollection) SaveAs(fileName string) error {
	text, err := SerializeCollection(c)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(fileName); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("save %s: %w", fileName, err)
		}
	}
	tmp := fileName + ".tmp"
	if err := os.WriteFile(tmp, []byte(text), 0644); err != nil {
		return fmt.Errorf("save %s: %w", fileName, err)
	}
	if err := os.Rename(tmp, fileName); err != nil {
		return fmt.Errorf("save %s: %w", fileName, err)
	}
	c.fileName = fileName
	c.dirty = false
	log.Printf("Saved %d resources to %s\n", c.ResourceCount(), filepath.Base(fileName))
	return nil
}
