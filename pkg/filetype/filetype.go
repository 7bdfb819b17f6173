// Package filetype classifies filenames into Office and non-Office
// documents, driven by the general.nonofficetypes configuration key.
package filetype

import (
	"path/filepath"
	"sort"
	"strings"
)

// DefaultNonOfficeTypes is the extension list applied when the
// configuration does not set general.nonofficetypes. These are plain-text
// formats opened by companion editors rather than the Office frontend.
const DefaultNonOfficeTypes = ".md .zmd .txt"

// Classifier answers whether a file is handled as an Office document.
//
// The zero value treats every file as an Office document; use New to apply
// an extension list.
type Classifier struct {
	nonOffice map[string]struct{}
}

// New builds a Classifier from a space-separated extension list, as found in
// the general.nonofficetypes key. Extensions are matched case-insensitively
// and the leading dot is optional in the list.
func New(nonOfficeTypes string) *Classifier {
	c := &Classifier{nonOffice: make(map[string]struct{})}
	for _, ext := range strings.Fields(nonOfficeTypes) {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.nonOffice[ext] = struct{}{}
	}
	return c
}

// IsOfficeDocument reports whether filename is handled as an Office
// document. Files without an extension are Office documents: the frontend
// decides what to do with them, the bridge only filters out the explicitly
// excluded types.
func (c *Classifier) IsOfficeDocument(filename string) bool {
	if c == nil || c.nonOffice == nil {
		return true
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return true
	}
	_, excluded := c.nonOffice[ext]
	return !excluded
}

// NonOfficeTypes returns the configured extension list, sorted, with leading
// dots. Useful for logging the effective classification.
func (c *Classifier) NonOfficeTypes() []string {
	if c == nil {
		return nil
	}
	types := make([]string, 0, len(c.nonOffice))
	for ext := range c.nonOffice {
		types = append(types, ext)
	}
	sort.Strings(types)
	return types
}
