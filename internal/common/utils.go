package common

import (
	"errors"
	"path"
	"path/filepath"
	"strings"
)

// SampleExtension is the container every generated sample is stored in.
const SampleExtension = ".ogg"

// ErrOutsideRoot is returned when a file name would escape its storage root.
var ErrOutsideRoot = errors.New("path escapes storage root")

// SampleFileName reduces a configured sample reference to the generated
// file name: the last slash-separated segment with its extension replaced
// by SampleExtension.
func SampleFileName(ref string) string {
	name := ref
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		return ""
	}
	return strings.TrimSuffix(name, path.Ext(name)) + SampleExtension
}

// JoinWithin joins name onto root and rejects results outside root.
func JoinWithin(root, name string) (string, error) {
	if name == "" {
		return "", ErrOutsideRoot
	}
	full := filepath.Join(root, filepath.FromSlash(name))
	rel, err := filepath.Rel(root, full)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrOutsideRoot
	}
	return full, nil
}
