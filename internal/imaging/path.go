package imaging

import (
	"path/filepath"
	"strings"
)

// PathInfo is the decomposition of a file path into its named parts.
type PathInfo struct {
	Dirname  string `json:"dirname"`  // parent directory
	Basename string `json:"basename"` // file name with extension
	Filename string `json:"filename"` // file name without extension
	// Extension is the text after the last dot of Basename. It is only
	// meaningful when HasExtension is true, and may be empty for "name.".
	Extension    string `json:"extension"`
	HasExtension bool   `json:"-"`
}

// SplitPath decomposes path without touching the filesystem.
//
// A final component without a dot has no extension, so "out/thumbs" is
// treated as a directory name while "out/thumb.png" is a file name.
func SplitPath(path string) PathInfo {
	if path == "" {
		return PathInfo{}
	}

	info := PathInfo{
		Dirname:  filepath.Dir(path),
		Basename: filepath.Base(path),
	}
	if info.Basename == "." || info.Basename == string(filepath.Separator) {
		info.Basename = ""
	}

	info.Filename = info.Basename
	if i := strings.LastIndexByte(info.Basename, '.'); i >= 0 {
		info.Filename = info.Basename[:i]
		info.Extension = info.Basename[i+1:]
		info.HasExtension = true
	}
	return info
}

// canonicalPath resolves path to an absolute path with symlinks evaluated.
func canonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
