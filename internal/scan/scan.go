// Package scan discovers candidate report documents in a folder tree.
//
// Relevance is decided by keyword heuristics, not a rigid path contract:
// a directory qualifies when any path segment mentions the suicide report
// series, and a file qualifies when its name carries every term the
// incidence/rate state-and-city tables are published under.
package scan

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// folderKeywords mark a directory as part of the suicide report series.
var folderKeywords = []string{
	"suicides",
	"suicides in india",
	"suicide data",
	"suicide report",
}

// requiredTerms must all appear in a candidate PDF filename.
var requiredTerms = []string{
	"incidence",
	"rate",
	"state",
	"suicides",
	"city",
	"wise",
}

// Candidate is a document selected for table extraction.
type Candidate struct {
	Path string // absolute path to the file
	Dir  string // containing folder
	Name string // base filename
}

// IsValidFolder reports whether any segment of the folder path contains one
// of the report series keywords. Underscores count as spaces and matching is
// case-insensitive.
func IsValidFolder(folderPath string) bool {
	normalized := strings.ReplaceAll(strings.ToLower(folderPath), "_", " ")
	for _, part := range strings.Split(normalized, string(filepath.Separator)) {
		for _, keyword := range folderKeywords {
			if strings.Contains(part, keyword) {
				return true
			}
		}
	}
	return false
}

// IsValidPDF reports whether a filename names a PDF that carries every
// required term after underscore-to-space normalization, ignoring case.
func IsValidPDF(filename string) bool {
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return false
	}
	clean := strings.ReplaceAll(strings.ToLower(filename), "_", " ")
	for _, term := range requiredTerms {
		if !strings.Contains(clean, term) {
			return false
		}
	}
	return true
}

// FindCandidates walks the tree under root and returns every file that sits
// in a relevant folder and passes the filename check, in directory-walk
// order. Failure to enumerate the root itself is fatal; an unreadable
// subtree is skipped and its files are simply absent from the result.
func FindCandidates(root string) ([]Candidate, error) {
	var candidates []Candidate

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			// Unreadable subtree: drop it and keep walking.
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !IsValidFolder(filepath.Dir(path)) {
			return nil
		}
		if !IsValidPDF(d.Name()) {
			return nil
		}
		candidates = append(candidates, Candidate{
			Path: path,
			Dir:  filepath.Dir(path),
			Name: d.Name(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return candidates, nil
}
