package msbuild

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"unicode/utf8"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/cpvmigrate/internal/domain/entities"
	"github.com/rios0rios0/cpvmigrate/internal/domain/repositories"
)

// ManifestRepository implements repositories.ManifestRepository for MSBuild
// project files on the local filesystem.
type ManifestRepository struct{}

// NewManifestRepository creates a new MSBuild manifest repository.
func NewManifestRepository() repositories.ManifestRepository {
	return &ManifestRepository{}
}

// Find walks root in lexical order and returns the matching project files.
func (it *ManifestRepository) Find(
	ctx context.Context,
	root string,
	patterns, excludes []string,
) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if entry.IsDir() {
			if path != root && slices.Contains(excludes, entry.Name()) {
				logger.Debugf("Skipping excluded directory %s", path)
				return filepath.SkipDir
			}
			return nil
		}

		matched, matchErr := matchesAny(entry.Name(), patterns)
		if matchErr != nil {
			return matchErr
		}
		if matched {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %q: %w", root, err)
	}

	return files, nil
}

// Collect returns the versioned PackageReference declarations of the file.
// A declaration counts as versioned when either form is present, even with an
// empty value.
func (it *ManifestRepository) Collect(path string) ([]entities.Dependency, error) {
	text, err := readProjectText(path)
	if err != nil {
		return nil, err
	}

	doc, err := parseDeclarations(path, text.body)
	if err != nil {
		return nil, err
	}

	var deps []entities.Dependency
	for _, decl := range selectDeclarations(doc.decls) {
		if decl.include == "" {
			return nil, &entities.SchemaError{
				Path:      path,
				Element:   decl.name.Local,
				Attribute: includeAttribute,
				Line:      decl.line,
			}
		}

		version, ok := decl.version()
		if !ok {
			continue // already managed centrally
		}

		deps = append(deps, entities.Dependency{
			Name:     decl.include,
			Version:  version,
			FilePath: path,
		})
	}

	return deps, nil
}

// StripVersions rewrites the file without inline versions, covering exactly
// the references Collect reads. A file with nothing left to strip is not
// written at all.
func (it *ManifestRepository) StripVersions(path string) (bool, error) {
	text, err := readProjectText(path)
	if err != nil {
		return false, err
	}

	doc, err := parseDeclarations(path, text.body)
	if err != nil {
		return false, err
	}

	decls := selectDeclarations(doc.decls)
	if !hasVersions(decls) {
		return false, nil
	}
	if doc.transcoded && !isASCII(text.body) {
		return false, fmt.Errorf("cannot rewrite %q: only UTF-8 or ASCII content can be edited in place", path)
	}

	stripped := stripVersions(text.body, decls)
	if verifyErr := verifyStripped(path, stripped); verifyErr != nil {
		return false, verifyErr
	}

	text.body = stripped
	if writeErr := writeProjectText(path, text); writeErr != nil {
		return false, writeErr
	}
	return true, nil
}

// verifyStripped parses the rewritten body again and refuses it when any
// reference still carries a version.
func verifyStripped(path string, body []byte) error {
	doc, err := parseDeclarations(path, body)
	if err != nil {
		return fmt.Errorf("rewrite of %q produced invalid XML: %w", path, err)
	}
	for _, decl := range selectDeclarations(doc.decls) {
		if _, ok := decl.version(); ok {
			return fmt.Errorf("%s:%d: version of %q could not be removed", path, decl.line, decl.include)
		}
	}
	return nil
}

func hasVersions(decls []declaration) bool {
	return slices.ContainsFunc(decls, func(decl declaration) bool {
		_, ok := decl.version()
		return ok
	})
}

func isASCII(body []byte) bool {
	return !slices.ContainsFunc(body, func(c byte) bool { return c >= utf8.RuneSelf })
}

func matchesAny(name string, patterns []string) (bool, error) {
	for _, pattern := range patterns {
		matched, err := filepath.Match(pattern, name)
		if err != nil {
			return false, fmt.Errorf("invalid manifest pattern %q: %w", pattern, err)
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}
