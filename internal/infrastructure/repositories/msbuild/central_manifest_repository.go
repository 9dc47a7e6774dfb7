package msbuild

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rios0rios0/cpvmigrate/internal/domain/entities"
	"github.com/rios0rios0/cpvmigrate/internal/domain/repositories"
)

const (
	outputFileMode = 0o644
	indent         = "  "
)

// CentralManifestRepository writes Directory.packages.props style files.
type CentralManifestRepository struct{}

// NewCentralManifestRepository creates a new central manifest repository.
func NewCentralManifestRepository() repositories.CentralManifestRepository {
	return &CentralManifestRepository{}
}

// Write replaces <root>/<opts.FileName> with the rendered document.
func (it *CentralManifestRepository) Write(
	root string,
	deps []entities.Dependency,
	opts repositories.CentralManifestOptions,
) (string, error) {
	var buf bytes.Buffer
	if err := it.Render(&buf, deps, opts); err != nil {
		return "", err
	}

	path := filepath.Join(root, opts.FileName)
	if err := os.WriteFile(path, buf.Bytes(), outputFileMode); err != nil {
		return "", fmt.Errorf("failed to write central manifest %q: %w", path, err)
	}
	return path, nil
}

// Render writes the document with one self-closing PackageVersion item per
// dependency, in the given order.
func (it *CentralManifestRepository) Render(
	w io.Writer,
	deps []entities.Dependency,
	opts repositories.CentralManifestOptions,
) error {
	var buf bytes.Buffer

	buf.WriteString(xml.Header)
	buf.WriteString("<Project>\n")

	if opts.ManageVersionsCentrally {
		buf.WriteString(indent + "<PropertyGroup>\n")
		buf.WriteString(indent + indent +
			"<ManagePackageVersionsCentrally>true</ManagePackageVersionsCentrally>\n")
		buf.WriteString(indent + "</PropertyGroup>\n")
	}

	if len(deps) == 0 {
		buf.WriteString(indent + "<ItemGroup />\n")
	} else {
		buf.WriteString(indent + "<ItemGroup>\n")
		for _, dep := range deps {
			buf.WriteString(indent + indent + `<PackageVersion Include="`)
			if err := xml.EscapeText(&buf, []byte(dep.Name)); err != nil {
				return err
			}
			buf.WriteString(`" Version="`)
			if err := xml.EscapeText(&buf, []byte(dep.Version)); err != nil {
				return err
			}
			buf.WriteString("\" />\n")
		}
		buf.WriteString(indent + "</ItemGroup>\n")
	}

	buf.WriteString("</Project>\n")

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to render central manifest: %w", err)
	}
	return nil
}
