//go:build unit

package msbuild_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/cpvmigrate/internal/domain/entities"
	"github.com/rios0rios0/cpvmigrate/internal/infrastructure/repositories/msbuild"
)

const sdkProject = `<Project Sdk="Microsoft.NET.Sdk">
  <PropertyGroup>
    <Version>1.2.3</Version>
  </PropertyGroup>
  <ItemGroup>
    <PackageReference Include="Newtonsoft.Json" Version="13.0.1" />
    <PackageReference Include="Serilog">
      <Version>3.1.0</Version>
      <PrivateAssets>all</PrivateAssets>
    </PackageReference>
    <PackageReference Include="Moq" VersionOverride="4.20.0" />
  </ItemGroup>
</Project>
`

const sdkProjectStripped = `<Project Sdk="Microsoft.NET.Sdk">
  <PropertyGroup>
    <Version>1.2.3</Version>
  </PropertyGroup>
  <ItemGroup>
    <PackageReference Include="Newtonsoft.Json" />
    <PackageReference Include="Serilog">
      <PrivateAssets>all</PrivateAssets>
    </PackageReference>
    <PackageReference Include="Moq" VersionOverride="4.20.0" />
  </ItemGroup>
</Project>
`

const namespacedProject = `<?xml version="1.0" encoding="utf-8"?>
<Project ToolsVersion="15.0" xmlns="http://schemas.microsoft.com/developer/msbuild/2003">
  <ItemGroup>
    <PackageReference Include="Newtonsoft.Json" Version="13.0.1" />
    <PackageReference Include="Serilog">
      <Version>3.1.0</Version>
    </PackageReference>
  </ItemGroup>
</Project>
`

func writeProject(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestManifestRepositoryCollect(t *testing.T) {
	t.Parallel()

	t.Run("should collect both declaration forms in document order", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeProject(t, t.TempDir(), "App.csproj", sdkProject)
		repo := msbuild.NewManifestRepository()

		// when
		deps, err := repo.Collect(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, []entities.Dependency{
			{Name: "Newtonsoft.Json", Version: "13.0.1", FilePath: path},
			{Name: "Serilog", Version: "3.1.0", FilePath: path},
		}, deps)
	})

	t.Run("should collect declarations under a default namespace", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeProject(t, t.TempDir(), "Legacy.csproj", namespacedProject)
		repo := msbuild.NewManifestRepository()

		// when
		deps, err := repo.Collect(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, []entities.Dependency{
			{Name: "Newtonsoft.Json", Version: "13.0.1", FilePath: path},
			{Name: "Serilog", Version: "3.1.0", FilePath: path},
		}, deps)
	})

	t.Run("should prefer the Version attribute over the child element", func(t *testing.T) {
		t.Parallel()

		// given
		content := `<Project><ItemGroup>
  <PackageReference Include="Dapper" Version="2.1.0"><Version>1.0.0</Version></PackageReference>
</ItemGroup></Project>`
		path := writeProject(t, t.TempDir(), "App.csproj", content)
		repo := msbuild.NewManifestRepository()

		// when
		deps, err := repo.Collect(path)

		// then
		require.NoError(t, err)
		require.Len(t, deps, 1)
		assert.Equal(t, "2.1.0", deps[0].Version)
	})

	t.Run("should tolerate a byte-order mark", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeProject(t, t.TempDir(), "App.csproj", "\xEF\xBB\xBF"+sdkProject)
		repo := msbuild.NewManifestRepository()

		// when
		deps, err := repo.Collect(path)

		// then
		require.NoError(t, err)
		assert.Len(t, deps, 2)
	})

	t.Run("should decode a non UTF-8 declared encoding", func(t *testing.T) {
		t.Parallel()

		// given
		content := `<?xml version="1.0" encoding="windows-1252"?>
<Project><ItemGroup><PackageReference Include="Dapper" Version="2.1.0" /></ItemGroup></Project>`
		path := writeProject(t, t.TempDir(), "App.csproj", content)
		repo := msbuild.NewManifestRepository()

		// when
		deps, err := repo.Collect(path)

		// then
		require.NoError(t, err)
		require.Len(t, deps, 1)
		assert.Equal(t, "Dapper", deps[0].Name)
	})

	t.Run("should return nothing for an already migrated project", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeProject(t, t.TempDir(), "App.csproj", sdkProjectStripped)
		repo := msbuild.NewManifestRepository()

		// when
		deps, err := repo.Collect(path)

		// then
		require.NoError(t, err)
		assert.Empty(t, deps)
	})

	t.Run("should return a ParseError for malformed XML", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeProject(t, t.TempDir(), "Broken.csproj", "<Project><ItemGroup></Project>")
		repo := msbuild.NewManifestRepository()

		// when
		deps, err := repo.Collect(path)

		// then
		require.Error(t, err)
		assert.Nil(t, deps)
		var parseErr *entities.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, path, parseErr.Path)
	})

	t.Run("should return a ParseError for an empty file", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeProject(t, t.TempDir(), "Empty.csproj", "")
		repo := msbuild.NewManifestRepository()

		// when
		_, err := repo.Collect(path)

		// then
		var parseErr *entities.ParseError
		require.ErrorAs(t, err, &parseErr)
	})

	t.Run("should return a SchemaError when Include is missing", func(t *testing.T) {
		t.Parallel()

		// given
		content := "<Project>\n  <ItemGroup>\n    <PackageReference Update=\"Dapper\" Version=\"2.1.0\" />\n  </ItemGroup>\n</Project>\n"
		path := writeProject(t, t.TempDir(), "App.csproj", content)
		repo := msbuild.NewManifestRepository()

		// when
		_, err := repo.Collect(path)

		// then
		var schemaErr *entities.SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "Include", schemaErr.Attribute)
		assert.Equal(t, 3, schemaErr.Line)
	})

	t.Run("should return an error when the file does not exist", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "Missing.csproj")
		repo := msbuild.NewManifestRepository()

		// when
		_, err := repo.Collect(path)

		// then
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}

func TestManifestRepositoryStripVersions(t *testing.T) {
	t.Parallel()

	t.Run("should remove versions and keep unrelated Version elements", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeProject(t, t.TempDir(), "App.csproj", sdkProject)
		repo := msbuild.NewManifestRepository()

		// when
		changed, err := repo.StripVersions(path)

		// then
		require.NoError(t, err)
		assert.True(t, changed)
		data, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Equal(t, sdkProjectStripped, string(data))
	})

	t.Run("should leave the file byte-identical on a second pass", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeProject(t, t.TempDir(), "App.csproj", sdkProject)
		repo := msbuild.NewManifestRepository()
		_, err := repo.StripVersions(path)
		require.NoError(t, err)
		before, readErr := os.ReadFile(path)
		require.NoError(t, readErr)

		// when
		changed, err := repo.StripVersions(path)

		// then
		require.NoError(t, err)
		assert.False(t, changed)
		after, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Equal(t, before, after)
	})

	t.Run("should strip declarations under a default namespace", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeProject(t, t.TempDir(), "Legacy.csproj", namespacedProject)
		repo := msbuild.NewManifestRepository()

		// when
		changed, err := repo.StripVersions(path)

		// then
		require.NoError(t, err)
		assert.True(t, changed)
		deps, collectErr := repo.Collect(path)
		require.NoError(t, collectErr)
		assert.Empty(t, deps)
		data, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.NotContains(t, string(data), "13.0.1")
		assert.NotContains(t, string(data), "<Version>")
	})

	t.Run("should preserve a byte-order mark and CRLF line endings", func(t *testing.T) {
		t.Parallel()

		// given
		content := "\xEF\xBB\xBF<Project>\r\n  <ItemGroup>\r\n" +
			"    <PackageReference Include=\"Serilog\">\r\n      <Version>3.1.0</Version>\r\n    </PackageReference>\r\n" +
			"  </ItemGroup>\r\n</Project>\r\n"
		path := writeProject(t, t.TempDir(), "App.csproj", content)
		repo := msbuild.NewManifestRepository()

		// when
		changed, err := repo.StripVersions(path)

		// then
		require.NoError(t, err)
		assert.True(t, changed)
		data, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		expected := "\xEF\xBB\xBF<Project>\r\n  <ItemGroup>\r\n" +
			"    <PackageReference Include=\"Serilog\">\r\n    </PackageReference>\r\n" +
			"  </ItemGroup>\r\n</Project>\r\n"
		assert.Equal(t, expected, string(data))
	})

	t.Run("should not add a byte-order mark when the file had none", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeProject(t, t.TempDir(), "App.csproj", sdkProject)
		repo := msbuild.NewManifestRepository()

		// when
		_, err := repo.StripVersions(path)

		// then
		require.NoError(t, err)
		data, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.NotEqual(t, byte(0xEF), data[0])
	})

	t.Run("should remove a Version attribute on its own line", func(t *testing.T) {
		t.Parallel()

		// given
		content := "<Project>\n    <PackageReference Include=\"Serilog\"\n                      Version=\"3.1.0\" />\n</Project>\n"
		path := writeProject(t, t.TempDir(), "App.csproj", content)
		repo := msbuild.NewManifestRepository()

		// when
		_, err := repo.StripVersions(path)

		// then
		require.NoError(t, err)
		data, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Equal(t, "<Project>\n    <PackageReference Include=\"Serilog\" />\n</Project>\n", string(data))
	})

	t.Run("should remove an inline child Version element", func(t *testing.T) {
		t.Parallel()

		// given
		content := "<Project>\n  <PackageReference Include=\"Dapper\"><Version>2.1.0</Version></PackageReference>\n</Project>\n"
		path := writeProject(t, t.TempDir(), "App.csproj", content)
		repo := msbuild.NewManifestRepository()

		// when
		_, err := repo.StripVersions(path)

		// then
		require.NoError(t, err)
		data, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Equal(t, "<Project>\n  <PackageReference Include=\"Dapper\"></PackageReference>\n</Project>\n", string(data))
	})

	t.Run("should leave a project without versions untouched", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeProject(t, t.TempDir(), "App.csproj", sdkProjectStripped)
		repo := msbuild.NewManifestRepository()
		before, err := os.Stat(path)
		require.NoError(t, err)

		// when
		changed, err := repo.StripVersions(path)

		// then
		require.NoError(t, err)
		assert.False(t, changed)
		after, statErr := os.Stat(path)
		require.NoError(t, statErr)
		assert.Equal(t, before.ModTime(), after.ModTime())
	})
}

func TestManifestRepositoryFind(t *testing.T) {
	t.Parallel()

	newTree := func(t *testing.T) string {
		t.Helper()
		root := t.TempDir()
		writeProject(t, root, "A.csproj", sdkProject)
		writeProject(t, root, filepath.Join("src", "B.csproj"), sdkProject)
		writeProject(t, root, filepath.Join("src", "Lib.fsproj"), sdkProject)
		writeProject(t, root, filepath.Join("src", "bin", "C.csproj"), sdkProject)
		writeProject(t, root, filepath.Join("obj", "D.csproj"), sdkProject)
		writeProject(t, root, "readme.md", "# readme")
		return root
	}

	t.Run("should find matching files in lexical order skipping excluded directories", func(t *testing.T) {
		t.Parallel()

		// given
		root := newTree(t)
		repo := msbuild.NewManifestRepository()

		// when
		files, err := repo.Find(context.Background(), root, []string{"*.csproj"}, []string{"bin", "obj"})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(root, "A.csproj"),
			filepath.Join(root, "src", "B.csproj"),
		}, files)
	})

	t.Run("should match any of several patterns", func(t *testing.T) {
		t.Parallel()

		// given
		root := newTree(t)
		repo := msbuild.NewManifestRepository()

		// when
		files, err := repo.Find(context.Background(), root, []string{"*.csproj", "*.fsproj"}, []string{"bin", "obj"})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(root, "A.csproj"),
			filepath.Join(root, "src", "B.csproj"),
			filepath.Join(root, "src", "Lib.fsproj"),
		}, files)
	})

	t.Run("should descend into every directory when nothing is excluded", func(t *testing.T) {
		t.Parallel()

		// given
		root := newTree(t)
		repo := msbuild.NewManifestRepository()

		// when
		files, err := repo.Find(context.Background(), root, []string{"*.csproj"}, nil)

		// then
		require.NoError(t, err)
		assert.Len(t, files, 4)
	})

	t.Run("should stop when the context is cancelled", func(t *testing.T) {
		t.Parallel()

		// given
		root := newTree(t)
		repo := msbuild.NewManifestRepository()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// when
		files, err := repo.Find(ctx, root, []string{"*.csproj"}, nil)

		// then
		require.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, files)
	})
}

func TestManifestRepositoryStripVersionsAgreesWithCollect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name: "greater-than sign inside another attribute value",
			content: "<Project>\n  <ItemGroup>\n" +
				"    <PackageReference Include=\"A\" Condition=\"'$(X)' > '1'\" Version=\"1.0\" />\n" +
				"  </ItemGroup>\n</Project>\n",
			expected: "<Project>\n  <ItemGroup>\n" +
				"    <PackageReference Include=\"A\" Condition=\"'$(X)' > '1'\" />\n" +
				"  </ItemGroup>\n</Project>\n",
		},
		{
			name: "whitespace inside the Version tags",
			content: "<Project>\n  <ItemGroup>\n    <PackageReference Include=\"A\">\n" +
				"      <Version >1.0</Version >\n    </PackageReference>\n  </ItemGroup>\n</Project>\n",
			expected: "<Project>\n  <ItemGroup>\n    <PackageReference Include=\"A\">\n" +
				"    </PackageReference>\n  </ItemGroup>\n</Project>\n",
		},
		{
			name: "conditional Version child",
			content: "<Project>\n  <ItemGroup>\n    <PackageReference Include=\"A\">\n" +
				"      <Version Condition=\"'$(TargetFramework)' == 'net8.0'\">1.0</Version>\n" +
				"    </PackageReference>\n  </ItemGroup>\n</Project>\n",
			expected: "<Project>\n  <ItemGroup>\n    <PackageReference Include=\"A\">\n" +
				"    </PackageReference>\n  </ItemGroup>\n</Project>\n",
		},
		{
			name: "single-quoted attribute with the Version attribute first",
			content: "<Project>\n  <PackageReference Version='1.0' Include='A'/>\n</Project>\n",
			expected: "<Project>\n  <PackageReference Include='A'/>\n</Project>\n",
		},
	}

	for _, tt := range tests {
		t.Run("should strip every collected version with "+tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			path := writeProject(t, t.TempDir(), "App.csproj", tt.content)
			repo := msbuild.NewManifestRepository()
			before, err := repo.Collect(path)
			require.NoError(t, err)
			require.Equal(t, []entities.Dependency{{Name: "A", Version: "1.0", FilePath: path}}, before)

			// when
			changed, err := repo.StripVersions(path)

			// then
			require.NoError(t, err)
			assert.True(t, changed)
			after, collectErr := repo.Collect(path)
			require.NoError(t, collectErr)
			assert.Empty(t, after)
			data, readErr := os.ReadFile(path)
			require.NoError(t, readErr)
			assert.Equal(t, tt.expected, string(data))
		})
	}
}

func TestManifestRepositoryScope(t *testing.T) {
	t.Parallel()

	t.Run("should leave prefixed references alone when unprefixed ones exist", func(t *testing.T) {
		t.Parallel()

		// given
		content := "<Project xmlns:x=\"urn:custom\">\n" +
			"  <PackageReference Include=\"A\" Version=\"1.0\" />\n" +
			"  <x:PackageReference Include=\"B\" Version=\"2.0\" />\n" +
			"</Project>\n"
		path := writeProject(t, t.TempDir(), "App.csproj", content)
		repo := msbuild.NewManifestRepository()

		// when
		deps, err := repo.Collect(path)
		require.NoError(t, err)
		changed, stripErr := repo.StripVersions(path)

		// then
		require.NoError(t, stripErr)
		assert.True(t, changed)
		assert.Equal(t, []entities.Dependency{{Name: "A", Version: "1.0", FilePath: path}}, deps)
		data, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Equal(t, "<Project xmlns:x=\"urn:custom\">\n"+
			"  <PackageReference Include=\"A\" />\n"+
			"  <x:PackageReference Include=\"B\" Version=\"2.0\" />\n"+
			"</Project>\n", string(data))
	})

	t.Run("should record and strip an empty Version attribute", func(t *testing.T) {
		t.Parallel()

		// given
		content := "<Project>\n  <PackageReference Include=\"A\" Version=\"\" />\n</Project>\n"
		path := writeProject(t, t.TempDir(), "App.csproj", content)
		repo := msbuild.NewManifestRepository()

		// when
		deps, err := repo.Collect(path)
		require.NoError(t, err)
		changed, stripErr := repo.StripVersions(path)

		// then
		require.NoError(t, stripErr)
		assert.Equal(t, []entities.Dependency{{Name: "A", Version: "", FilePath: path}}, deps)
		assert.True(t, changed)
		data, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Equal(t, "<Project>\n  <PackageReference Include=\"A\" />\n</Project>\n", string(data))
	})

	t.Run("should record an empty Version child", func(t *testing.T) {
		t.Parallel()

		// given
		content := "<Project>\n  <PackageReference Include=\"A\">\n    <Version />\n  </PackageReference>\n</Project>\n"
		path := writeProject(t, t.TempDir(), "App.csproj", content)
		repo := msbuild.NewManifestRepository()

		// when
		deps, err := repo.Collect(path)
		require.NoError(t, err)
		_, stripErr := repo.StripVersions(path)

		// then
		require.NoError(t, stripErr)
		assert.Equal(t, []entities.Dependency{{Name: "A", Version: "", FilePath: path}}, deps)
		data, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Equal(t, "<Project>\n  <PackageReference Include=\"A\">\n  </PackageReference>\n</Project>\n", string(data))
	})

	t.Run("should strip an ASCII project declared as windows-1252", func(t *testing.T) {
		t.Parallel()

		// given
		content := "<?xml version=\"1.0\" encoding=\"windows-1252\"?>\n" +
			"<Project>\n  <PackageReference Include=\"A\" Version=\"1.0\" />\n</Project>\n"
		path := writeProject(t, t.TempDir(), "App.csproj", content)
		repo := msbuild.NewManifestRepository()

		// when
		changed, err := repo.StripVersions(path)

		// then
		require.NoError(t, err)
		assert.True(t, changed)
		data, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Equal(t, "<?xml version=\"1.0\" encoding=\"windows-1252\"?>\n"+
			"<Project>\n  <PackageReference Include=\"A\" />\n</Project>\n", string(data))
	})

	t.Run("should refuse to rewrite non-ASCII content in a legacy encoding", func(t *testing.T) {
		t.Parallel()

		// given
		content := "<?xml version=\"1.0\" encoding=\"windows-1252\"?>\n" +
			"<Project>\n  <!-- caf\xe9 -->\n  <PackageReference Include=\"A\" Version=\"1.0\" />\n</Project>\n"
		path := writeProject(t, t.TempDir(), "App.csproj", content)
		repo := msbuild.NewManifestRepository()

		// when
		changed, err := repo.StripVersions(path)

		// then
		require.Error(t, err)
		assert.False(t, changed)
		data, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Equal(t, content, string(data))
	})
}
