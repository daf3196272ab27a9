// Package basic provides the built-in collector and publish hooks: a file
// collector that types items by extension and a publish hook that copies
// files into a publish directory.
package basic

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/felixgeelhaar/stagecraft/internal/domain/item"
	"github.com/felixgeelhaar/stagecraft/internal/domain/plugin"
	"github.com/felixgeelhaar/stagecraft/internal/domain/publish"
	"github.com/felixgeelhaar/stagecraft/internal/ports"
)

// itemTypeSpec maps a family of file extensions to an item type.
type itemTypeSpec struct {
	typeName    string
	typeDisplay string
	extensions  []string
}

// Well-known content types, checked in order. First extension match wins.
var defaultItemTypes = []itemTypeSpec{
	{"file.alembic", "Alembic Cache", []string{"abc"}},
	{"file.3dsmax", "3dsmax Scene", []string{"max"}},
	{"file.houdini", "Houdini Scene", []string{"hip", "hipnc"}},
	{"file.maya", "Maya Scene", []string{"ma", "mb"}},
	{"file.nuke", "Nuke Script", []string{"nk"}},
	{"file.nukestudio", "NukeStudio Project", []string{"hrox"}},
	{"file.photoshop", "Photoshop Image", []string{"psd", "psb"}},
	{"file.render", "Rendered Image", []string{"dpx", "exr"}},
	{"file.texture", "Texture Image", []string{"tif", "tiff", "tx", "tga", "dds", "rat"}},
	{"file.image", "Image", []string{"jpeg", "jpg", "png"}},
	{"file.video", "Movie", []string{"mov", "mp4"}},
}

var titleCaser = cases.Title(language.English)

// FileCollector is the built-in collector hook. It turns each source path
// into typed file items; a directory source yields one item per file it
// directly contains.
type FileCollector struct {
	fsys ports.FileSystem
}

// NewFileCollector creates the collector over the given filesystem.
func NewFileCollector(fsys ports.FileSystem) *FileCollector {
	return &FileCollector{fsys: fsys}
}

// SettingsSchema declares the collector's settings.
func (c *FileCollector) SettingsSchema() plugin.Schema {
	return plugin.Schema{
		"Skip Hidden Files": {
			Type:        "bool",
			Default:     true,
			Description: "Ignore dot-files when collecting a directory.",
		},
	}
}

// ProcessPath collects one source path into items under parent.
func (c *FileCollector) ProcessPath(ctx context.Context, logger ports.Logger, settings publish.Settings, parent *item.Item, path string) ([]*item.Item, error) {
	path = ports.ExpandPath(path)
	if !c.fsys.Exists(path) {
		return nil, fmt.Errorf("source path does not exist: %s", path)
	}

	if c.fsys.IsDir(path) {
		return c.collectFolder(ctx, logger, settings, parent, path)
	}

	it := c.collectFile(ctx, logger, parent, path)
	return []*item.Item{it}, nil
}

// collectFolder creates an item for every file directly inside the folder.
// Subfolders are not descended into; a user who wants them collected passes
// them as their own sources.
func (c *FileCollector) collectFolder(ctx context.Context, logger ports.Logger, settings publish.Settings, parent *item.Item, folder string) ([]*item.Item, error) {
	entries, err := c.fsys.Glob(filepath.Join(folder, "*"))
	if err != nil {
		return nil, fmt.Errorf("failed to list folder %s: %w", folder, err)
	}
	sort.Strings(entries)

	skipHidden := settings.Bool("Skip Hidden Files")

	var items []*item.Item
	for _, entry := range entries {
		if c.fsys.IsDir(entry) {
			continue
		}
		if skipHidden && strings.HasPrefix(filepath.Base(entry), ".") {
			continue
		}
		items = append(items, c.collectFile(ctx, logger, parent, entry))
	}

	logger.Info(ctx, "collected folder",
		ports.F("folder", folder),
		ports.F("items", len(items)),
	)
	return items, nil
}

// collectFile creates a typed item for a single file.
func (c *FileCollector) collectFile(ctx context.Context, logger ports.Logger, parent *item.Item, path string) *item.Item {
	typeName, typeDisplay := typeForPath(path)

	it := parent.CreateItem(typeName, typeDisplay, filepath.Base(path))
	it.SetProperty("path", path)
	it.SetProperty("file_extension", extension(path))

	logger.Info(ctx, "collected file",
		ports.F("path", path),
		ports.F("item_type", typeName),
	)
	return it
}

// typeForPath resolves an item type from the file's extension. Unknown
// extensions still collect, typed "file.unknown" with a display label built
// from the extension itself.
func typeForPath(path string) (typeName, typeDisplay string) {
	ext := extension(path)
	for _, spec := range defaultItemTypes {
		for _, known := range spec.extensions {
			if ext == known {
				return spec.typeName, spec.typeDisplay
			}
		}
	}

	if ext == "" {
		return "file.unknown", "File"
	}
	return "file.unknown", titleCaser.String(ext) + " File"
}

func extension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Ensure FileCollector satisfies the collector hook contract.
var _ plugin.CollectorHook = (*FileCollector)(nil)
