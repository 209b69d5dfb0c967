package assets

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader loads template sets from a directory on the filesystem.
// Implements AssetLoader interface.
type FilesystemLoader struct {
	basePath string
}

// NewFilesystemLoader creates a FilesystemLoader for the given base path.
// Returns ErrInvalidBasePath if the path is not a valid, readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	// Containment checks compare real paths.
	realPath, err := filepath.EvalSymlinks(absPath)
	if err == nil {
		absPath = realPath
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, absPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, absPath)
	}

	if _, err := os.ReadDir(absPath); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	return &FilesystemLoader{basePath: absPath}, nil
}

// LoadTemplateSet loads a template set from the filesystem.
// For each fragment it looks for {basePath}/templates/{name}/{fragment}.docx,
// then for an unpacked {fragment}/ directory. Missing fragments are skipped;
// a set with none is ErrTemplateSetNotFound.
func (f *FilesystemLoader) LoadTemplateSet(name string) (*TemplateSet, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	dirPath := filepath.Join(f.basePath, "templates", name)
	if err := f.verifyPathContainment(dirPath + string(filepath.Separator)); err != nil {
		return nil, err
	}

	ts := &TemplateSet{Name: name}
	for _, frag := range Fragments {
		data, err := f.loadFragment(dirPath, frag)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		ts.set(frag, data)
	}
	if ts.Empty() {
		return nil, fmt.Errorf("%w: %q", ErrTemplateSetNotFound, name)
	}
	return ts, nil
}

func (f *FilesystemLoader) loadFragment(dirPath string, frag Fragment) ([]byte, error) {
	filePath := filepath.Join(dirPath, string(frag)+".docx")
	if err := f.verifyPathContainment(filePath); err != nil {
		return nil, err
	}
	data, err := readLimited(filePath)
	if err == nil {
		if err := ValidatePackage(data); err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(filePath), err)
		}
		return data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	treePath := filepath.Join(dirPath, string(frag))
	if err := f.verifyPathContainment(treePath); err != nil {
		return nil, err
	}
	if info, err := os.Stat(treePath); err != nil || !info.IsDir() {
		return nil, fs.ErrNotExist
	}
	data, err = packDir(os.DirFS(treePath), ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s/ has no %s", ErrNotPackage, frag, contentTypesPart)
		}
		return nil, fmt.Errorf("%w: packing %s: %v", ErrAssetRead, frag, err)
	}
	return data, nil
}

// readLimited reads a file no larger than MaxAssetSize.
func readLimited(filePath string) ([]byte, error) {
	file, err := os.Open(filePath) // #nosec G304 -- path validated by caller
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fs.ErrNotExist
		}
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, MaxAssetSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	if len(data) > MaxAssetSize {
		return nil, fmt.Errorf("%w: %s", ErrAssetTooLarge, filepath.Base(filePath))
	}
	return data, nil
}

// verifyPathContainment ensures the resolved file path is within basePath.
// Symlinks are resolved so a link pointing outside basePath is rejected.
func (f *FilesystemLoader) verifyPathContainment(filePath string) error {
	absFilePath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path", ErrPathTraversal)
	}

	// A missing file keeps its unresolved path; opening it fails later.
	realPath, err := filepath.EvalSymlinks(absFilePath)
	if err == nil {
		absFilePath = realPath
	}

	// The separator rules out /base/pathevil.
	if !strings.HasPrefix(absFilePath, f.basePath+string(filepath.Separator)) {
		return fmt.Errorf("%w: path escapes base directory", ErrPathTraversal)
	}

	return nil
}

// Compile-time interface check.
var _ AssetLoader = (*FilesystemLoader)(nil)
