package assets

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

// contentTypesPart must be the first entry of a package.
const contentTypesPart = "[Content_Types].xml"

// packEpoch stamps every entry so packing the same tree yields the same bytes.
var packEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// packDir zips the part tree under root into a package.
// Returns fs.ErrNotExist when root has no content types part.
func packDir(fsys fs.FS, root string) ([]byte, error) {
	if _, err := fs.Stat(fsys, path.Join(root, contentTypesPart)); err != nil {
		return nil, err
	}

	var names []string
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		names = append(names, strings.TrimPrefix(p, root+"/"))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(names, func(i, j int) bool {
		ri, rj := partRank(names[i]), partRank(names[j])
		if ri != rj {
			return ri < rj
		}
		return names[i] < names[j]
	})

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		data, err := fs.ReadFile(fsys, path.Join(root, name))
		if err != nil {
			return nil, err
		}
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: packEpoch,
		})
		if err != nil {
			return nil, fmt.Errorf("creating %s: %w", name, err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("writing %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func partRank(name string) int {
	switch name {
	case contentTypesPart:
		return 0
	case "_rels/.rels":
		return 1
	}
	return 2
}
