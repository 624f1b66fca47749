package file

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/conflu-cli/internal/core/domain"
	"github.com/custodia-labs/conflu-cli/internal/core/ports/driven"
)

const (
	bodySuffix = ".json"
	metaSuffix = ".meta.json"
)

// Ensure PageStore implements the port.
var _ driven.PageStore = (*PageStore)(nil)

// PageStore keeps one body file and one metadata sidecar per page under
// <root>/<SPACE>/<id>. Writes go through a temp file and a rename, so a
// crash never leaves a half-written file visible; an entry missing either
// half is reported as absent.
type PageStore struct {
	root string
}

// NewPageStore creates a store rooted at dir.
func NewPageStore(dir string) *PageStore {
	return &PageStore{root: dir}
}

// Root returns the cache directory.
func (s *PageStore) Root() string { return s.root }

// ReadMeta returns the metadata sidecar for a cached page, searching all
// space directories.
func (s *PageStore) ReadMeta(id string) (*domain.PageMeta, error) {
	metaPath, _, err := s.find(id)
	if err != nil {
		return nil, err
	}
	return readMetaFile(metaPath)
}

// ReadBody returns the cached ADF body for a page.
func (s *PageStore) ReadBody(id string) ([]byte, error) {
	_, bodyPath, err := s.find(id)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(bodyPath)
}

// WritePage persists body and metadata as a pair. Both halves are staged
// as temp files first; the body is renamed into place before the meta, so
// the sidecar never describes a body that is not there yet.
func (s *PageStore) WritePage(meta *domain.PageMeta, body []byte) error {
	dir := filepath.Join(s.root, meta.SpaceKey)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	bodyPath := filepath.Join(dir, meta.ID+bodySuffix)
	metaPath := filepath.Join(dir, meta.ID+metaSuffix)

	bodyData, err := formatBody(body)
	if err != nil {
		return fmt.Errorf("format body: %w", err)
	}
	metaData, err := formatMeta(meta)
	if err != nil {
		return fmt.Errorf("format metadata: %w", err)
	}

	bodyTmp, err := stage(bodyPath, bodyData)
	if err != nil {
		return err
	}
	metaTmp, err := stage(metaPath, metaData)
	if err != nil {
		os.Remove(bodyTmp)
		return err
	}

	if err := os.Rename(bodyTmp, bodyPath); err != nil {
		os.Remove(bodyTmp)
		os.Remove(metaTmp)
		return err
	}
	if err := os.Rename(metaTmp, metaPath); err != nil {
		os.Remove(metaTmp)
		return err
	}
	return nil
}

// WriteMeta rewrites the metadata sidecar of an existing entry.
func (s *PageStore) WriteMeta(meta *domain.PageMeta) error {
	metaPath, _, err := s.find(meta.ID)
	if err != nil {
		return err
	}
	data, err := formatMeta(meta)
	if err != nil {
		return err
	}
	tmp, err := stage(metaPath, data)
	if err != nil {
		return err
	}
	if err := os.Rename(tmp, metaPath); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// Delete removes a cached page pair. An absent entry is not an error.
func (s *PageStore) Delete(id string) error {
	spaces, err := s.Spaces()
	if err != nil {
		return err
	}
	for _, space := range spaces {
		dir := filepath.Join(s.root, space)
		for _, suffix := range []string{metaSuffix, bodySuffix} {
			path := filepath.Join(dir, id+suffix)
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				return err
			}
		}
	}
	return nil
}

// ListMetas returns all complete cache entries under one space key,
// ordered by page id.
func (s *PageStore) ListMetas(spaceKey string) ([]domain.PageMeta, error) {
	dir := filepath.Join(s.root, spaceKey)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var metas []domain.PageMeta
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, metaSuffix) {
			continue
		}
		id := strings.TrimSuffix(name, metaSuffix)
		if !fileExists(filepath.Join(dir, id+bodySuffix)) {
			// Half an entry; treat as absent.
			continue
		}
		meta, err := readMetaFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		metas = append(metas, *meta)
	}

	sort.Slice(metas, func(i, j int) bool { return metas[i].ID < metas[j].ID })
	return metas, nil
}

// Spaces returns the space keys present in the cache directory.
func (s *PageStore) Spaces() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var spaces []string
	for _, entry := range entries {
		if entry.IsDir() {
			spaces = append(spaces, entry.Name())
		}
	}
	sort.Strings(spaces)
	return spaces, nil
}

// find locates the file pair for a page across space directories. Both
// halves must exist for the entry to count.
func (s *PageStore) find(id string) (metaPath, bodyPath string, err error) {
	spaces, err := s.Spaces()
	if err != nil {
		return "", "", err
	}
	for _, space := range spaces {
		dir := filepath.Join(s.root, space)
		metaPath = filepath.Join(dir, id+metaSuffix)
		bodyPath = filepath.Join(dir, id+bodySuffix)
		if fileExists(metaPath) && fileExists(bodyPath) {
			return metaPath, bodyPath, nil
		}
	}
	return "", "", fmt.Errorf("page %s: %w", id, domain.ErrNotFound)
}

func readMetaFile(path string) (*domain.PageMeta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var meta domain.PageMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// formatBody re-indents the raw ADF JSON with a trailing newline so the
// cache diffs cleanly.
func formatBody(body []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func formatMeta(meta *domain.PageMeta) ([]byte, error) {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// stage writes data to a temp file next to the target path.
func stage(target string, data []byte) (string, error) {
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", err
	}
	return tmp, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
