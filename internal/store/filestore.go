package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/handlersyss/BarSystem/internal/model"
)

const (
	productsFile = "products.json"
	tabsFile     = "tabs.json"
	tablesFile   = "tables.json"
	countersFile = "counters.json"
)

// stateDoc pairs one entity-set document with the value it encodes.
type stateDoc struct {
	name string
	v    any
}

// FileStore persists the state as JSON documents under a data directory,
// one file per entity set. A save is all-or-nothing across the whole set:
// every document is encoded and staged before any live file is replaced,
// and a failed replacement puts the already-swapped files back, so a save
// never leaves some entity sets new and others old.
type FileStore struct {
	dir string
}

// NewFileStore returns a file store rooted at dir. The directory is created
// lazily on the first save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (f *FileStore) Load() (*model.State, error) {
	state := model.NewState()

	if err := f.readJSON(productsFile, &state.Products); err != nil {
		return nil, err
	}
	if err := f.readJSON(tabsFile, &state.Tabs); err != nil {
		return nil, err
	}
	if err := f.readJSON(tablesFile, &state.Tables); err != nil {
		return nil, err
	}
	if err := f.readJSON(countersFile, &state.Counters); err != nil {
		return nil, err
	}

	if state.Counters.NextProductID < 1 {
		state.Counters.NextProductID = 1
	}
	if state.Counters.NextTabID < 1 {
		state.Counters.NextTabID = 1
	}
	return state, nil
}

func (f *FileStore) Save(state *model.State) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	docs := []stateDoc{
		{productsFile, state.Products},
		{tabsFile, state.Tabs},
		{tablesFile, state.Tables},
		{countersFile, state.Counters},
	}

	// Encode everything up front so an encoding failure touches no files.
	encoded := make([][]byte, len(docs))
	for i, doc := range docs {
		data, err := json.MarshalIndent(doc.v, "", "  ")
		if err != nil {
			return fmt.Errorf("encode %s: %w", doc.name, err)
		}
		encoded[i] = data
	}

	// Stage all temp files and remember the current documents before any
	// live file is replaced. One logical save touches several entity sets
	// (a line item moves both product stock and tab items), so a partial
	// swap would leave the set inconsistent on disk.
	tmps := make([]string, len(docs))
	prev := make([][]byte, len(docs))
	for i, doc := range docs {
		path := filepath.Join(f.dir, doc.name)
		old, err := os.ReadFile(path)
		if err == nil {
			prev[i] = old
		} else if !os.IsNotExist(err) {
			f.removeAll(tmps[:i])
			return fmt.Errorf("read current %s: %w", doc.name, err)
		}

		tmp := path + ".tmp"
		if err := os.WriteFile(tmp, encoded[i], 0o644); err != nil {
			f.removeAll(tmps[:i])
			return fmt.Errorf("write %s: %w", doc.name, err)
		}
		tmps[i] = tmp
	}

	// Swap phase. On failure the documents already swapped are restored
	// from their previous content.
	for i, doc := range docs {
		path := filepath.Join(f.dir, doc.name)
		if err := os.Rename(tmps[i], path); err != nil {
			f.restore(docs[:i], prev[:i])
			f.removeAll(tmps[i:])
			return fmt.Errorf("replace %s: %w", doc.name, err)
		}
	}
	return nil
}

func (f *FileStore) removeAll(tmps []string) {
	for _, tmp := range tmps {
		if tmp != "" {
			os.Remove(tmp)
		}
	}
}

func (f *FileStore) restore(docs []stateDoc, prev [][]byte) {
	for i, doc := range docs {
		path := filepath.Join(f.dir, doc.name)
		if prev[i] == nil {
			os.Remove(path)
			continue
		}
		os.WriteFile(path, prev[i], 0o644)
	}
}

// readJSON decodes one document into v. A missing file is not an error:
// the store simply starts empty.
func (f *FileStore) readJSON(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(f.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}
