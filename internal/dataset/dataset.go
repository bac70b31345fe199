// Package dataset loads benchmark test items. Items come from JSON
// files under a per-category directory layout, with an embedded
// default set used for any category that has no files on disk.
package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"haltbench/internal/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	ErrEmptyDataset = errors.New("dataset has no items")
	ErrDuplicateID  = errors.New("duplicate test id")
	ErrInvalidItem  = errors.New("invalid test item")
)

// liteItemsPerCategory caps each category in lite mode.
const liteItemsPerCategory = 5

// file is the on-disk shape: one subcategory's items per file.
type file struct {
	Category    types.Category   `json:"category"`
	Subcategory string           `json:"subcategory"`
	Items       []types.TestItem `json:"items"`
}

// Loader reads test items for a run.
type Loader struct {
	basePath string
	log      *zap.Logger
}

// NewLoader builds a loader rooted at basePath. An empty basePath
// serves only the embedded defaults.
func NewLoader(basePath string, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{basePath: basePath, log: log.Named("dataset")}
}

// Load returns the items for the requested categories, sorted by
// category then id. A nil categories slice means all categories. Lite
// mode caps each category at a handful of items for quick runs.
func (l *Loader) Load(categories []types.Category, lite bool) ([]types.TestItem, error) {
	if categories == nil {
		categories = types.AllCategories()
	}

	var items []types.TestItem
	for _, cat := range categories {
		catItems, err := l.loadCategory(cat)
		if err != nil {
			return nil, err
		}
		if lite && len(catItems) > liteItemsPerCategory {
			catItems = catItems[:liteItemsPerCategory]
		}
		items = append(items, catItems...)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		return items[i].ID < items[j].ID
	})

	if len(items) == 0 {
		return nil, ErrEmptyDataset
	}
	return items, nil
}

// loadCategory prefers on-disk files and falls back to the embedded
// defaults.
func (l *Loader) loadCategory(cat types.Category) ([]types.TestItem, error) {
	if l.basePath != "" {
		dir := filepath.Join(l.basePath, strings.ToLower(string(cat)))
		items, err := l.loadDir(dir, cat)
		if err != nil {
			return nil, err
		}
		if len(items) > 0 {
			l.log.Debug("loaded category from disk",
				zap.String("category", string(cat)), zap.Int("items", len(items)))
			return items, nil
		}
	}
	return builtinItems(cat), nil
}

func (l *Loader) loadDir(dir string, cat types.Category) ([]types.TestItem, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read dataset dir %s: %w", dir, err)
	}

	var items []types.TestItem
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		var f file
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}

		for _, item := range f.Items {
			if item.Category == "" {
				item.Category = cat
			}
			if item.Subcategory == "" {
				item.Subcategory = f.Subcategory
			}
			items = append(items, item)
		}
	}
	return items, nil
}

// Validate checks a loaded item set without querying any provider:
// unique ids, non-empty prompts, known categories, recognized
// expectation kinds.
func Validate(items []types.TestItem) error {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item.ID == "" || strings.TrimSpace(item.Prompt) == "" {
			return fmt.Errorf("%w: %q has empty id or prompt", ErrInvalidItem, item.ID)
		}
		if !item.Category.Valid() {
			return fmt.Errorf("%w: %q has unknown category %q", ErrInvalidItem, item.ID, item.Category)
		}
		if !validExpectation(item.Expected.Kind) {
			return fmt.Errorf("%w: %q has unknown expectation %q", ErrInvalidItem, item.ID, item.Expected.Kind)
		}
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateID, item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	return nil
}

func validExpectation(kind types.ExpectationKind) bool {
	switch kind {
	case types.ExpectExactAnswer, types.ExpectContainsAnswer, types.ExpectSemanticAnswer,
		types.ExpectRefusal, types.ExpectDetection, types.ExpectUncertainty,
		types.ExpectReproducible, types.ExpectCatchFlaw:
		return true
	}
	return false
}
