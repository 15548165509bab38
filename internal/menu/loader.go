package menu

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/Lixing-Zhang/menu-assistant/internal/agent"
	"github.com/Lixing-Zhang/menu-assistant/internal/models"
	"gopkg.in/yaml.v3"
)

var (
	ErrNoSources = errors.New("no menu sources provided")
	ErrEmptyMenu = errors.New("menu has no items")
)

//go:embed default_menu.yaml
var defaultMenu []byte

// Loader reads menu datasets from local files or http(s) URLs
type Loader struct {
	client *http.Client
}

// sourceLoadResult holds the result of loading a single source
type sourceLoadResult struct {
	index int
	items []models.MenuItem
	err   error
}

// document is the mapping form of a dataset: {items: [...]}
type document struct {
	Items []models.MenuItem `yaml:"items"`
}

// NewLoader creates a new menu loader
func NewLoader() *Loader {
	return &Loader{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Default returns the menu embedded in the binary
func Default() ([]models.MenuItem, error) {
	items, err := Parse(bytes.NewReader(defaultMenu))
	if err != nil {
		return nil, fmt.Errorf("failed to parse default menu: %w", err)
	}
	if err := Validate(items); err != nil {
		return nil, fmt.Errorf("invalid default menu: %w", err)
	}
	return items, nil
}

// Load reads every source concurrently and returns their items concatenated
// in source order. Fails if any source fails or the merged menu is invalid.
func (l *Loader) Load(ctx context.Context, sources []string) ([]models.MenuItem, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	resultChan := make(chan sourceLoadResult, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(index int, source string) {
			defer wg.Done()

			items, err := l.loadSource(ctx, source)
			resultChan <- sourceLoadResult{
				index: index,
				items: items,
				err:   err,
			}
		}(i, src)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	// Collect results maintaining order
	results := make([]sourceLoadResult, len(sources))
	for result := range resultChan {
		results[result.index] = result
	}

	var items []models.MenuItem
	for i, result := range results {
		if result.err != nil {
			return nil, fmt.Errorf("failed to load menu source %q: %w", sources[i], result.err)
		}
		items = append(items, result.items...)
	}

	if err := Validate(items); err != nil {
		return nil, err
	}

	return items, nil
}

func (l *Loader) loadSource(ctx context.Context, source string) ([]models.MenuItem, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return l.loadFromURL(ctx, source)
	}
	return loadFromFile(source)
}

// loadFromURL downloads and parses a menu dataset
func (l *Loader) loadFromURL(ctx context.Context, url string) ([]models.MenuItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download menu: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return Parse(resp.Body)
}

func loadFromFile(path string) ([]models.MenuItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open menu file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse decodes a YAML or JSON menu, either a bare item list or a mapping
// with an "items" key. Gzip input is detected by its magic bytes.
func Parse(r io.Reader) ([]models.MenuItem, error) {
	br := bufio.NewReader(r)
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gzReader, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzReader.Close()
		return decode(gzReader)
	}
	return decode(br)
}

// withDefaults gives items without allergens an empty list so they encode as []
func withDefaults(items []models.MenuItem) []models.MenuItem {
	for i := range items {
		if items[i].Allergens == nil {
			items[i].Allergens = []string{}
		}
	}
	return items
}

func decode(r io.Reader) ([]models.MenuItem, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyMenu
		}
		return nil, fmt.Errorf("failed to decode menu: %w", err)
	}

	node := &root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}

	switch node.Kind {
	case yaml.SequenceNode:
		var items []models.MenuItem
		if err := node.Decode(&items); err != nil {
			return nil, fmt.Errorf("failed to decode menu items: %w", err)
		}
		return withDefaults(items), nil
	case yaml.MappingNode:
		var doc document
		if err := node.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode menu items: %w", err)
		}
		return withDefaults(doc.Items), nil
	default:
		return nil, fmt.Errorf("menu must be a list of items or a mapping with an items key")
	}
}

// Validate checks the invariants the classifier relies on: at least one item,
// unique non-empty IDs, names and tags that survive normalization, a category,
// and non-negative calories and prices.
func Validate(items []models.MenuItem) error {
	if len(items) == 0 {
		return ErrEmptyMenu
	}

	seen := make(map[string]bool, len(items))
	for i, item := range items {
		switch {
		case item.ID == "":
			return fmt.Errorf("item %d: id is required", i)
		case seen[item.ID]:
			return fmt.Errorf("item %q: duplicate id", item.ID)
		case agent.Normalize(item.Name) == "":
			return fmt.Errorf("item %q: name must contain letters or digits", item.ID)
		case strings.TrimSpace(item.Category) == "":
			return fmt.Errorf("item %q: category is required", item.ID)
		case item.Calories < 0:
			return fmt.Errorf("item %q: calories must not be negative", item.ID)
		case item.PriceUSD < 0:
			return fmt.Errorf("item %q: price must not be negative", item.ID)
		}
		for _, tag := range item.Tags {
			if agent.Normalize(tag) == "" {
				return fmt.Errorf("item %q: tag %q must contain letters or digits", item.ID, tag)
			}
		}
		seen[item.ID] = true
	}

	return nil
}

// MissingCategories returns the names in categories that no item belongs to.
// Matching is case-insensitive on the category label.
func MissingCategories(items []models.MenuItem, categories []string) []string {
	present := make(map[string]bool, len(items))
	for _, item := range items {
		present[agent.Normalize(item.Category)] = true
	}

	var missing []string
	for _, c := range categories {
		if !present[agent.Normalize(c)] {
			missing = append(missing, c)
		}
	}
	return missing
}
