// Package items defines the labelled items pickr offers and loads them from
// files.
package items

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gosimple/slug"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned by Load for an unknown file extension.
var ErrUnsupportedFormat = errors.New("unsupported items format")

// Item is a selectable entry. Two items are the same item when their IDs
// match, whatever their labels.
type Item struct {
	ID    string `json:"id" yaml:"id" toml:"id"`
	Label string `json:"label" yaml:"label" toml:"label"`
}

// New returns an item whose ID is derived from label.
func New(label string) Item {
	return Item{ID: slug.Make(label), Label: label}
}

func (i Item) String() string {
	return i.Label
}

// Equal is the comparator for items.
func Equal(a, b Item) bool {
	return a.ID == b.ID
}

// Label is the search key of an item.
func Label(i Item) string {
	return i.Label
}

var fruits = []string{
	"Apple", "Banana", "Coconut", "Orange", "Watermelon", "Pear", "Strawberry",
	"Peach", "Mango", "Blueberry", "Kiwi", "Lime", "Grape", "Raspberry",
}

// Fruits returns the built-in demo set.
func Fruits() []Item {
	out := make([]Item, len(fruits))
	for i, label := range fruits {
		out[i] = New(label)
	}
	return out
}

// Load reads items from path. The format follows the extension:
//
//   - .yaml, .yml: a list of strings or of {id, label} maps
//   - .json: same shapes; jsonPath selects the array with gjson syntax
//   - .toml: an [[items]] array of tables
//   - .txt or no extension: one label per non-blank line
//
// Missing IDs are derived from labels and entries without a label are dropped.
func Load(path, jsonPath string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading items: %w", err)
	}

	var list []Item
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		list, err = parseYAML(data)
	case ".json":
		list, err = parseJSON(data, jsonPath)
	case ".toml":
		list, err = parseTOML(data)
	case ".txt", "":
		list = parseLines(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return normalize(list), nil
}

// entry accepts either a bare label or a full item.
type entry Item

func (e *entry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		e.Label = node.Value
		return nil
	}
	return node.Decode((*Item)(e))
}

func parseYAML(data []byte) ([]Item, error) {
	var entries []entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	out := make([]Item, len(entries))
	for i, e := range entries {
		out[i] = Item(e)
	}
	return out, nil
}

func parseJSON(data []byte, path string) ([]Item, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid json")
	}
	root := gjson.ParseBytes(data)
	if path != "" {
		root = root.Get(path)
	}
	if !root.IsArray() {
		return nil, fmt.Errorf("expected an array at %q", path)
	}

	var out []Item
	root.ForEach(func(_, value gjson.Result) bool {
		switch value.Type {
		case gjson.String:
			out = append(out, Item{Label: value.String()})
		case gjson.JSON:
			var item Item
			if err := json.Unmarshal([]byte(value.Raw), &item); err == nil {
				out = append(out, item)
			}
		}
		return true
	})
	return out, nil
}

func parseTOML(data []byte) ([]Item, error) {
	var doc struct {
		Items []Item `toml:"items"`
	}
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, err
	}
	return doc.Items, nil
}

func parseLines(data []byte) []Item {
	var out []Item
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" && !strings.HasPrefix(line, "#") {
			out = append(out, Item{Label: line})
		}
	}
	return out
}

func normalize(list []Item) []Item {
	out := make([]Item, 0, len(list))
	for _, item := range list {
		item.Label = strings.TrimSpace(item.Label)
		if item.Label == "" {
			continue
		}
		if item.ID == "" {
			item.ID = slug.Make(item.Label)
		}
		out = append(out, item)
	}
	return out
}
