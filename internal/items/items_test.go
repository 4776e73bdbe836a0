package items

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFruits(t *testing.T) {
	list := Fruits()
	require.Len(t, list, 14)
	assert.Equal(t, Item{ID: "apple", Label: "Apple"}, list[0])
	assert.Equal(t, Item{ID: "raspberry", Label: "Raspberry"}, list[13])
}

func TestEqualComparesIDs(t *testing.T) {
	assert.True(t, Equal(Item{ID: "a", Label: "Apple"}, Item{ID: "a", Label: "Renamed"}))
	assert.False(t, Equal(Item{ID: "a", Label: "Same"}, Item{ID: "b", Label: "Same"}))
	assert.Equal(t, "Dragon Fruit", Label(New("Dragon Fruit")))
	assert.Equal(t, "dragon-fruit", New("Dragon Fruit").ID)
}

func TestLoad(t *testing.T) {
	want := []Item{
		{ID: "apple", Label: "Apple"},
		{ID: "b1", Label: "Banana"},
	}

	tests := []struct {
		name     string
		file     string
		content  string
		jsonPath string
	}{
		{"yaml mixed", "items.yaml", "- Apple\n- id: b1\n  label: Banana\n- id: empty\n", ""},
		{"yml", "items.yml", "- label: Apple\n- {id: b1, label: Banana}\n", ""},
		{"json array", "items.json", `["Apple", {"id": "b1", "label": "Banana"}, 42]`, ""},
		{"json path", "items.json", `{"data": {"fruit": ["Apple", {"id": "b1", "label": "Banana"}]}}`, "data.fruit"},
		{"toml", "items.toml", "[[items]]\nlabel = \"Apple\"\n\n[[items]]\nid = \"b1\"\nlabel = \"Banana\"\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := Load(writeFile(t, tt.file, tt.content), tt.jsonPath)
			require.NoError(t, err)
			assert.Equal(t, want, list)
		})
	}
}

func TestLoadText(t *testing.T) {
	list, err := Load(writeFile(t, "items.txt", "# fruit\nApple\n\n  Kiwi  \n"), "")
	require.NoError(t, err)
	assert.Equal(t, []Item{New("Apple"), New("Kiwi")}, list)

	list, err = Load(writeFile(t, "ITEMS", "Lime\n"), "")
	require.NoError(t, err)
	assert.Equal(t, []Item{New("Lime")}, list)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(writeFile(t, "items.csv", "a,b"), "")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"), "")
	assert.ErrorContains(t, err, "reading items")

	_, err = Load(writeFile(t, "items.json", `{"data": 1}`), "data")
	assert.ErrorContains(t, err, "expected an array")

	_, err = Load(writeFile(t, "items.json", `{nope`), "")
	assert.ErrorContains(t, err, "invalid json")

	_, err = Load(writeFile(t, "items.toml", "items = ["), "")
	assert.ErrorContains(t, err, "parsing items.toml")
}
