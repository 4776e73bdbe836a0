package combobox

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointerString(t *testing.T) {
	assert.Equal(t, "none", NoPointer().String())
	assert.Equal(t, "footer", FooterPointer().String())
	assert.Equal(t, "list(3)", ListPointer(3).String())
}

func TestPointerJSON(t *testing.T) {
	data, err := json.Marshal(ListPointer(0))
	require.NoError(t, err)
	assert.JSONEq(t, `{"placement":"list","index":0}`, string(data))

	data, err = json.Marshal(FooterPointer())
	require.NoError(t, err)
	assert.JSONEq(t, `{"placement":"footer"}`, string(data))

	var p Pointer
	require.NoError(t, json.Unmarshal([]byte(`{"placement":"list","index":4}`), &p))
	assert.Equal(t, ListPointer(4), p)

	assert.Error(t, json.Unmarshal([]byte(`{"placement":"list"}`), &p))
	assert.Error(t, json.Unmarshal([]byte(`{"placement":"sideways"}`), &p))
}

func TestFindIndex(t *testing.T) {
	type item struct {
		id    string
		label string
	}
	items := []item{{"a", "Apple"}, {"b", "Banana"}}
	byID := func(x, y item) bool { return x.id == y.id }

	assert.Equal(t, 1, FindIndex(items, item{id: "b", label: "renamed"}, byID))
	assert.Equal(t, -1, FindIndex(items, item{id: "z"}, byID))
	assert.Equal(t, -1, FindIndex(nil, item{id: "a"}, byID))
}

func TestParseEventKind(t *testing.T) {
	for _, kind := range EventKinds() {
		parsed, err := ParseEventKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}

	_, err := ParseEventKind("JUMP")
	assert.Error(t, err)
}

func TestSnapshotJSON(t *testing.T) {
	m, err := New(Config[string]{Items: []string{"x"}, Search: containsFold, Comparator: sameString})
	require.NoError(t, err)
	require.NoError(t, m.Send(Focus()))
	require.NoError(t, m.Send(Down()))

	data, err := json.Marshal(m.Snapshot())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"state":"focused.select"`)
	assert.Contains(t, string(data), `"pointer":{"placement":"list","index":0}`)
}
