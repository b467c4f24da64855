package rtree

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func populatedIndex(t *testing.T) *Index[*item] {
	t.Helper()
	idx := newIndex(4)
	items := make([]*item, 0, 40)
	for i := 0; i < 40; i++ {
		f := float64(i)
		items = append(items, newItem(i, f, f, f+1, f+1))
	}
	require.NoError(t, idx.Load(items))
	return idx
}

// Scenario 5: round-trip.
func TestSerialize_RoundTrip(t *testing.T) {
	idx := populatedIndex(t)
	doc := idx.Serialize()

	restored := newIndex(4)
	require.NoError(t, restored.Deserialize(doc))

	assert.ElementsMatch(t, idsOf(idx.All()), idsOf(restored.All()))
	assert.Equal(t, idx.Height(), restored.Height())

	queries := []BoundingRect{
		rect(0, 0, 3, 3),
		rect(-1, -1, 3, 3),
		rect(10, 10, 11, 11),
		rect(100, 100, 200, 200),
	}
	for _, q := range queries {
		assert.ElementsMatch(t, idsOf(idx.Search(q)), idsOf(restored.Search(q)))
		assert.Equal(t, idx.Collides(q), restored.Collides(q))
	}
}

func TestSerialize_JSONRoundTrip(t *testing.T) {
	idx := populatedIndex(t)
	doc := idx.Serialize()

	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded Document[*item]
	require.NoError(t, json.Unmarshal(raw, &decoded))

	restored := newIndex(4)
	require.NoError(t, restored.Deserialize(decoded))
	assert.ElementsMatch(t, idsOf(idx.All()), idsOf(restored.All()))
}

func TestSerialize_DocumentFieldNames(t *testing.T) {
	idx := newIndex(4)
	require.NoError(t, idx.Insert(newItem(0, 0, 0, 1, 1)))

	raw, err := json.Marshal(idx.Serialize())
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(raw, &generic))
	assert.Contains(t, generic, "max_entries")
	assert.Contains(t, generic, "min_entries")
	assert.Contains(t, generic, "root")

	root := generic["root"].(map[string]any)
	assert.Contains(t, root, "bbox")
	assert.Contains(t, root, "height")
	assert.Contains(t, root, "is_leaf")
	assert.Contains(t, root, "children")
}

func TestDeserialize_RejectsMalformedDocument(t *testing.T) {
	idx := newIndex(4)
	require.NoError(t, idx.Insert(newItem(0, 0, 0, 1, 1)))
	before := idsOf(idx.All())

	bad := Document[*item]{
		MaxEntries: 4,
		MinEntries: 2,
		Root: DocNode[*item]{
			Height: 2,  // internal height...
			IsLeaf: true, // ...but flagged as a leaf: contradiction
		},
	}
	err := idx.Deserialize(bad)
	var malformed *MalformedDocumentError
	assert.ErrorAs(t, err, &malformed)
	assert.Equal(t, before, idsOf(idx.All()), "failed deserialize must not mutate the live tree")
}

func TestDeserialize_RejectsLeafWithChildren(t *testing.T) {
	idx := newIndex(4)
	bad := Document[*item]{
		MaxEntries: 4,
		MinEntries: 2,
		Root: DocNode[*item]{
			Height:   1,
			IsLeaf:   true,
			Children: []DocNode[*item]{{Height: 1, IsLeaf: true}},
		},
	}
	err := idx.Deserialize(bad)
	var malformed *MalformedDocumentError
	assert.ErrorAs(t, err, &malformed)
}
