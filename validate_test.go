package vocabtree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/vocabtree/testutil"
)

func validationErrors(t *testing.T, err error) []*ValidationError {
	t.Helper()

	joined, ok := err.(interface{ Unwrap() []error })
	require.True(t, ok, "expected joined errors, got %v", err)

	var out []*ValidationError
	for _, e := range joined.Unwrap() {
		var ve *ValidationError
		require.True(t, errors.As(e, &ve))
		out = append(out, ve)
	}
	return out
}

func TestValidate_Valid(t *testing.T) {
	rng := testutil.NewRNG(9)
	text, _ := rng.VocabularyText(testutil.VocabularyConfig{K: 5, L: 4, Bytes: 3, Sparse: true})

	v, err := decodeString(t, text)
	require.NoError(t, err)
	assert.NoError(t, v.Validate())
}

func TestValidate_Empty(t *testing.T) {
	v := New[[]byte](tiny())
	assert.ErrorIs(t, v.Validate(), ErrEmptyVocabulary)
}

func TestValidate_ChildlessInternalNodes(t *testing.T) {
	v, err := decodeString(t, fourChildren)
	require.NoError(t, err)

	errs := validationErrors(t, v.Validate())
	require.Len(t, errs, 3)
	for i, id := range []NodeID{1, 3, 4} {
		assert.Equal(t, id, errs[i].Node)
		assert.Equal(t, "internal node has no children", errs[i].Reason)
	}
}

func TestValidate_Corrupted(t *testing.T) {
	text := `2 2 0 0
0 0 1 1 1 0
0 1 2 2 2 0
1 1 3 3 3 0.5
`
	tests := []struct {
		name    string
		corrupt func(v *Vocabulary[[]byte])
		node    NodeID
	}{
		{
			name:    "wrong parent",
			corrupt: func(v *Vocabulary[[]byte]) { v.nodes[3].Parent = 2 },
			node:    1,
		},
		{
			name: "word has children",
			corrupt: func(v *Vocabulary[[]byte]) {
				v.nodes[2].Children = []NodeID{3}
				v.nodes[1].Children = nil
				v.nodes[3].Parent = 2
			},
			node: 1,
		},
		{
			name:    "word table mismatch",
			corrupt: func(v *Vocabulary[[]byte]) { v.words[0], v.words[1] = v.words[1], v.words[0] },
			node:    2,
		},
		{
			name:    "duplicate child",
			corrupt: func(v *Vocabulary[[]byte]) { v.nodes[0].Children = append(v.nodes[0].Children, 3) },
			node:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := decodeString(t, text)
			require.NoError(t, err)
			require.NoError(t, v.Validate())

			tt.corrupt(v)

			errs := validationErrors(t, v.Validate())
			require.NotEmpty(t, errs)
			assert.Equal(t, tt.node, errs[0].Node, "%v", errs)
		})
	}
}
