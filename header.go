package vocabtree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hupe1980/vocabtree/scoring"
)

// Bounds of the structural header parameters.
const (
	MinBranchingFactor = 1
	MaxBranchingFactor = 20
	MinDepth           = 1
	MaxDepth           = 10
)

// headerFields is the number of leading tokens a header line must carry.
const headerFields = 4

// Header holds the vocabulary parameters persisted in the first line of the
// text format. They are authoritative: they are validated before any node
// storage is allocated and are never inferred from the records.
type Header struct {
	// BranchingFactor is k, the maximum number of children per node.
	BranchingFactor int
	// Depth is L, the number of levels below the root.
	Depth     int
	Scoring   scoring.Type
	Weighting scoring.Weighting
}

// ParseHeader parses and validates a header line of the form
// "k L scoring weighting". Tokens may be separated by any amount of
// whitespace; tokens after the fourth are ignored.
func ParseHeader(line string) (Header, error) {
	fields := strings.Fields(line)
	if len(fields) < headerFields {
		return Header{}, &HeaderError{
			Kind:  ErrMalformedHeader,
			cause: fmt.Errorf("expected %d fields, got %d", headerFields, len(fields)),
		}
	}

	names := [headerFields]string{"branching_factor", "depth", "scoring", "weighting"}
	var values [headerFields]int
	for i := range values {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return Header{}, &HeaderError{Kind: ErrMalformedHeader, Field: names[i], Value: fields[i], cause: err}
		}
		values[i] = v
	}

	h := Header{
		BranchingFactor: values[0],
		Depth:           values[1],
		Scoring:         scoring.Type(values[2]),
		Weighting:       scoring.Weighting(values[3]),
	}
	if err := h.Validate(); err != nil {
		return Header{}, err
	}
	return h, nil
}

// Validate checks every parameter against its allowed range.
// The scoring and weighting ranges are owned by the scoring package.
func (h Header) Validate() error {
	if h.BranchingFactor < MinBranchingFactor || h.BranchingFactor > MaxBranchingFactor {
		return outOfRange("branching_factor", h.BranchingFactor, MinBranchingFactor, MaxBranchingFactor)
	}
	if h.Depth < MinDepth || h.Depth > MaxDepth {
		return outOfRange("depth", h.Depth, MinDepth, MaxDepth)
	}
	if !h.Scoring.Valid() {
		return &HeaderError{
			Kind:  ErrInvalidParameters,
			Field: "scoring",
			Value: strconv.Itoa(int(h.Scoring)),
			cause: fmt.Errorf("unknown scoring type %s", h.Scoring),
		}
	}
	if !h.Weighting.Valid() {
		return &HeaderError{
			Kind:  ErrInvalidParameters,
			Field: "weighting",
			Value: strconv.Itoa(int(h.Weighting)),
			cause: fmt.Errorf("unknown weighting type %s", h.Weighting),
		}
	}
	return nil
}

func outOfRange(field string, v, lo, hi int) error {
	return &HeaderError{
		Kind:  ErrInvalidParameters,
		Field: field,
		Value: strconv.Itoa(v),
		cause: fmt.Errorf("out of range [%d, %d]", lo, hi),
	}
}

// String returns the header line without its line break.
func (h Header) String() string {
	return string(h.appendFields(nil))
}

// AppendText appends the header line, including its line break, to b.
func (h Header) AppendText(b []byte) ([]byte, error) {
	return append(h.appendFields(b), '\n'), nil
}

func (h Header) appendFields(b []byte) []byte {
	b = strconv.AppendInt(b, int64(h.BranchingFactor), 10)
	b = append(b, ' ')
	b = strconv.AppendInt(b, int64(h.Depth), 10)
	b = append(b, ' ')
	b = strconv.AppendInt(b, int64(h.Scoring), 10)
	b = append(b, ' ')
	return strconv.AppendInt(b, int64(h.Weighting), 10)
}

// ExpectedNodes returns the node count of a full k-ary tree of depth L,
// root included: (k^(L+1) - 1) / (k - 1). It is a sizing hint only; real
// trees are rarely full. Returns 0 for an invalid header.
func (h Header) ExpectedNodes() int64 {
	if h.Validate() != nil {
		return 0
	}
	if h.BranchingFactor == 1 {
		return int64(h.Depth) + 1
	}
	k := int64(h.BranchingFactor)
	return (pow(k, h.Depth+1) - 1) / (k - 1)
}

// ExpectedWords returns k^(L+1), the word capacity hint used when loading.
// Returns 0 for an invalid header.
func (h Header) ExpectedWords() int64 {
	if h.Validate() != nil {
		return 0
	}
	return pow(int64(h.BranchingFactor), h.Depth+1)
}

// pow is exact for the header bounds: 20^11 fits in an int64.
func pow(base int64, exp int) int64 {
	r := int64(1)
	for range exp {
		r *= base
	}
	return r
}
