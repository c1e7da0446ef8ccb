package vocabtree

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unsafe"

	"github.com/hupe1980/vocabtree/descriptor"
	"github.com/hupe1980/vocabtree/scoring"
)

const (
	// cancelCheckInterval is how many records are processed between context checks.
	cancelCheckInterval = 4096

	// maxPreallocNodes caps the arena pre-allocation regardless of the
	// header, which may describe a tree far larger than the file. Larger
	// trees grow by append as records arrive.
	maxPreallocNodes = 1 << 14

	// recordFixedFields counts the parent, leaf flag and weight fields.
	recordFixedFields = 3
)

// Decode reads a vocabulary in text format from r and returns it.
func Decode[D any](ctx context.Context, r io.Reader, codec descriptor.Codec[D], optFns ...Option) (*Vocabulary[D], error) {
	v := New(codec, optFns...)
	if err := v.Decode(ctx, r); err != nil {
		return nil, err
	}
	return v, nil
}

// Decode replaces the tree with the vocabulary read from r.
//
// The first line is the header; every following non-blank line is a node
// record "parent is_leaf d_1 ... d_N weight" where N is the codec arity.
// Nodes receive sequential ids starting at 1 and parents must precede their
// children. On error the previously loaded tree is left untouched.
func (v *Vocabulary[D]) Decode(ctx context.Context, r io.Reader) error {
	start := time.Now()

	t, err := decodeTree(ctx, r, v.codec, &v.opts)

	v.opts.metrics.RecordDecode(len(t.nodes), len(t.words), time.Since(start), err)
	v.opts.logger.LogDecode(ctx, len(t.nodes), len(t.words), err)

	if err != nil {
		return err
	}
	v.install(t)
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Vocabulary[D]) UnmarshalText(text []byte) error {
	return v.Decode(context.Background(), bytes.NewReader(text))
}

// decodeTree builds a fresh tree from r. The returned tree carries the nodes
// decoded so far even on error, for logging only.
func decodeTree[D any](ctx context.Context, r io.Reader, codec descriptor.Codec[D], o *options) (tree[D], error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, min(64*1024, o.maxLineSize)), o.maxLineSize)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			if errors.Is(err, bufio.ErrTooLong) {
				return tree[D]{}, &HeaderError{Kind: ErrMalformedHeader, cause: err}
			}
			return tree[D]{}, fmt.Errorf("read header: %w", err)
		}
		return tree[D]{}, &HeaderError{Kind: ErrMalformedHeader, cause: io.ErrUnexpectedEOF}
	}

	h, err := ParseHeader(sc.Text())
	if err != nil {
		return tree[D]{}, err
	}

	scorer, err := scoring.New(h.Scoring)
	if err != nil {
		return tree[D]{}, err
	}

	t := tree[D]{header: h, scorer: scorer}
	release := t.reserve(h, o)
	defer release()

	d := recordDecoder[D]{
		codec:  codec,
		arity:  codec.Arity(),
		k:      h.BranchingFactor,
		tokens: make([]string, 0, codec.Arity()+recordFixedFields),
	}

	t.nodes = append(t.nodes, Node[D]{ID: RootID, Parent: RootID, WordID: NoWord})

	line := 1
	for sc.Scan() {
		line++
		if line%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return t, err
			}
		}

		if err := d.decode(&t, sc.Text(), line); err != nil {
			return t, err
		}
	}

	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return t, &RecordError{Kind: ErrMalformedRecord, Line: line + 1, Field: "line", cause: err}
		}
		return t, fmt.Errorf("read line %d: %w", line+1, err)
	}

	return t, nil
}

// reserve pre-sizes the arena and word table from the full-tree formulas if
// the memory budget allows it. The returned func releases the reservation.
func (t *tree[D]) reserve(h Header, o *options) func() {
	nodes := min(h.ExpectedNodes(), maxPreallocNodes)
	words := min(h.ExpectedWords(), maxPreallocNodes)

	var zero Node[D]
	bytes := nodes*int64(unsafe.Sizeof(zero)) + words*int64(unsafe.Sizeof(NodeID(0)))
	if err := o.resource.AcquireMemory(bytes); err != nil {
		o.logger.Debug("skipping pre-allocation", "bytes", bytes, "error", err)
		return func() {}
	}

	t.nodes = make([]Node[D], 0, nodes)
	t.words = make([]NodeID, 0, words)
	return func() { o.resource.ReleaseMemory(bytes) }
}

type recordDecoder[D any] struct {
	codec  descriptor.Codec[D]
	arity  int
	k      int
	tokens []string
}

// decode parses one record line and links the new node into t.
func (d *recordDecoder[D]) decode(t *tree[D], text string, line int) error {
	fields := appendFields(d.tokens[:0], text)
	d.tokens = fields[:0]
	if len(fields) == 0 {
		return nil
	}

	malformed := func(field string, cause error) error {
		return &RecordError{Kind: ErrMalformedRecord, Line: line, Field: field, cause: cause}
	}

	want := d.arity + recordFixedFields
	if len(fields) < want {
		return malformed(missingField(len(fields), d.arity), fmt.Errorf("expected %d fields, got %d", want, len(fields)))
	}
	if len(fields) > want {
		return malformed("weight", fmt.Errorf("expected %d fields, got %d", want, len(fields)))
	}

	parent, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return malformed("parent", err)
	}

	flag, err := strconv.Atoi(fields[1])
	if err != nil {
		return malformed("is_leaf", err)
	}
	if flag != 0 && flag != 1 {
		return malformed("is_leaf", fmt.Errorf("expected 0 or 1, got %d", flag))
	}

	desc, err := d.codec.Parse(fields[2 : 2+d.arity])
	if err != nil {
		return malformed("descriptor", err)
	}

	weight, err := strconv.ParseFloat(fields[len(fields)-1], 64)
	if err != nil {
		return malformed("weight", err)
	}

	if len(t.nodes) > maxNodes {
		return malformed("parent", fmt.Errorf("more than %d nodes", maxNodes))
	}
	id := NodeID(len(t.nodes))

	if parent < 0 || parent >= int64(id) {
		return &RecordError{
			Kind:  ErrDanglingParent,
			Line:  line,
			Field: "parent",
			cause: fmt.Errorf("parent %d is not defined before node %d", parent, id),
		}
	}
	pid := NodeID(parent)
	if t.nodes[pid].IsLeaf() {
		return malformed("parent", fmt.Errorf("parent %d is a leaf", pid))
	}

	n := Node[D]{
		ID:         id,
		Parent:     pid,
		Descriptor: desc,
		Weight:     weight,
		WordID:     NoWord,
	}
	if flag == 1 {
		n.WordID = WordID(len(t.words))
		t.words = append(t.words, id)
	} else {
		n.Children = make([]NodeID, 0, d.k)
	}

	t.nodes = append(t.nodes, n)
	t.nodes[pid].Children = append(t.nodes[pid].Children, id)
	return nil
}

// appendFields splits s around runs of whitespace into dst.
func appendFields(dst []string, s string) []string {
	for {
		s = strings.TrimLeft(s, " \t\r\v\f")
		if s == "" {
			return dst
		}
		end := strings.IndexAny(s, " \t\r\v\f")
		if end < 0 {
			return append(dst, s)
		}
		dst = append(dst, s[:end])
		s = s[end:]
	}
}

// missingField names the first field absent from a record with n fields.
func missingField(n, arity int) string {
	switch {
	case n == 0:
		return "parent"
	case n == 1:
		return "is_leaf"
	case n < 2+arity:
		return "descriptor"
	default:
		return "weight"
	}
}
