package vocabtree

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strconv"
	"time"
)

// writeBufferSize is the buffered writer size used by Encode.
const writeBufferSize = 64 * 1024

// Encode writes the vocabulary in text format to w: the header line followed
// by one record per node in id order, root excluded.
//
// Weights are written in the shortest form that parses back to the same
// float64. Errors from w are returned unchanged; nothing else can fail once
// the header is valid.
func (v *Vocabulary[D]) Encode(ctx context.Context, w io.Writer) error {
	start := time.Now()

	err := v.encode(ctx, w)

	v.opts.metrics.RecordEncode(len(v.nodes), time.Since(start), err)
	v.opts.logger.LogEncode(ctx, len(v.nodes), err)
	return err
}

// MarshalText implements encoding.TextMarshaler.
func (v *Vocabulary[D]) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.Encode(context.Background(), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v *Vocabulary[D]) encode(ctx context.Context, w io.Writer) error {
	if v.Empty() {
		return ErrEmptyVocabulary
	}
	if err := v.header.Validate(); err != nil {
		return err
	}

	bw := bufio.NewWriterSize(w, writeBufferSize)

	line, _ := v.header.AppendText(make([]byte, 0, 256))
	if _, err := bw.Write(line); err != nil {
		return err
	}

	tokens := make([]string, 0, v.codec.Arity())
	for i := 1; i < len(v.nodes); i++ {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		n := &v.nodes[i]
		line = strconv.AppendUint(line[:0], uint64(n.Parent), 10)
		if n.IsLeaf() {
			line = append(line, " 1"...)
		} else {
			line = append(line, " 0"...)
		}

		tokens = v.codec.Append(tokens[:0], n.Descriptor)
		for _, tok := range tokens {
			line = append(line, ' ')
			line = append(line, tok...)
		}

		line = append(line, ' ')
		line = strconv.AppendFloat(line, n.Weight, 'g', -1, 64)
		line = append(line, '\n')

		if _, err := bw.Write(line); err != nil {
			return err
		}
	}

	return bw.Flush()
}
