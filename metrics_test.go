package vocabtree

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicMetricsCollector(t *testing.T) {
	m := &BasicMetricsCollector{}

	m.RecordDecode(10, 4, 2*time.Millisecond, nil)
	m.RecordDecode(3, 0, 4*time.Millisecond, errors.New("boom"))
	m.RecordEncode(10, time.Millisecond, nil)
	m.RecordBuild(10, 4, time.Second, nil)

	s := m.GetStats()
	assert.Equal(t, int64(2), s.DecodeCount)
	assert.Equal(t, int64(1), s.DecodeErrors)
	assert.Equal(t, int64(3*time.Millisecond), s.DecodeAvgNanos)
	assert.Equal(t, int64(10), s.DecodedNodes)
	assert.Equal(t, int64(4), s.DecodedWords)
	assert.Equal(t, int64(1), s.EncodeCount)
	assert.Equal(t, int64(time.Millisecond), s.EncodeAvgNanos)
	assert.Equal(t, int64(1), s.BuildCount)
	assert.Zero(t, s.BuildErrors)
}

func TestMetrics_DecodeEncode(t *testing.T) {
	m := &BasicMetricsCollector{}

	v, err := decodeString(t, fourChildren, WithMetricsCollector(m))
	require.NoError(t, err)

	_, err = decodeString(t, "4 2 0 0\n3 1 1 2 3 1\n", WithMetricsCollector(m))
	require.Error(t, err)

	var buf bytes.Buffer
	require.NoError(t, v.Encode(context.Background(), &buf))

	s := m.GetStats()
	assert.Equal(t, int64(2), s.DecodeCount)
	assert.Equal(t, int64(1), s.DecodeErrors)
	assert.Equal(t, int64(5), s.DecodedNodes)
	assert.Equal(t, int64(1), s.DecodedWords)
	assert.Equal(t, int64(1), s.EncodeCount)
}

func TestNoopMetricsCollector(t *testing.T) {
	var m MetricsCollector = NoopMetricsCollector{}
	m.RecordDecode(1, 1, time.Second, nil)
	m.RecordEncode(1, time.Second, nil)
	m.RecordBuild(1, 1, time.Second, nil)
}
