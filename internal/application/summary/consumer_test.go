package summary

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"unicode/utf8"

	domainSummary "github.com/feedify/backend/internal/domain/summary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkedReader 每次 Read 返回一个预设块，最后返回 finalErr
type chunkedReader struct {
	chunks   [][]byte
	finalErr error
}

func (r *chunkedReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		if r.finalErr != nil {
			return 0, r.finalErr
		}
		return 0, io.EOF
	}
	n := copy(p, r.chunks[0])
	r.chunks[0] = r.chunks[0][n:]
	if len(r.chunks[0]) == 0 {
		r.chunks = r.chunks[1:]
	}
	return n, nil
}

func newChunkedReader(parts ...string) *chunkedReader {
	r := &chunkedReader{}
	for _, p := range parts {
		r.chunks = append(r.chunks, []byte(p))
	}
	return r
}

// countingPacer 记录停顿次数
type countingPacer struct {
	pauses int
	err    error
}

func (p *countingPacer) Pause(ctx context.Context) error {
	p.pauses++
	return p.err
}

func TestAccumulate_AppendsInArrivalOrder(t *testing.T) {
	session := domainSummary.NewSession()
	pacer := &countingPacer{}
	var rendered []string

	err := Accumulate(context.Background(), newChunkedReader("Users ", "liked ", "it."), session, pacer, func(f string) {
		rendered = append(rendered, f)
	})
	require.NoError(t, err)

	assert.Equal(t, domainSummary.StateComplete, session.State())
	assert.Equal(t, "Users liked it.", session.Text())
	assert.Equal(t, []string{"Users ", "liked ", "it."}, rendered)
	assert.Equal(t, 2, pacer.pauses, "只在片段之间停顿")
}

func TestAccumulate_EmptyBody(t *testing.T) {
	session := domainSummary.NewSession()

	err := Accumulate(context.Background(), newChunkedReader(), session, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, domainSummary.StateComplete, session.State())
	assert.Empty(t, session.Fragments())
}

func TestAccumulate_ReadErrorKeepsRenderedFragments(t *testing.T) {
	session := domainSummary.NewSession()
	reader := newChunkedReader("f1", "f2")
	reader.finalErr = errors.New("unexpected EOF")

	err := Accumulate(context.Background(), reader, session, domainSummary.NoPacer{}, nil)
	require.Error(t, err)

	assert.Equal(t, domainSummary.StateFailed, session.State())
	assert.Equal(t, "f1f2", session.Text())
	assert.ErrorIs(t, session.Err(), reader.finalErr)
}

func TestAccumulate_PacerCancellationFailsSession(t *testing.T) {
	session := domainSummary.NewSession()
	pacer := &countingPacer{err: context.Canceled}

	err := Accumulate(context.Background(), newChunkedReader("a", "b"), session, pacer, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, domainSummary.StateFailed, session.State())
	assert.Equal(t, "a", session.Text())
}

func TestAccumulate_DoesNotSplitRunes(t *testing.T) {
	text := "反馈很好, naïve café €"
	raw := []byte(text)

	// 在每个可能的位置切开
	for cut := 1; cut < len(raw); cut++ {
		session := domainSummary.NewSession()
		reader := &chunkedReader{chunks: [][]byte{append([]byte(nil), raw[:cut]...), append([]byte(nil), raw[cut:]...)}}

		err := Accumulate(context.Background(), reader, session, nil, nil)
		require.NoError(t, err)

		for _, f := range session.Fragments() {
			assert.True(t, utf8.ValidString(f), "fragment %q is not valid UTF-8 (cut=%d)", f, cut)
		}
		assert.Equal(t, text, session.Text())
	}
}

func TestAccumulate_ClearedSessionStopsConsumption(t *testing.T) {
	session := domainSummary.NewSession()
	calls := 0

	err := Accumulate(context.Background(), newChunkedReader("a", "b", "c"), session, nil, func(string) {
		calls++
		session.Clear()
	})

	assert.ErrorIs(t, err, domainSummary.ErrSessionNotStreaming)
	assert.Equal(t, 1, calls)
	assert.Equal(t, domainSummary.StateIdle, session.State())
}

func TestAccumulate_BusySession(t *testing.T) {
	session := domainSummary.NewSession()
	require.NoError(t, session.Begin())

	err := Accumulate(context.Background(), strings.NewReader("x"), session, nil, nil)
	assert.ErrorIs(t, err, domainSummary.ErrSessionBusy)
}

func TestCompleteUTF8Prefix(t *testing.T) {
	euro := []byte("€") // 3 字节
	tests := []struct {
		name     string
		input    []byte
		expected int
	}{
		{"empty", nil, 0},
		{"ascii", []byte("abc"), 3},
		{"complete multibyte", append([]byte("a"), euro...), 4},
		{"one byte of three", append([]byte("a"), euro[0]), 1},
		{"two bytes of three", append([]byte("a"), euro[:2]...), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, completeUTF8Prefix(tt.input))
		})
	}
}
