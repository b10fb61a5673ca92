package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	domainSummary "github.com/feedify/backend/internal/domain/summary"
	"github.com/feedify/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGenerator 按预设片段输出的生成器
type stubGenerator struct {
	fragments []string
	// failAfter >= 0 时在输出 failAfter 个片段后返回 failErr
	failAfter int
	failErr   error
	openErr   error
	// stallAfter >= 0 时在输出 stallAfter 个片段后停止发送，直到 ctx 取消
	stallAfter int

	calls     atomic.Int32
	prompts   []string
	mu        sync.Mutex
	cancelled chan struct{}
}

func newStubGenerator(fragments ...string) *stubGenerator {
	return &stubGenerator{
		fragments:  fragments,
		failAfter:  -1,
		stallAfter: -1,
		cancelled:  make(chan struct{}),
	}
}

func (g *stubGenerator) record(prompt string) {
	g.calls.Add(1)
	g.mu.Lock()
	g.prompts = append(g.prompts, prompt)
	g.mu.Unlock()
}

func (g *stubGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	g.record(prompt)
	if g.openErr != nil {
		return "", g.openErr
	}
	return strings.Join(g.fragments, ""), nil
}

func (g *stubGenerator) Stream(ctx context.Context, prompt string) (<-chan Chunk, error) {
	g.record(prompt)
	if g.openErr != nil {
		return nil, g.openErr
	}

	ch := make(chan Chunk)
	go func() {
		defer close(ch)
		for i, f := range g.fragments {
			if i == g.failAfter {
				g.send(ctx, ch, Chunk{Err: g.failErr})
				return
			}
			if i == g.stallAfter {
				<-ctx.Done()
				close(g.cancelled)
				return
			}
			if !g.send(ctx, ch, Chunk{Text: f}) {
				close(g.cancelled)
				return
			}
		}
		if g.failAfter == len(g.fragments) {
			g.send(ctx, ch, Chunk{Err: g.failErr})
		}
	}()
	return ch, nil
}

func (g *stubGenerator) send(ctx context.Context, ch chan<- Chunk, c Chunk) bool {
	select {
	case ch <- c:
		return true
	case <-ctx.Done():
		return false
	}
}

// fixedCounter 固定 token 数
type fixedCounter int

func (c fixedCounter) CountTokens(string) int { return int(c) }

// drain 收集通道中的所有片段和最终错误
func drain(ch <-chan Chunk) ([]string, error) {
	var out []string
	for c := range ch {
		if c.Err != nil {
			return out, c.Err
		}
		out = append(out, c.Text)
	}
	return out, nil
}

func newTestRelay(gen Generator) *Relay {
	return NewRelay(gen, nil, &config.SummaryConfig{FragmentTimeout: time.Second})
}

func TestRelay_StreamMatchesCompletion(t *testing.T) {
	gen := newStubGenerator("Users ", "enjoyed ", "the ", "talk.")
	relay := newTestRelay(gen)
	messages := []string{"great talk", "loved the demo"}

	ch, err := relay.Summarize(context.Background(), "user-1", messages)
	require.NoError(t, err)
	fragments, err := drain(ch)
	require.NoError(t, err)

	text, err := relay.SummarizeText(context.Background(), "user-1", messages)
	require.NoError(t, err)

	assert.Equal(t, text, strings.Join(fragments, ""))
}

func TestRelay_PreservesOrder(t *testing.T) {
	gen := newStubGenerator("a", "b", "c", "", "d")
	relay := newTestRelay(gen)

	ch, err := relay.Summarize(context.Background(), "user-1", []string{"x"})
	require.NoError(t, err)
	fragments, err := drain(ch)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c", "", "d"}, fragments)
}

func TestRelay_SendsPrompt(t *testing.T) {
	gen := newStubGenerator("ok")
	relay := newTestRelay(gen)

	ch, err := relay.Summarize(context.Background(), "user-1", []string{"A", "B"})
	require.NoError(t, err)
	_, _ = drain(ch)

	require.Len(t, gen.prompts, 1)
	assert.Equal(t, "Summarize the following feedbacks in a concise manner: A B", gen.prompts[0])
}

func TestRelay_RejectsWithoutBackendCall(t *testing.T) {
	tests := []struct {
		name     string
		caller   string
		messages []string
		counter  TokenCounter
		wantErr  error
	}{
		{"empty batch", "user-1", []string{}, nil, domainSummary.ErrEmptyBatch},
		{"nil batch", "user-1", nil, nil, domainSummary.ErrEmptyBatch},
		{"unauthenticated", "", []string{"A"}, nil, domainSummary.ErrUnauthenticated},
		{"too many tokens", "user-1", []string{"A"}, fixedCounter(500), domainSummary.ErrBatchTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := newStubGenerator("never")
			relay := NewRelay(gen, tt.counter, &config.SummaryConfig{MaxPromptTokens: 100})

			ch, err := relay.Summarize(context.Background(), tt.caller, tt.messages)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, ch)

			_, err = relay.SummarizeText(context.Background(), tt.caller, tt.messages)
			assert.ErrorIs(t, err, tt.wantErr)

			assert.Equal(t, int32(0), gen.calls.Load(), "不应调用后端")
		})
	}
}

func TestRelay_OneBackendCallPerInvocation(t *testing.T) {
	gen := newStubGenerator("a", "b")
	relay := newTestRelay(gen)

	for i := 0; i < 3; i++ {
		ch, err := relay.Summarize(context.Background(), "user-1", []string{"x"})
		require.NoError(t, err)
		_, _ = drain(ch)
	}
	assert.Equal(t, int32(3), gen.calls.Load())
}

func TestRelay_OpenFailure(t *testing.T) {
	gen := newStubGenerator()
	gen.openErr = errors.New("quota exceeded")
	relay := newTestRelay(gen)

	ch, err := relay.Summarize(context.Background(), "user-1", []string{"x"})
	assert.Nil(t, ch)
	assert.True(t, domainSummary.IsBackendError(err))

	_, err = relay.SummarizeText(context.Background(), "user-1", []string{"x"})
	assert.True(t, domainSummary.IsBackendError(err))
}

func TestRelay_FailureBeforeFirstFragment(t *testing.T) {
	gen := newStubGenerator("a", "b")
	gen.failAfter = 0
	gen.failErr = errors.New("upstream 500")
	relay := newTestRelay(gen)

	ch, err := relay.Summarize(context.Background(), "user-1", []string{"x"})
	require.NoError(t, err)
	fragments, err := drain(ch)

	assert.Empty(t, fragments)
	assert.True(t, domainSummary.IsBackendError(err))
}

func TestRelay_MidStreamFailureKeepsForwardedFragments(t *testing.T) {
	for k := 1; k <= 3; k++ {
		t.Run(fmt.Sprintf("fail after %d", k), func(t *testing.T) {
			gen := newStubGenerator("f1", "f2", "f3")
			gen.failAfter = k
			gen.failErr = errors.New("connection reset")
			relay := newTestRelay(gen)

			ch, err := relay.Summarize(context.Background(), "user-1", []string{"x"})
			require.NoError(t, err)
			fragments, err := drain(ch)

			require.Error(t, err)
			assert.ErrorIs(t, err, gen.failErr)
			assert.Equal(t, gen.fragments[:k], fragments)
		})
	}
}

func TestRelay_CallerCancellationStopsBackend(t *testing.T) {
	gen := newStubGenerator("a", "b", "c")
	relay := newTestRelay(gen)

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := relay.Summarize(ctx, "user-1", []string{"x"})
	require.NoError(t, err)

	first := <-ch
	assert.Equal(t, "a", first.Text)
	cancel()

	select {
	case <-gen.cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("backend stream was not cancelled")
	}

	// 通道最终关闭
	for range ch {
	}
}

func TestRelay_FragmentTimeout(t *testing.T) {
	gen := newStubGenerator("a", "b", "c")
	gen.stallAfter = 1
	relay := NewRelay(gen, nil, &config.SummaryConfig{FragmentTimeout: 50 * time.Millisecond})

	ch, err := relay.Summarize(context.Background(), "user-1", []string{"x"})
	require.NoError(t, err)
	fragments, err := drain(ch)

	assert.Equal(t, []string{"a"}, fragments)
	assert.ErrorIs(t, err, domainSummary.ErrBackendTimeout)
	assert.True(t, domainSummary.IsBackendError(err))

	select {
	case <-gen.cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("backend stream was not cancelled after timeout")
	}
}

func TestRelay_ConcurrentSessionsAreIndependent(t *testing.T) {
	relayA := newTestRelay(newStubGenerator("A1", "A2", "A3"))
	relayB := newTestRelay(newStubGenerator("B1", "B2"))

	var wg sync.WaitGroup
	results := make([]string, 2)
	for i, relay := range []*Relay{relayA, relayB} {
		wg.Add(1)
		go func(i int, relay *Relay) {
			defer wg.Done()
			ch, err := relay.Summarize(context.Background(), "user-1", []string{"x"})
			if err != nil {
				return
			}
			session := domainSummary.NewSession()
			_ = session.Begin()
			for c := range ch {
				_ = session.Append(c.Text)
			}
			session.Complete()
			results[i] = session.Text()
		}(i, relay)
	}
	wg.Wait()

	assert.Equal(t, "A1A2A3", results[0])
	assert.Equal(t, "B1B2", results[1])
}

func TestRelay_AccumulatedScenario(t *testing.T) {
	gen := newStubGenerator("The feedback", " is mostly positive", ", with a request", " for dark mode.")
	relay := newTestRelay(gen)

	ch, err := relay.Summarize(context.Background(), "user-1", []string{"Great product!", "Needs dark mode"})
	require.NoError(t, err)

	session := domainSummary.NewSession()
	require.NoError(t, session.Begin())
	for c := range ch {
		require.NoError(t, c.Err)
		require.NoError(t, session.Append(c.Text))
	}
	session.Complete()

	assert.Equal(t, domainSummary.StateComplete, session.State())
	assert.Equal(t, "The feedback is mostly positive, with a request for dark mode.", session.Text())
	assert.Equal(t, "Summarize the following feedbacks in a concise manner: Great product! Needs dark mode", gen.prompts[0])
}
