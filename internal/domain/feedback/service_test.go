package feedback

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_NormalizeContent(t *testing.T) {
	svc := NewService()

	got, err := svc.NormalizeContent("  great session  ")
	require.NoError(t, err)
	assert.Equal(t, "great session", got)

	_, err = svc.NormalizeContent("   ")
	assert.ErrorIs(t, err, ErrEmptyContent)

	_, err = svc.NormalizeContent(strings.Repeat("x", MaxContentLength+1))
	assert.ErrorIs(t, err, ErrContentTooLong)

	// 按字符而非字节计数
	_, err = svc.NormalizeContent(strings.Repeat("好", MaxContentLength))
	assert.NoError(t, err)
}

func TestContents(t *testing.T) {
	msgs := []*Message{{Content: "b"}, {Content: "a"}}
	assert.Equal(t, []string{"b", "a"}, Contents(msgs))
	assert.Empty(t, Contents(nil))
}
