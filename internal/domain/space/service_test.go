package space

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestService_Validate(t *testing.T) {
	svc := NewService()

	tests := []struct {
		name      string
		spaceName string
		title     string
		wantErr   error
	}{
		{"valid", "team-retro_1", "Sprint retro", nil},
		{"too short name", "ab", "Sprint retro", ErrInvalidName},
		{"name with space", "team retro", "Sprint retro", ErrInvalidName},
		{"name with slash", "team/retro", "Sprint retro", ErrInvalidName},
		{"too long name", strings.Repeat("a", 51), "Sprint retro", ErrInvalidName},
		{"short title", "retro", "Hey", ErrInvalidTitle},
		{"blank padded title", "retro", "  Hi  ", ErrInvalidTitle},
		{"long title", "retro", strings.Repeat("t", 101), ErrInvalidTitle},
		{"unicode title", "retro", "反馈收集箱", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Validate(tt.spaceName, tt.title)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
