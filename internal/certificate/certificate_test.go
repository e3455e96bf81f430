package certificate

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Render(t *testing.T) {
	branch := "DevOps"
	tests := []struct {
		name string
		data Data
	}{
		{
			name: "with branch",
			data: Data{Name: "Zoé", CompletedCount: 5, Branch: &branch},
		},
		{
			name: "without branch",
			data: Data{Name: "Alice", CompletedCount: 12},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := NewRenderer().Render(tt.data)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
			assert.True(t, bytes.Contains(out, []byte("%%EOF")))
		})
	}
}

func TestBranchLabel(t *testing.T) {
	empty := ""
	ia := "IA"
	assert.Equal(t, "diverses branches", branchLabel(nil))
	assert.Equal(t, "diverses branches", branchLabel(&empty))
	assert.Equal(t, "IA", branchLabel(&ia))
}

func TestRenderer_RenderIsStable(t *testing.T) {
	branch := "IA"
	data := Data{Name: "Alice", CompletedCount: 6, Branch: &branch}

	first, err := NewRenderer().Render(data)
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond)
	second, err := NewRenderer().Render(data)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
