package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_HTML(t *testing.T) {
	r := NewRenderer()

	t.Run("Disclaimer and bullets", func(t *testing.T) {
		out, err := r.HTML("**Disclaimer:** not a doctor.\n\n- rest\n- fluids")
		require.NoError(t, err)
		assert.Contains(t, out, "<strong>Disclaimer:</strong>")
		assert.Contains(t, out, "<li>rest</li>")
	})

	t.Run("Hard wraps", func(t *testing.T) {
		out, err := r.HTML("line one\nline two")
		require.NoError(t, err)
		assert.Contains(t, out, "<br>")
	})

	t.Run("Raw HTML is dropped", func(t *testing.T) {
		out, err := r.HTML("<script>alert(1)</script>")
		require.NoError(t, err)
		assert.NotContains(t, out, "<script>")
	})
}
