package grounding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthassist/backend/internal/model"
)

func web(title string) model.Citation {
	return model.Citation{Web: &model.CitationSource{Title: title, URI: "https://" + title}}
}

func place(title string) model.Citation {
	return model.Citation{Maps: &model.CitationSource{Title: title, URI: "https://maps/" + title}}
}

func TestFilter(t *testing.T) {
	t.Run("Drops entries with neither payload", func(t *testing.T) {
		out := Filter([]model.Citation{web("a"), place("b"), {}})

		require.Len(t, out, 2)
		assert.Equal(t, "a", out[0].Web.Title)
		assert.Equal(t, "b", out[1].Maps.Title)
	})

	t.Run("Keeps duplicates and order", func(t *testing.T) {
		out := Filter([]model.Citation{place("x"), {}, web("y"), place("x")})

		require.Len(t, out, 3)
		assert.Equal(t, []Kind{KindMaps, KindWeb, KindMaps}, []Kind{KindOf(out[0]), KindOf(out[1]), KindOf(out[2])})
	})

	t.Run("Empty input", func(t *testing.T) {
		assert.Empty(t, Filter(nil))
	})
}

func TestPartition(t *testing.T) {
	both := model.Citation{Web: &model.CitationSource{Title: "w"}, Maps: &model.CitationSource{Title: "m"}}

	places, links := Partition([]model.Citation{web("a"), place("b"), {}, both, web("c")})

	require.Len(t, places, 2)
	assert.Equal(t, "b", places[0].Maps.Title)
	assert.Equal(t, "m", places[1].Maps.Title)
	require.Len(t, links, 2)
	assert.Equal(t, "a", links[0].Web.Title)
	assert.Equal(t, "c", links[1].Web.Title)
}
