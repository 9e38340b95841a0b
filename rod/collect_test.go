package rod

import (
	"testing"

	"github.com/fwojciec/pagescope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("decodes collector output", func(t *testing.T) {
		t.Parallel()

		raw := `{"url":"https://example.com/","title":"Home","html":"<html></html>","bodyText":"Hi",` +
			`"viewportHeight":800,"resources":[{"name":"https://cdn.example.net/a.js","transferSize":2048}],` +
			`"elements":[{"index":4,"tag":"img","currentSrc":"https://example.com/a.png","clientWidth":20,"top":1200,"loading":"lazy"},` +
			`{"index":7,"tag":"div","backgroundImage":"url(\"https://example.com/bg.png\")"}]}`

		snap, err := decodeSnapshot(raw)
		require.NoError(t, err)

		assert.Equal(t, "https://example.com/", snap.URL)
		assert.Equal(t, "Home", snap.Title)
		assert.Equal(t, "Hi", snap.BodyText)
		assert.Equal(t, float64(800), snap.ViewportHeight)
		require.Len(t, snap.Resources, 1)
		assert.Equal(t, float64(2048), snap.Resources[0].TransferSize)
		require.Len(t, snap.Elements, 2)
		assert.Equal(t, 4, snap.Elements[0].Index)
		assert.Equal(t, "https://example.com/a.png", snap.Elements[0].CurrentSrc)
		assert.Equal(t, float64(1200), snap.Elements[0].Top)
		assert.Equal(t, "lazy", snap.Elements[0].Loading)
		assert.Equal(t, `url("https://example.com/bg.png")`, snap.Elements[1].BackgroundImage)
	})

	t.Run("rejects malformed output", func(t *testing.T) {
		t.Parallel()

		_, err := decodeSnapshot("undefined")
		require.Error(t, err)
	})
}

func TestCollectJS_StampsStateAttr(t *testing.T) {
	t.Parallel()

	assert.Contains(t, collectJS, `"`+pagescope.StateAttr+`"`)
	assert.Contains(t, collectJS, "removeAttribute(attr)")
}
