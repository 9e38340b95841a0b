package extract_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/pagescope"
	"github.com/fwojciec/pagescope/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImages_Extract(t *testing.T) {
	t.Parallel()

	t.Run("collects images from every source", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><head></head><body>
<a href="/photos/cat.JPG">cat</a>
<a href="/docs/page.html">doc</a>
<a href="data:image/png;base64,AAA">inline</a>
<img src="img/logo.png" srcset="img/logo.png 1x, img/logo@2x.png 2x">
<picture><source srcset="/hero.webp 1x"><img src="/hero.jpg"></picture>
<div style="background-image: url('/bg.png'), url(&quot;/bg2.png&quot;)"></div>
<a href="https://example.com/photos/cat.JPG">again</a>
<a href="javascript:void(0)">js</a>
</body></html>`)

		result := run(t, extract.NewImages(), doc)

		var urls []string
		for _, img := range result.Images {
			urls = append(urls, img.URL)
		}
		assert.Equal(t, []string{
			"data:image/png;base64,AAA",
			"https://example.com/bg.png",
			"https://example.com/bg2.png",
			"https://example.com/hero.jpg",
			"https://example.com/hero.webp",
			"https://example.com/img/logo.png",
			"https://example.com/img/logo@2x.png",
			"https://example.com/photos/cat.JPG",
		}, urls)

		logo := result.Images[5]
		assert.Equal(t, []string{pagescope.SourceVisibleImg, pagescope.SourceVisibleSrcset}, logo.Sources)
		assert.False(t, logo.FromLinkedAnchor)
		assert.True(t, logo.FromVisibleElement)

		cat := result.Images[7]
		assert.Equal(t, []string{pagescope.SourceLinked}, cat.Sources)
		assert.True(t, cat.FromLinkedAnchor)
		assert.False(t, cat.FromVisibleElement)

		assert.Equal(t, []string{pagescope.SourceCSSBackground}, result.Images[1].Sources)
		assert.Equal(t, stats("Total Unique", "8", "From Linked Anchors", "2", "From Visible Elements", "6"), result.Stats)

		lines := strings.Split(strings.TrimSuffix(result.CSVContent, "\n"), "\n")
		require.Len(t, lines, 9)
		assert.Equal(t, `"url","sources","fromLinkedAnchor","fromVisibleElement"`, lines[0])
		assert.Equal(t, `"https://example.com/img/logo.png","visible-img|visible-srcset","false","true"`, lines[6])
	})

	t.Run("prefers recorded currentSrc and computed backgrounds", func(t *testing.T) {
		t.Parallel()

		// html(0) head(1) body(2) img(3)
		doc := parseSnapshot(t, &pagescope.Snapshot{
			HTML: `<html><head></head><body><img src="small.png"></body></html>`,
			Elements: []pagescope.ElementState{
				{Index: 2, Tag: "body", BackgroundImage: `url("https://example.com/body.jpg")`},
				{Index: 3, Tag: "img", Rendering: pagescope.Rendering{CurrentSrc: "https://cdn.example.com/large.png"}},
			},
		})

		result := run(t, extract.NewImages(), doc)

		require.Len(t, result.Images, 2)
		assert.Equal(t, "https://cdn.example.com/large.png", result.Images[0].URL)
		assert.Equal(t, []string{pagescope.SourceVisibleImg}, result.Images[0].Sources)
		assert.Equal(t, "https://example.com/body.jpg", result.Images[1].URL)
		assert.Equal(t, []string{pagescope.SourceCSSBackground}, result.Images[1].Sources)
	})

	t.Run("returns header-only CSV for page without images", func(t *testing.T) {
		t.Parallel()

		result := run(t, extract.NewImages(), parse(t, "<p>nothing</p>"))

		assert.Empty(t, result.Images)
		assert.Equal(t, "\"url\",\"sources\",\"fromLinkedAnchor\",\"fromVisibleElement\"\n", result.CSVContent)
		assert.Equal(t, stats("Total Unique", "0", "From Linked Anchors", "0", "From Visible Elements", "0"), result.Stats)
	})
}
