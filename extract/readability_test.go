package extract_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/fwojciec/pagescope/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadability_Extract(t *testing.T) {
	t.Parallel()

	t.Run("picks the highest scoring candidate", func(t *testing.T) {
		t.Parallel()

		short := strings.TrimSpace(strings.Repeat("wxyz ", 57))
		long := strings.TrimSpace(strings.Repeat("abcd ", 100))
		doc := parse(t, `<html><head><title>Doc Title</title></head><body>
<section><p>`+short+`</p></section>
<article><p>`+long+`</p><p>tiny</p></article>
</body></html>`)

		result := run(t, extract.NewReadability(), doc)

		require.NotNil(t, result.Readability)
		assert.Equal(t, "Doc Title", result.Readability.Title)
		assert.Equal(t, []string{long}, result.Readability.Paragraphs)
		assert.Equal(t, stats("Paragraphs", "1", "Approx Words", "100"), result.Stats)
		assert.Equal(t, "\"paragraph\",\"text\"\n\"1\",\""+long+"\"\n", result.CSVContent)
	})

	t.Run("prefers first h1 for title", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<title>Doc Title</title><h1>  Heading </h1><h1>Second</h1>`)

		result := run(t, extract.NewReadability(), doc)

		assert.Equal(t, "Heading", result.Readability.Title)
	})

	t.Run("falls back to untitled", func(t *testing.T) {
		t.Parallel()

		result := run(t, extract.NewReadability(), parse(t, `<p>short</p>`))

		assert.Equal(t, "Untitled", result.Readability.Title)
		assert.Empty(t, result.Readability.Paragraphs)
	})

	t.Run("splits visible text when winner has no paragraphs", func(t *testing.T) {
		t.Parallel()

		var b strings.Builder
		b.WriteString("<body><div>")
		for i := 1; i <= 7; i++ {
			fmt.Fprintf(&b, "Line %d of the fallback text that is long enough<br>", i)
		}
		b.WriteString("tiny</div></body>")

		result := run(t, extract.NewReadability(), parse(t, b.String()))

		require.Len(t, result.Readability.Paragraphs, 7)
		assert.Equal(t, "Line 1 of the fallback text that is long enough", result.Readability.Paragraphs[0])
	})

	t.Run("keeps first candidate on equal score", func(t *testing.T) {
		t.Parallel()

		first := strings.TrimSpace(strings.Repeat("alpha ", 60))
		second := strings.TrimSpace(strings.Repeat("bravo ", 60))
		doc := parse(t, `<body><section><p>`+first+`</p></section><section><p>`+second+`</p></section></body>`)

		result := run(t, extract.NewReadability(), doc)

		assert.Equal(t, []string{first}, result.Readability.Paragraphs)
	})

	t.Run("scores semantic containers before divs on equal score", func(t *testing.T) {
		t.Parallel()

		inDiv := strings.TrimSpace(strings.Repeat("delta ", 60))
		inArticle := strings.TrimSpace(strings.Repeat("gamma ", 60))
		doc := parse(t, `<body><div><p>`+inDiv+`</p></div><article><p>`+inArticle+`</p></article></body>`)

		result := run(t, extract.NewReadability(), doc)

		assert.Equal(t, []string{inArticle}, result.Readability.Paragraphs)
	})

	t.Run("prefers longer text when no container has paragraphs", func(t *testing.T) {
		t.Parallel()

		short := strings.Repeat("s", 280)
		long := strings.Repeat("l", 500)

		for name, html := range map[string]string{
			"short first": `<body><div>` + short + `</div><div>` + long + `</div></body>`,
			"long first":  `<body><div>` + long + `</div><div>` + short + `</div></body>`,
		} {
			result := run(t, extract.NewReadability(), parse(t, html))

			assert.Equal(t, []string{long}, result.Readability.Paragraphs, name)
		}
	})

	t.Run("ignores containers below the minimum length", func(t *testing.T) {
		t.Parallel()

		para := "This paragraph sits directly in the body element."
		doc := parse(t, `<body><div>`+strings.Repeat("x", 279)+`</div><p>`+para+`</p></body>`)

		result := run(t, extract.NewReadability(), doc)

		assert.Equal(t, []string{para}, result.Readability.Paragraphs)
	})

	t.Run("uses body when no candidate is long enough", func(t *testing.T) {
		t.Parallel()

		para := "This paragraph sits directly in the body element."
		doc := parse(t, `<body><div>short</div><p>`+para+`</p></body>`)

		result := run(t, extract.NewReadability(), doc)

		assert.Equal(t, []string{para}, result.Readability.Paragraphs)
	})

	t.Run("caps paragraph count", func(t *testing.T) {
		t.Parallel()

		var b strings.Builder
		for i := 0; i < 150; i++ {
			fmt.Fprintf(&b, "<p>Paragraph number %03d with enough text to count.</p>", i)
		}

		result := run(t, extract.NewReadability(), parse(t, b.String()))

		assert.Len(t, result.Readability.Paragraphs, 140)
	})
}
