package trafilatura_test

import (
	"testing"

	"github.com/sammelband/sammelband"
	"github.com/sammelband/sammelband/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements sammelband.Extractor at compile time.
var _ sammelband.Extractor = (*trafilatura.Extractor)(nil)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title from meta tags", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<title>A Long Walk - The Example Review</title>
<meta property="og:title" content="A Long Walk">
</head>
<body>
<nav>Navigation here</nav>
<main>
<h1>A Long Walk</h1>
<p>This is the main content of the article page, long enough to be kept.</p>
</main>
<footer>Footer content</footer>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html, "https://example.com/walk")

		require.NoError(t, err)
		assert.NotEmpty(t, result.Title)
	})

	t.Run("extracts main content", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav><a href="/">Home</a><a href="/archive">Archive</a></nav>
<article>
<h1>Essay</h1>
<p>This is important article content that should be extracted by the fallback.</p>
<p>A second paragraph keeps the article from looking like boilerplate.</p>
</article>
<aside>Sidebar content</aside>
<footer>Copyright 2024</footer>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html, "https://example.com/essay")

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "important article content")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		_, err := ext.Extract("", "https://example.com")

		require.Error(t, err)
		assert.Equal(t, sammelband.EINVALID, sammelband.ErrorCode(err))
	})
}
