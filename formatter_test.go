package sammelband_test

import (
	"testing"

	"github.com/sammelband/sammelband"
	"github.com/stretchr/testify/assert"
)

func TestArticle_Heading(t *testing.T) {
	t.Parallel()

	t.Run("uses title", func(t *testing.T) {
		t.Parallel()

		a := &sammelband.Article{URL: "https://example.com/a", Title: "A Title"}

		assert.Equal(t, "A Title", a.Heading())
	})

	t.Run("falls back to URL", func(t *testing.T) {
		t.Parallel()

		a := &sammelband.Article{URL: "https://example.com/a"}

		assert.Equal(t, "https://example.com/a", a.Heading())
	})
}

func TestArticle_Attribution(t *testing.T) {
	t.Parallel()

	tests := []struct {
		byline, site, want string
	}{
		{"Ada", "The Review", "by Ada, The Review"},
		{"Ada", "", "by Ada"},
		{"", "The Review", "The Review"},
		{"", "", ""},
	}
	for _, tt := range tests {
		a := &sammelband.Article{Byline: tt.byline, SiteName: tt.site}
		assert.Equal(t, tt.want, a.Attribution())
	}
}

func TestJoinMarkdown(t *testing.T) {
	t.Parallel()

	t.Run("formats single article", func(t *testing.T) {
		t.Parallel()

		articles := []*sammelband.Article{
			{URL: "https://example.com/a", Title: "First", Byline: "Ada"},
		}

		result := sammelband.JoinMarkdown(articles, []string{"Body text.\n"})

		expected := "# First\n\n*by Ada*\n\n[View original article](https://example.com/a)\n\nBody text.\n"
		assert.Equal(t, expected, result)
	})

	t.Run("separates articles with rules", func(t *testing.T) {
		t.Parallel()

		articles := []*sammelband.Article{
			{URL: "https://example.com/a", Title: "First"},
			{URL: "https://example.com/b"},
		}

		result := sammelband.JoinMarkdown(articles, []string{"One.", "Two."})

		expected := "# First\n\n[View original article](https://example.com/a)\n\nOne." +
			"\n\n---\n\n" +
			"# https://example.com/b\n\n[View original article](https://example.com/b)\n\nTwo.\n"
		assert.Equal(t, expected, result)
	})

	t.Run("returns empty string for no articles", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, sammelband.JoinMarkdown(nil, nil))
	})
}
