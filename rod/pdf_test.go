//go:build integration

package rod_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/sammelband/sammelband/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFRenderer_RenderPDF(t *testing.T) {
	t.Parallel()

	renderer := rod.NewPDFRenderer(newManager(t))

	pdf, err := renderer.RenderPDF(context.Background(), `<!DOCTYPE html><html><body><h1>Hello</h1><p>World</p></body></html>`)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")), "expected PDF magic bytes")
}
