package sammelband_test

import (
	"testing"

	"github.com/sammelband/sammelband"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts uuid ids", func(t *testing.T) {
		t.Parallel()

		doc := &sammelband.Document{ID: "3f1c2a9e-0b1d-4c55-9d0e-7a2f1b3c4d5e", Format: sammelband.FormatPDF}

		assert.NoError(t, doc.Validate())
	})

	t.Run("requires id", func(t *testing.T) {
		t.Parallel()

		err := (&sammelband.Document{Format: sammelband.FormatHTML}).Validate()

		require.Error(t, err)
		assert.Equal(t, sammelband.EINVALID, sammelband.ErrorCode(err))
	})

	t.Run("rejects path characters in id", func(t *testing.T) {
		t.Parallel()

		err := (&sammelband.Document{ID: "../etc/passwd", Format: sammelband.FormatHTML}).Validate()

		require.Error(t, err)
		assert.Equal(t, sammelband.EINVALID, sammelband.ErrorCode(err))
	})

	t.Run("requires known format", func(t *testing.T) {
		t.Parallel()

		for _, f := range []sammelband.Format{"", "epub"} {
			err := (&sammelband.Document{ID: "abc", Format: f}).Validate()
			require.Error(t, err)
			assert.Equal(t, sammelband.EINVALID, sammelband.ErrorCode(err))
		}
	})
}

func TestDocument_Filename(t *testing.T) {
	t.Parallel()

	doc := &sammelband.Document{ID: "abc", Format: sammelband.FormatMarkdown}

	assert.Equal(t, "sammelband.md", doc.Filename())
}
