package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicURL(t *testing.T) {
	c := &Client{publicURL: "https://storage.example.com"}
	assert.Equal(t,
		"https://storage.example.com/documents/signatures/lead-1/1.png",
		c.PublicURL("signatures/lead-1/1.png"))
}

func TestKeyFromURL(t *testing.T) {
	c := &Client{publicURL: "https://storage.example.com"}

	key, err := c.keyFromURL("https://storage.example.com/documents/documents/lead-1/p.pdf")
	require.NoError(t, err)
	assert.Equal(t, "documents/lead-1/p.pdf", key)

	key, err = c.keyFromURL("documents/lead-1/p.pdf")
	require.NoError(t, err)
	assert.Equal(t, "documents/lead-1/p.pdf", key)

	_, err = c.keyFromURL("https://elsewhere.example.com/x.pdf")
	assert.ErrorIs(t, err, ErrForeignURL)
}

func TestAllowedType(t *testing.T) {
	assert.True(t, allowedType("application/pdf"))
	assert.True(t, allowedType("IMAGE/PNG"))
	assert.False(t, allowedType("image/gif"))
	assert.False(t, allowedType(""))
}
