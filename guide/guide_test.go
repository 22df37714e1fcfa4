package guide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	index, err := Get("")
	require.NoError(t, err)
	assert.Contains(t, index, "google_search")

	page, err := Get("mcp")
	require.NoError(t, err)
	assert.Contains(t, page, "MCP client setup")

	_, err = Get("nonexistent")
	assert.Error(t, err)
}

func TestTopics(t *testing.T) {
	topics, err := Topics()
	require.NoError(t, err)
	assert.Equal(t, []Topic{
		{Name: "config", Title: "Configuration"},
		{Name: "mcp", Title: "MCP client setup"},
	}, topics)

	names, err := List()
	require.NoError(t, err)
	assert.Equal(t, []string{"config", "mcp"}, names)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Heading", title("\n## Heading\ntext"))
	assert.Equal(t, "", title("no heading"))
}
