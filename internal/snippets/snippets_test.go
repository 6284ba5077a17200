package snippets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	list, err := Load()
	require.NoError(t, err)
	require.Len(t, list, 4)

	titles := make([]string, 0, len(list))
	for _, s := range list {
		titles = append(titles, s.Title)
		assert.NotEmpty(t, s.Code)
		assert.NotContains(t, s.Code[len(s.Code)-1:], "\n")
	}
	assert.Equal(t, []string{"Upload a file", "Get public URL", "List all files", "Delete a file"}, titles)
	assert.Equal(t, `url := bucket.PublicURL("photo.png")`, list[1].Code)
}

func TestParse_RejectsUntitled(t *testing.T) {
	_, err := Parse([]byte("- code: x\n"))
	assert.Error(t, err)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("title: [unclosed"))
	assert.Error(t, err)
}
