package mdoutline_test

import (
	"testing"

	"github.com/openkraft/devkit/internal/adapters/outbound/mdoutline"
	"github.com/openkraft/devkit/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = `# Edge Functions Deployment

Intro paragraph.

## Prerequisites

- supabase CLI

` + "```bash\n# not a heading\nsupabase login\n```" + `

## Deploy

Setext Title
------------

### Verify
`

func TestHeadings(t *testing.T) {
	got := mdoutline.New().Headings([]byte(doc))

	require.Len(t, got, 5)
	assert.Equal(t, domain.Heading{Level: 1, Line: 1, Text: "Edge Functions Deployment"}, got[0])
	assert.Equal(t, domain.Heading{Level: 2, Line: 5, Text: "Prerequisites"}, got[1])
	assert.Equal(t, domain.Heading{Level: 2, Line: 14, Text: "Deploy"}, got[2])
	assert.Equal(t, domain.Heading{Level: 2, Line: 16, Text: "Setext Title"}, got[3])
	assert.Equal(t, domain.Heading{Level: 3, Line: 19, Text: "Verify"}, got[4])
}

func TestHeadings_None(t *testing.T) {
	assert.Empty(t, mdoutline.New().Headings([]byte("just text\n")))
}
