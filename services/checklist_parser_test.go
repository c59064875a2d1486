package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseChecklist(t *testing.T) {
	t.Run("strips numbering and header", func(t *testing.T) {
		raw := "CHECKLIST:\n1. Set up repo\n2. Design schema\n3. Build UI\n4. Write tests\n5. Deploy"
		items := ParseChecklist(raw)
		assert.Equal(t, []string{"Set up repo", "Design schema", "Build UI", "Write tests", "Deploy"}, items)
	})

	t.Run("handles parenthesis numbering", func(t *testing.T) {
		raw := "1) First\n2) Second\n3) Third\n4) Fourth"
		items := ParseChecklist(raw)
		assert.Equal(t, []string{"First", "Second", "Third", "Fourth"}, items)
	})

	t.Run("drops blank lines", func(t *testing.T) {
		raw := "1. First\n\n2. Second\n   \n3. Third\n4. Fourth"
		items := ParseChecklist(raw)
		assert.Len(t, items, 4)
	})

	t.Run("falls back to dense splitting under four lines", func(t *testing.T) {
		raw := "CHECKLIST: 1. Plan the schema 2. Build the API 3. Ship the frontend 4. Run QA 5. Launch"
		items := ParseChecklist(raw)
		assert.Len(t, items, 5)
		assert.Equal(t, "Plan the schema", items[0])
		assert.Equal(t, "Launch", items[4])
	})

	t.Run("empty input yields empty list", func(t *testing.T) {
		assert.Empty(t, ParseChecklist(""))
	})
}
