package api

import (
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteChecklistRecomputesProjectProgress(t *testing.T) {
	fixture := newItemHandlerFixture(t)

	_, doneItems := fixture.seedChecklist(t, "Setup")
	require.NoError(t, fixture.db.ChecklistItemRepo().SetChecked(doneItems[0].ID, true))
	pending, _ := fixture.seedChecklist(t, "Launch", "Market")

	// Baseline: one of three items checked across both checklists.
	syncProjectProgress(zerolog.Nop(), fixture.db.ChecklistRepo(), fixture.db.ProjectRepo(), fixture.project.ID)
	require.Equal(t, 33, fixture.storedProgress(t))

	t.Run("dropping the unchecked checklist raises the stored percentage", func(t *testing.T) {
		rec := fixture.do(http.MethodDelete, "/checklist/"+pending.ID.String(), "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 100, fixture.storedProgress(t))
	})

	t.Run("a missing checklist reports not found", func(t *testing.T) {
		rec := fixture.do(http.MethodDelete, "/checklist/"+pending.ID.String(), "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
