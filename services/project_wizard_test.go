package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checkmate-app/backend/errs"
	"github.com/checkmate-app/backend/models"
)

type fakeGenerator struct {
	items []string
	err   error
	calls int
}

func (g *fakeGenerator) Generate(ctx context.Context, brief ProjectBrief) ([]string, error) {
	g.calls++
	return g.items, g.err
}

type fakeProjectStore struct {
	added []*models.Project
	err   error
}

func (s *fakeProjectStore) Add(project *models.Project) error {
	if s.err != nil {
		return s.err
	}
	s.added = append(s.added, project)
	return nil
}

type fakeChecklistStore struct {
	added []*models.Checklist
	err   error
}

func (s *fakeChecklistStore) Add(checklist *models.Checklist) error {
	if s.err != nil {
		return s.err
	}
	s.added = append(s.added, checklist)
	return nil
}

type fakeItemStore struct {
	added []models.ChecklistItem
	err   error
}

func (s *fakeItemStore) AddBatch(items []models.ChecklistItem) error {
	if s.err != nil {
		return s.err
	}
	s.added = append(s.added, items...)
	return nil
}

func validInput() WizardInput {
	return WizardInput{
		Name:         "Shop",
		Type:         "web",
		Technologies: []string{"React"},
		Objectives:   "MVP",
	}
}

func newWizardFixture(generator *fakeGenerator) (*ProjectWizard, *fakeProjectStore, *fakeChecklistStore, *fakeItemStore) {
	projects := &fakeProjectStore{}
	checklists := &fakeChecklistStore{}
	items := &fakeItemStore{}
	wizard := NewProjectWizard(generator, projects, checklists, items, time.Second)
	return wizard, projects, checklists, items
}

func TestProjectWizardValidation(t *testing.T) {
	generator := &fakeGenerator{items: []string{"a", "b", "c"}}
	wizard, projects, _, _ := newWizardFixture(generator)

	t.Run("name is required", func(t *testing.T) {
		input := validInput()
		input.Name = ""
		_, err := wizard.Run(context.Background(), uuid.New(), input)
		require.Error(t, err)
		assert.True(t, errs.IsMissingRequiredFieldError(err))
	})

	t.Run("type is required", func(t *testing.T) {
		input := validInput()
		input.Type = ""
		_, err := wizard.Run(context.Background(), uuid.New(), input)
		require.Error(t, err)
		assert.True(t, errs.IsMissingRequiredFieldError(err))
	})

	t.Run("at least one technology is required", func(t *testing.T) {
		input := validInput()
		input.Technologies = nil
		_, err := wizard.Run(context.Background(), uuid.New(), input)
		require.Error(t, err)
		assert.True(t, errs.IsInvalidFieldError(err))
	})

	t.Run("validation failures persist nothing and skip generation", func(t *testing.T) {
		assert.Zero(t, generator.calls)
		assert.Empty(t, projects.added)
	})
}

func TestProjectWizardGenerationFailure(t *testing.T) {
	generator := &fakeGenerator{err: errors.New("model unreachable")}
	wizard, projects, checklists, items := newWizardFixture(generator)

	result, err := wizard.Run(context.Background(), uuid.New(), validInput())

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errs.IsGenerationFailed(err))
	assert.Empty(t, projects.added, "no project row may be created when generation fails")
	assert.Empty(t, checklists.added)
	assert.Empty(t, items.added)
}

func TestProjectWizardPartialFailure(t *testing.T) {
	generator := &fakeGenerator{items: []string{"Set up repo", "Design schema"}}
	wizard, projects, checklists, items := newWizardFixture(generator)
	checklists.err = errors.New("insert rejected")

	result, err := wizard.Run(context.Background(), uuid.New(), validInput())

	require.NoError(t, err, "partial failure is a result, not an error")
	require.NotNil(t, result)
	assert.True(t, result.PartialFailure)
	assert.Contains(t, result.PartialReason, "finish manually")
	assert.Len(t, projects.added, 1, "the project row stays; no compensating delete")
	assert.Empty(t, items.added)
}

func TestProjectWizardItemInsertFailure(t *testing.T) {
	generator := &fakeGenerator{items: []string{"Set up repo"}}
	wizard, projects, checklists, items := newWizardFixture(generator)
	items.err = errors.New("insert rejected")

	result, err := wizard.Run(context.Background(), uuid.New(), validInput())

	require.NoError(t, err)
	assert.True(t, result.PartialFailure)
	assert.Len(t, projects.added, 1)
	assert.Len(t, checklists.added, 1)
}

func TestProjectWizardHappyPath(t *testing.T) {
	generator := &fakeGenerator{items: []string{"Set up repo", "Design schema", "Build UI"}}
	wizard, projects, checklists, items := newWizardFixture(generator)
	userID := uuid.New()

	result, err := wizard.Run(context.Background(), userID, validInput())

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.PartialFailure)

	require.Len(t, projects.added, 1)
	project := projects.added[0]
	assert.Equal(t, userID, project.UserID)
	assert.Equal(t, "Shop", project.Name)
	assert.Equal(t, "web", project.Type)
	assert.Equal(t, []string{"React"}, []string(project.Technologies))
	assert.Equal(t, 0, project.Progress, "a fresh project starts at zero progress")

	require.Len(t, checklists.added, 1)
	assert.Equal(t, GeneratedChecklistTitle, checklists.added[0].Title)
	assert.Equal(t, project.ID, checklists.added[0].ProjectID)

	require.Len(t, items.added, 3)
	for i, item := range items.added {
		assert.Equal(t, i+1, item.OrderIndex)
		assert.False(t, item.Checked)
		assert.Equal(t, checklists.added[0].ID, item.ChecklistID)
	}
	assert.Equal(t, "Set up repo", items.added[0].Description)
}

func TestProjectWizardZeroGeneratedItems(t *testing.T) {
	generator := &fakeGenerator{items: nil}
	wizard, projects, checklists, items := newWizardFixture(generator)

	result, err := wizard.Run(context.Background(), uuid.New(), validInput())

	require.NoError(t, err)
	assert.False(t, result.PartialFailure)
	assert.Len(t, projects.added, 1, "the project is still created")
	assert.Empty(t, checklists.added, "no empty checklist row is created")
	assert.Empty(t, items.added)
	assert.Nil(t, result.Checklist)
}
