package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"github.com/checkmate-app/backend/errs"
	"github.com/checkmate-app/backend/models"
)

// GeneratedChecklistTitle is the title given to the checklist the wizard
// creates from the model's suggestions.
const GeneratedChecklistTitle = "Initial checklist (AI-generated)"

// DefaultGenerationTimeout bounds the single generation call so a hung
// model request cannot wedge the wizard.
const DefaultGenerationTimeout = 60 * time.Second

// WizardInput is the validated output of the three wizard steps.
type WizardInput struct {
	Name         string
	Description  string
	Type         string
	Technologies []string
	Objectives   string
	Deadline     *time.Time
}

// WizardResult reports what the wizard persisted. PartialFailure marks the
// created-but-incomplete outcome: the project row exists, the generated
// checklist does not, and no compensating delete was issued.
type WizardResult struct {
	Project        models.Project        `json:"project"`
	Checklist      *models.Checklist     `json:"checklist,omitempty"`
	Items          []models.ChecklistItem `json:"items,omitempty"`
	PartialFailure bool                  `json:"partial_failure"`
	PartialReason  string                `json:"partial_reason,omitempty"`
}

// Narrow store interfaces so the workflow can be exercised without a
// database.
type projectStore interface {
	Add(project *models.Project) error
}

type checklistStore interface {
	Add(checklist *models.Checklist) error
}

type checklistItemStore interface {
	AddBatch(items []models.ChecklistItem) error
}

// ProjectWizard orchestrates final wizard submission: validate the
// collected fields, round-trip them through the checklist generator, then
// persist the project and its generated checklist in dependency order.
type ProjectWizard struct {
	generator  ChecklistGenerator
	projects   projectStore
	checklists checklistStore
	items      checklistItemStore
	timeout    time.Duration
	logger     zerolog.Logger
}

func NewProjectWizard(generator ChecklistGenerator, projects projectStore, checklists checklistStore, items checklistItemStore, timeout time.Duration) *ProjectWizard {
	if timeout <= 0 {
		timeout = DefaultGenerationTimeout
	}
	return &ProjectWizard{
		generator:  generator,
		projects:   projects,
		checklists: checklists,
		items:      items,
		timeout:    timeout,
		logger:     log.With().Str("serviceName", "projectWizard").Logger(),
	}
}

// Validate re-checks the step guards server-side: name and type are
// required, and at least one technology must be selected. Nothing is
// persisted when validation fails.
func (in WizardInput) Validate() error {
	if in.Name == "" {
		return errs.NewMissingRequiredFieldError("name")
	}
	if in.Type == "" {
		return errs.NewMissingRequiredFieldError("type")
	}
	if len(in.Technologies) == 0 {
		return errs.NewInvalidFieldError("technologies", "at least one technology is required")
	}
	return nil
}

func (in WizardInput) brief() ProjectBrief {
	brief := ProjectBrief{
		Name:         in.Name,
		Description:  in.Description,
		Type:         in.Type,
		Technologies: in.Technologies,
		Objectives:   in.Objectives,
	}
	if in.Deadline != nil {
		brief.Deadline = in.Deadline.Format("2006-01-02")
	}
	return brief
}

// Run executes the creation workflow. Failure semantics, in order:
//   - validation failure: nothing persisted, field-tagged error;
//   - generation failure: nothing persisted, the user keeps their input;
//   - project insert failure: nothing persisted, generated text discarded;
//   - checklist/item insert failure after the project exists: the project
//     row stays and the result carries a partial-failure flag instead of
//     an error.
func (wz *ProjectWizard) Run(ctx context.Context, userID uuid.UUID, input WizardInput) (*WizardResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	genCtx, cancel := context.WithTimeout(ctx, wz.timeout)
	defer cancel()

	generated, err := wz.generator.Generate(genCtx, input.brief())
	if err != nil {
		wz.logger.Error().Err(err).Str("project", input.Name).Msg("Checklist generation failed, aborting wizard")
		var apiErr *errs.ApiErr
		if errors.As(err, &apiErr) {
			return nil, err
		}
		return nil, errs.NewGenerationError(err)
	}

	project := models.Project{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         input.Name,
		Description:  input.Description,
		Type:         input.Type,
		Technologies: datatypes.NewJSONSlice(input.Technologies),
		Progress:     0,
		Deadline:     input.Deadline,
		CreatedAt:    time.Now(),
	}
	if err := wz.projects.Add(&project); err != nil {
		wz.logger.Error().Err(err).Str("project", input.Name).Msg("Project creation failed")
		return nil, errs.NewDatabaseError("create", "project", err)
	}

	result := &WizardResult{Project: project}
	if len(generated) == 0 {
		wz.logger.Warn().Str("projectId", project.ID.String()).Msg("Generator returned no items, skipping checklist creation")
		return result, nil
	}

	checklist := models.Checklist{
		ID:        uuid.New(),
		ProjectID: project.ID,
		Title:     GeneratedChecklistTitle,
		CreatedAt: time.Now(),
	}
	if err := wz.checklists.Add(&checklist); err != nil {
		wz.logger.Error().Err(err).Str("projectId", project.ID.String()).Msg("Checklist creation failed after project was persisted")
		result.PartialFailure = true
		result.PartialReason = errs.NewPartialFailureError("project", err).Error()
		return result, nil
	}

	items := make([]models.ChecklistItem, len(generated))
	for i, description := range generated {
		items[i] = models.ChecklistItem{
			ID:          uuid.New(),
			ChecklistID: checklist.ID,
			Description: description,
			Checked:     false,
			OrderIndex:  i + 1,
			CreatedAt:   time.Now(),
		}
	}
	if err := wz.items.AddBatch(items); err != nil {
		wz.logger.Error().Err(err).Str("projectId", project.ID.String()).Msg("Item insertion failed after project was persisted")
		result.PartialFailure = true
		result.PartialReason = errs.NewPartialFailureError("project", err).Error()
		return result, nil
	}

	result.Checklist = &checklist
	result.Items = items
	return result, nil
}
