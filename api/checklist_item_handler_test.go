package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/checkmate-app/backend/database"
	"github.com/checkmate-app/backend/models"
)

type itemHandlerFixture struct {
	db      database.Database
	userID  uuid.UUID
	project *models.Project
	router  *chi.Mux
}

// newItemHandlerFixture wires the item handler behind a chi router with a
// fixed authenticated user, backed by in-memory sqlite. The production
// schema uses postgres defaults, so the tables are created with portable
// DDL.
func newItemHandlerFixture(t *testing.T) *itemHandlerFixture {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	ddl := []string{
		`CREATE TABLE projects (
			id text PRIMARY KEY,
			user_id text NOT NULL,
			name text NOT NULL,
			description text NOT NULL DEFAULT '',
			type text NOT NULL,
			technologies text,
			progress integer NOT NULL DEFAULT 0,
			deadline date,
			created_at datetime NOT NULL,
			is_public boolean NOT NULL DEFAULT false
		)`,
		`CREATE TABLE checklists (
			id text PRIMARY KEY,
			project_id text NOT NULL,
			title text NOT NULL,
			created_at datetime NOT NULL
		)`,
		`CREATE TABLE checklist_items (
			id text PRIMARY KEY,
			checklist_id text NOT NULL,
			description text NOT NULL,
			checked boolean NOT NULL DEFAULT false,
			order_index integer NOT NULL DEFAULT 0,
			created_at datetime NOT NULL,
			due_date date,
			is_critical boolean NOT NULL DEFAULT false
		)`,
	}
	for _, stmt := range ddl {
		require.NoError(t, gormDB.Exec(stmt).Error)
	}

	db := database.New(gormDB)
	userID := uuid.New()

	project := &models.Project{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         "Shop",
		Type:         "web",
		Technologies: datatypes.NewJSONSlice([]string{"Go"}),
		CreatedAt:    time.Now(),
	}
	require.NoError(t, db.ProjectRepo().Add(project))

	itemHandler := newChecklistItemHandler(db.ChecklistItemRepo(), db.ChecklistRepo(), db.ProjectRepo())
	listHandler := newChecklistHandler(db.ChecklistRepo(), db.ProjectRepo())

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(ctxWithUserID(r.Context(), userID)))
		})
	})
	router.Post("/checklist/{checklistID}/item", itemHandler.createItem())
	router.Patch("/item/{itemID}/toggle", itemHandler.toggleItem())
	router.Delete("/item/{itemID}", itemHandler.deleteItem())
	router.Delete("/checklist/{checklistID}", listHandler.deleteChecklist())

	return &itemHandlerFixture{db: db, userID: userID, project: project, router: router}
}

func (f *itemHandlerFixture) seedChecklist(t *testing.T, descriptions ...string) (*models.Checklist, []models.ChecklistItem) {
	t.Helper()
	checklist := &models.Checklist{
		ID:        uuid.New(),
		ProjectID: f.project.ID,
		Title:     "Setup",
		CreatedAt: time.Now(),
	}
	require.NoError(t, f.db.ChecklistRepo().Add(checklist))

	items := make([]models.ChecklistItem, len(descriptions))
	for i, description := range descriptions {
		items[i] = models.ChecklistItem{
			ID:          uuid.New(),
			ChecklistID: checklist.ID,
			Description: description,
			OrderIndex:  i + 1,
			CreatedAt:   time.Now(),
		}
	}
	require.NoError(t, f.db.ChecklistItemRepo().AddBatch(items))
	return checklist, items
}

func (f *itemHandlerFixture) storedProgress(t *testing.T) int {
	t.Helper()
	project, err := f.db.ProjectRepo().FindByID(f.project.ID, f.userID)
	require.NoError(t, err)
	return project.Progress
}

func (f *itemHandlerFixture) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestToggleItemRecomputesProjectProgress(t *testing.T) {
	fixture := newItemHandlerFixture(t)
	_, items := fixture.seedChecklist(t, "Plan", "Build", "Ship")

	t.Run("checking one of three items stores 33", func(t *testing.T) {
		rec := fixture.do(http.MethodPatch, "/item/"+items[0].ID.String()+"/toggle", `{"checked":true}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 33, fixture.storedProgress(t))
	})

	t.Run("checking a second item stores 67", func(t *testing.T) {
		rec := fixture.do(http.MethodPatch, "/item/"+items[1].ID.String()+"/toggle", `{"checked":true}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 67, fixture.storedProgress(t))
	})

	t.Run("unchecking drops the stored value back", func(t *testing.T) {
		rec := fixture.do(http.MethodPatch, "/item/"+items[1].ID.String()+"/toggle", `{"checked":false}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 33, fixture.storedProgress(t))
	})

	t.Run("deleting an unchecked item changes the denominator", func(t *testing.T) {
		rec := fixture.do(http.MethodDelete, "/item/"+items[2].ID.String(), "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 50, fixture.storedProgress(t))
	})

	t.Run("a foreign item is not reachable", func(t *testing.T) {
		rec := fixture.do(http.MethodPatch, "/item/"+uuid.NewString()+"/toggle", `{"checked":true}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCreateItem(t *testing.T) {
	fixture := newItemHandlerFixture(t)
	checklist, _ := fixture.seedChecklist(t, "Plan")

	t.Run("creates an item with a due date", func(t *testing.T) {
		rec := fixture.do(http.MethodPost, "/checklist/"+checklist.ID.String()+"/item",
			`{"description":"Deploy","due_date":"2026-04-01","is_critical":true,"order_index":2}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		checklists, err := fixture.db.ChecklistRepo().FindByProject(fixture.project.ID)
		require.NoError(t, err)
		require.Len(t, checklists[0].Items, 2)
		created := checklists[0].Items[1]
		assert.Equal(t, "Deploy", created.Description)
		assert.True(t, created.IsCritical)
		require.NotNil(t, created.DueDate)
		assert.Equal(t, "2026-04-01", created.DueDate.Format("2006-01-02"))
	})

	t.Run("rejects a missing description", func(t *testing.T) {
		rec := fixture.do(http.MethodPost, "/checklist/"+checklist.ID.String()+"/item", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects a malformed due date", func(t *testing.T) {
		rec := fixture.do(http.MethodPost, "/checklist/"+checklist.ID.String()+"/item",
			`{"description":"Deploy","due_date":"April 1st"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
