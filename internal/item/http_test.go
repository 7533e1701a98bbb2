package item

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoonseo-dev/tinytunes/internal/category"
)

// stubDirectory serves a fixed set of categories and records find-or-create
// calls.
type stubDirectory struct {
	categories map[uuid.UUID]category.Category
	created    []string
}

func newStubDirectory() *stubDirectory {
	return &stubDirectory{categories: make(map[uuid.UUID]category.Category)}
}

func (d *stubDirectory) add(name string) category.Category {
	c := category.Category{ID: uuid.New(), Name: name, Visible: true}
	d.categories[c.ID] = c
	return c
}

func (d *stubDirectory) Get(ctx context.Context, id uuid.UUID) (category.Category, error) {
	c, ok := d.categories[id]
	if !ok {
		return category.Category{}, category.ErrNotFound
	}
	return c, nil
}

func (d *stubDirectory) FindOrCreateByName(ctx context.Context, name string, imageURL *string) (category.Category, error) {
	for _, c := range d.categories {
		if c.Name == name {
			return c, nil
		}
	}
	d.created = append(d.created, name)
	c := category.Category{ID: uuid.New(), Name: name, ImageURL: imageURL, Visible: true}
	d.categories[c.ID] = c
	return c, nil
}

func newTestHandlers(dir *stubDirectory) (*Handlers, *Service) {
	svc := NewService(newMemoryStore())
	return NewHandlers(svc, dir, zerolog.Nop()), svc
}

func TestHandleSearch(t *testing.T) {
	handlers, svc := newTestHandlers(newStubDirectory())

	created, err := svc.Create(context.Background(), CreateRequest{
		CategoryID:    uuid.New(),
		CreatePayload: CreatePayload{Name: "Lion"},
	})
	require.NoError(t, err)

	t.Run("finds a live item by name", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/items/search?name=Lion", nil)
		rec := httptest.NewRecorder()
		handlers.HandleSearch(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), created.ID.String())
	})

	t.Run("unknown name is a 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/items/search?name=Gryphon", nil)
		rec := httptest.NewRecorder()
		handlers.HandleSearch(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing name is a validation error", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/items/search", nil)
		rec := httptest.NewRecorder()
		handlers.HandleSearch(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleAdminCreateVerifiesCategory(t *testing.T) {
	dir := newStubDirectory()
	handlers, _ := newTestHandlers(dir)

	t.Run("unknown category is a 404", func(t *testing.T) {
		body := `{"categoryId":"` + uuid.NewString() + `","name":"Lion"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/items", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handlers.HandleAdminCreate(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Category not found")
	})

	t.Run("known category creates the item", func(t *testing.T) {
		animals := dir.add("Animals")
		body := `{"categoryId":"` + animals.ID.String() + `","name":"Lion"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/items", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handlers.HandleAdminCreate(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})
}

func TestHandleAdminBulkCreateByName(t *testing.T) {
	dir := newStubDirectory()
	handlers, svc := newTestHandlers(dir)

	t.Run("creates the category on first use", func(t *testing.T) {
		body := `{"categoryName":"Animals","categoryImageUrl":"https://cdn.example.com/animals.jpg",` +
			`"items":[{"name":"Lion"},{"name":"Elephant"}]}`
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/items/bulk", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handlers.HandleAdminBulkCreateByName(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, []string{"Animals"}, dir.created)
		assert.Contains(t, rec.Body.String(), `"createdCount":2`)
		assert.Contains(t, rec.Body.String(), `"categoryName":"Animals"`)
	})

	t.Run("reuses an existing category", func(t *testing.T) {
		body := `{"categoryName":"Animals","items":[{"name":"Giraffe"}]}`
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/items/bulk", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handlers.HandleAdminBulkCreateByName(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Len(t, dir.created, 1, "no second category for the same name")

		var animals category.Category
		for _, c := range dir.categories {
			if c.Name == "Animals" {
				animals = c
			}
		}
		items, err := svc.ListByCategory(context.Background(), animals.ID)
		require.NoError(t, err)
		assert.Len(t, items, 3)
	})

	t.Run("missing category name is a validation error", func(t *testing.T) {
		body := `{"items":[{"name":"Lion"}]}`
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/items/bulk", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handlers.HandleAdminBulkCreateByName(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty item list is a validation error", func(t *testing.T) {
		body := `{"categoryName":"Animals","items":[]}`
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/items/bulk", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handlers.HandleAdminBulkCreateByName(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
