package categories

import (
	"context"
	"errors"
	"net/http"

	"github.com/lankamart/storefront/app/response"
	"github.com/lankamart/storefront/models"
)

type CategoryProvider interface {
	GetAllCategories() []models.Category
	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, category models.Category) error
	DeleteCategory(ctx context.Context, id string) error
}

type CategoryHandler struct {
	repo CategoryProvider
}

func NewCategoryHandler(r CategoryProvider) *CategoryHandler {
	return &CategoryHandler{repo: r}
}

type categoryInput struct {
	Name  models.LocalizedString `json:"name"`
	Icon  string                 `json:"icon"`
	Color string                 `json:"color"`
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.repo.GetAllCategories())
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeInput(w, r)
	if !ok {
		return
	}

	category := &models.Category{
		Name:  input.Name,
		Icon:  input.Icon,
		Color: input.Color,
	}

	if err := h.repo.CreateCategory(r.Context(), category); err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	response.JSON(w, http.StatusCreated, category)
}

// HandleUpdate replaces a category. Renaming it moves the products filed
// under the old label.
func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeInput(w, r)
	if !ok {
		return
	}

	category := models.Category{
		ID:    r.PathValue("id"),
		Name:  input.Name,
		Icon:  input.Icon,
		Color: input.Color,
	}

	err := h.repo.UpdateCategory(r.Context(), category)
	switch {
	case errors.Is(err, models.ErrCategoryNotFound):
		response.Error(w, http.StatusNotFound, "Category not found")
	case err != nil:
		response.Error(w, http.StatusInternalServerError, "Failed to update category")
	default:
		response.OK(w, category)
	}
}

func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.repo.DeleteCategory(r.Context(), r.PathValue("id"))
	switch {
	case errors.Is(err, models.ErrCategoryNotFound):
		response.Error(w, http.StatusNotFound, "Category not found")
	case err != nil:
		response.Error(w, http.StatusInternalServerError, "Failed to delete category")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func decodeInput(w http.ResponseWriter, r *http.Request) (categoryInput, bool) {
	var input categoryInput
	if err := response.Decode(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return categoryInput{}, false
	}
	if input.Name.VI == "" {
		response.Error(w, http.StatusBadRequest, "Missing Vietnamese name")
		return categoryInput{}, false
	}
	return input, true
}
