package handlers

import (
	"net/http"

	"github.com/rogerio-castellano/pantry-tracker/internal/recipes"
)

// SuggestRecipesHandler godoc
// @Summary Suggest recipes for a dish or ingredient
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RecipeRequest true "Dish or ingredients"
// @Success 200 {object} RecipesResult
// @Failure 400 {object} RecipeErrorResult "EmptyRequest"
// @Failure 429 {string} string "Too many requests"
// @Failure 502 {object} RecipeErrorResult "GenerationUnavailable, MalformedOutput, SchemaMismatch or NoValidRecipes"
// @Router /recipes [post]
func SuggestRecipesHandler(w http.ResponseWriter, r *http.Request) {
	var req RecipeRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	out, err := recipeService.Suggest(r.Context(), req.Text)
	if err != nil {
		kind := recipes.KindOf(err)
		status := http.StatusBadGateway
		msg := "recipes could not be generated"
		switch kind {
		case recipes.KindEmptyRequest:
			status = http.StatusBadRequest
			msg = "text is required"
		case "":
			kind = "Internal"
			status = http.StatusInternalServerError
			msg = "internal error"
		}
		respond(w, status, RecipeErrorResult{Kind: string(kind), Message: msg})
		return
	}
	respond(w, http.StatusOK, RecipesResult{Recipes: out})
}
