package handlers

import (
	"context"
	"time"

	"github.com/rogerio-castellano/pantry-tracker/internal/auth"
	"github.com/rogerio-castellano/pantry-tracker/internal/inventory"
	"github.com/rogerio-castellano/pantry-tracker/internal/models"
	repo "github.com/rogerio-castellano/pantry-tracker/internal/repo"
	"go.uber.org/zap"
)

// RecipeSuggester is the part of the recipe pipeline the API calls.
type RecipeSuggester interface {
	Suggest(ctx context.Context, text string) ([]models.Recipe, error)
}

var (
	store          *inventory.Store
	userRepo       repo.UserRepository
	recipeService  RecipeSuggester
	tokens         *auth.Tokens
	logger         = zap.NewNop()
	expiringWithin = 72 * time.Hour
)

func SetStore(s *inventory.Store) {
	store = s
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetRecipeService(s RecipeSuggester) {
	recipeService = s
}

func SetTokens(t *auth.Tokens) {
	tokens = t
}

func SetLogger(l *zap.Logger) {
	logger = l
}

// SetExpiringWithin sets how far ahead the summary counts items as expiring soon.
func SetExpiringWithin(d time.Duration) {
	expiringWithin = d
}
