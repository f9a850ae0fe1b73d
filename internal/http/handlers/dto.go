package handlers

import "github.com/rogerio-castellano/pantry-tracker/internal/models"

type ItemRequest struct {
	Name       string `json:"name"`
	Quantity   int    `json:"quantity,omitempty"`
	ExpiryDate string `json:"expiry_date,omitempty"` // YYYY-MM-DD
}

type ItemResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	ExpiryDate string `json:"expiry_date,omitempty"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ItemsSearchResult struct {
	Data []ItemResponse `json:"data"`
	Meta Meta           `json:"meta"`
}

type ItemCreatedResult struct {
	ID string `json:"id"`
}

type QuantityAdjustmentRequest struct {
	Delta int `json:"delta"` // can be positive or negative
}

type ImportItemsResult struct {
	ImportedItemsCount int               `json:"imported"`
	Errors             []ValidationError `json:"errors"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserLogin = CredentialsRequest

type LoginResult struct {
	Token string `json:"token"`
}

type RegisterResult struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type RecipeRequest struct {
	Text string `json:"text"`
}

type RecipesResult struct {
	Recipes []models.Recipe `json:"recipes"`
}

type RecipeErrorResult struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// StreamMessage is pushed over the item stream on every change of the
// visible list.
type StreamMessage struct {
	Data []ItemResponse `json:"data"`
	Meta Meta           `json:"meta"`
}

func toItemResponse(it models.Item) ItemResponse {
	resp := ItemResponse{
		ID:       it.ID,
		Name:     it.Name,
		Quantity: it.Quantity,
	}
	if it.ExpiryDate != nil {
		resp.ExpiryDate = it.ExpiryDate.Format(models.DateLayout)
	}
	return resp
}

func toItemResponses(items []models.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, it := range items {
		out[i] = toItemResponse(it)
	}
	return out
}
