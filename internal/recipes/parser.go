package recipes

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rogerio-castellano/pantry-tracker/internal/models"
)

// ParseRecipes turns generated text into recipes. The text is decoded into a
// generic tree first and each element is checked on its own: elements that do
// not have the four fields in the right shape are dropped. Every input yields
// either recipes or an *Error.
func ParseRecipes(raw string) ([]models.Recipe, error) {
	doc := stripFence(strings.TrimSpace(raw))

	var tree any
	dec := json.NewDecoder(strings.NewReader(doc))
	dec.UseNumber()
	if err := dec.Decode(&tree); err != nil {
		return nil, newError(KindMalformedOutput, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, newError(KindMalformedOutput, errors.New("trailing data after document"))
	}

	elems, err := recipeArray(tree)
	if err != nil {
		return nil, newError(KindSchemaMismatch, err)
	}

	out := make([]models.Recipe, 0, len(elems))
	for _, el := range elems {
		if r, ok := toRecipe(el); ok {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return nil, newError(KindNoValidRecipes, fmt.Errorf("none of %d elements is a recipe", len(elems)))
	}
	return out, nil
}

// stripFence removes one Markdown code fence wrapping the whole document.
func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	body := s[3 : len(s)-3]
	nl := strings.IndexByte(body, '\n')
	if nl < 0 {
		return s
	}
	// the info string, e.g. "json"
	if info := strings.TrimSpace(body[:nl]); strings.ContainsAny(info, "[{") {
		return s
	}
	return strings.TrimSpace(body[nl+1:])
}

func recipeArray(tree any) ([]any, error) {
	switch v := tree.(type) {
	case []any:
		return v, nil
	case map[string]any:
		if arr, ok := v["recipes"].([]any); ok {
			return arr, nil
		}
		return nil, errors.New("object without a recipes array")
	default:
		return nil, fmt.Errorf("expected an array, got %s", jsonType(tree))
	}
}

func toRecipe(el any) (models.Recipe, bool) {
	obj, ok := el.(map[string]any)
	if !ok {
		return models.Recipe{}, false
	}
	name, ok := obj["name"].(string)
	if !ok || strings.TrimSpace(name) == "" {
		return models.Recipe{}, false
	}
	desc, ok := obj["description"].(string)
	if !ok {
		return models.Recipe{}, false
	}
	ingredients, ok := stringList(obj["ingredients"])
	if !ok {
		return models.Recipe{}, false
	}
	instructions, ok := stringList(obj["instructions"])
	if !ok {
		return models.Recipe{}, false
	}
	return models.Recipe{
		Name:         name,
		Description:  desc,
		Ingredients:  ingredients,
		Instructions: instructions,
	}, true
}

func stringList(v any) ([]string, bool) {
	arr, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		s, ok := e.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case string:
		return "string"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
