package recipes

import (
	"fmt"
	"strings"
)

// The field names below must match what ParseRecipes accepts.
const promptTemplate = "Generate three recipes for a %s dish. " +
	"Respond with only a JSON array and no other text. " +
	"Each element of the array must be an object with exactly these fields: " +
	"\"name\" (string, the recipe name), " +
	"\"description\" (string, a short description), " +
	"\"ingredients\" (array of strings, one ingredient per entry) and " +
	"\"instructions\" (array of strings, one step per entry, in the order they are performed)."

// FormatPrompt renders the generation instruction for the user's text. The
// text is embedded verbatim.
func FormatPrompt(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", newError(KindEmptyRequest, nil)
	}
	return fmt.Sprintf(promptTemplate, text), nil
}
