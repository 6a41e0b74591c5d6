package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// Fallback values used when a structured reply cannot be parsed.
const (
	FallbackRecipeTitle   = "Generated Recipe"
	FallbackMealPlanTitle = "Generated Meal Plan"
	UnknownGlycemicIndex  = "Unknown"
)

var errInvalidAmount = errors.New("amount must be a JSON string or number")

// Amount is a nutritional quantity as the model wrote it: either a number
// (150) or a string with a unit ("10g"). The original JSON token is kept so a
// parsed reply re-encodes unchanged.
type Amount string

// NumberAmount builds an Amount from a plain value, encoding it as a JSON
// number when it parses as one and as a JSON string otherwise.
func NumberAmount(v string) Amount {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if _, err := strconv.ParseFloat(v, 64); err == nil {
		return Amount(v)
	}
	quoted, _ := json.Marshal(v)
	return Amount(quoted)
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		*a = ""
		return nil
	}
	switch {
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return errInvalidAmount
		}
	}
	*a = Amount(data)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	if a == "" {
		return []byte("null"), nil
	}
	return []byte(a), nil
}

// String returns the value without JSON quoting.
func (a Amount) String() string {
	if strings.HasPrefix(string(a), `"`) {
		var s string
		if err := json.Unmarshal([]byte(a), &s); err == nil {
			return s
		}
	}
	return string(a)
}

// Float extracts the leading number, so "10g" yields 10.
func (a Amount) Float() (float64, bool) {
	s := strings.TrimSpace(a.String())
	end := 0
	for end < len(s) && (s[end] == '.' || s[end] == '-' || (s[end] >= '0' && s[end] <= '9')) {
		end++
	}
	n, err := strconv.ParseFloat(s[:end], 64)
	return n, err == nil
}

// IngredientNote pairs an ingredient with why it suits a diabetic diet.
type IngredientNote struct {
	Item   string `json:"item"`
	Reason string `json:"reason"`
}

// NutritionalInfo is the per-serving macro breakdown.
type NutritionalInfo struct {
	Carbs    Amount `json:"carbs,omitempty"`
	Protein  Amount `json:"protein,omitempty"`
	Fat      Amount `json:"fat,omitempty"`
	Calories Amount `json:"calories,omitempty"`
}

// GeneratedRecipe is the structured recipe returned by the model. Every field
// is optional: the fallback shape only carries title, description and
// glycemic index.
type GeneratedRecipe struct {
	Title             string           `json:"title,omitempty"`
	Description       string           `json:"description,omitempty"`
	GlycemicIndex     string           `json:"glycemicIndex,omitempty"`
	EthicalDisclaimer string           `json:"ethicalDisclaimer,omitempty"`
	Ingredients       []IngredientNote `json:"ingredients,omitempty"`
	Instructions      []string         `json:"instructions,omitempty"`
	Tips              []string         `json:"tips,omitempty"`
	NutritionalInfo   *NutritionalInfo `json:"nutritionalInfo,omitempty"`
}

// ResultKind tags how a structured reply was obtained.
type ResultKind int

const (
	// ResultParsed means the reply decoded into the expected shape.
	ResultParsed ResultKind = iota
	// ResultFallback means decoding failed and the raw text was wrapped.
	ResultFallback
)

func (k ResultKind) String() string {
	if k == ResultFallback {
		return "fallback"
	}
	return "parsed"
}

// RecipeResult is the outcome of a structured recipe generation. Raw holds
// the model's JSON object for parsed results and is what goes on the wire;
// Recipe is the best-effort typed view of it.
type RecipeResult struct {
	Kind   ResultKind
	Recipe GeneratedRecipe
	Raw    json.RawMessage
}

// ParsedRecipe wraps a decoded reply together with its original JSON.
func ParsedRecipe(raw json.RawMessage, r GeneratedRecipe) RecipeResult {
	return RecipeResult{Kind: ResultParsed, Recipe: r, Raw: raw}
}

// FallbackRecipe wraps an unparseable reply.
func FallbackRecipe(raw string) RecipeResult {
	return RecipeResult{
		Kind: ResultFallback,
		Recipe: GeneratedRecipe{
			Title:         FallbackRecipeTitle,
			Description:   raw,
			GlycemicIndex: UnknownGlycemicIndex,
		},
	}
}

// MarshalJSON encodes the model's object as received, or the fallback
// recipe. The tag is not part of the wire shape.
func (r RecipeResult) MarshalJSON() ([]byte, error) {
	if r.Kind == ResultParsed && len(r.Raw) > 0 {
		return r.Raw, nil
	}
	return json.Marshal(r.Recipe)
}
