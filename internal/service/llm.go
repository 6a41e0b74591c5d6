package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/diacare/backend/internal/types"
)

// NoRecipeReturned is the free text answer when the model replied with nothing.
const NoRecipeReturned = "No recipe returned"

var (
	errNotObject   = errors.New("reply is not a JSON object")
	errInvalidJSON = errors.New("reply is not valid JSON")
)

// Gateway turns generation requests into a single provider call and
// normalizes the reply. It holds no per-request state.
type Gateway struct {
	provider Provider
	log      zerolog.Logger
}

// NewGateway creates a Gateway around provider.
func NewGateway(provider Provider, log zerolog.Logger) *Gateway {
	return &Gateway{
		provider: provider,
		log:      log.With().Str("component", "gateway").Logger(),
	}
}

// GenerateRecipeText returns the model's free text recipe verbatim.
func (g *Gateway) GenerateRecipeText(ctx context.Context, req types.RecipeRequest) (string, error) {
	prompt := BuildRecipePrompt(req, false)

	reply, err := g.complete(ctx, prompt, ModeText, "recipe")
	if err != nil {
		return "", classifyProviderError(err, msgGenerationFailed)
	}
	if reply == "" {
		return NoRecipeReturned, nil
	}
	return reply, nil
}

// GenerateRecipe asks for a structured recipe. Any JSON object is passed
// through as sent; anything else comes back as the fallback variant.
func (g *Gateway) GenerateRecipe(ctx context.Context, req types.RecipeRequest) (types.RecipeResult, error) {
	prompt := BuildRecipePrompt(req, true)

	reply, err := g.complete(ctx, prompt, ModeJSON, "recipe")
	if err != nil {
		return types.RecipeResult{}, classifyProviderError(err, msgGenerationFailed)
	}

	body, err := replyObject(reply)
	if err != nil {
		g.log.Warn().Err(err).Int("reply_len", len(reply)).Msg("recipe reply unparseable, using fallback")
		return types.FallbackRecipe(reply), nil
	}

	var recipe types.GeneratedRecipe
	decodeLoose(body, &recipe)
	return types.ParsedRecipe(body, recipe), nil
}

// GenerateMealPlan asks for a structured multi-day plan.
func (g *Gateway) GenerateMealPlan(ctx context.Context, req types.MealPlanRequest) (types.MealPlanResult, error) {
	prompt := BuildMealPlanPrompt(req)

	reply, err := g.complete(ctx, prompt, ModeJSON, "meal_plan")
	if err != nil {
		return types.MealPlanResult{}, classifyProviderError(err, msgMealPlanFailed)
	}

	body, err := replyObject(reply)
	if err != nil {
		g.log.Warn().Err(err).Int("reply_len", len(reply)).Msg("meal plan reply unparseable, using fallback")
		return types.FallbackMealPlan(reply, req.DayCount(), req.DailyCalories.String()), nil
	}

	var plan types.MealPlan
	decodeLoose(body, &plan)
	return types.ParsedMealPlan(body, plan), nil
}

// complete performs the one upstream call. The call outlives a disconnected
// caller, so cancellation is not propagated.
func (g *Gateway) complete(ctx context.Context, prompt Prompt, mode Mode, kind string) (string, error) {
	start := time.Now()
	reply, err := g.provider.Complete(context.WithoutCancel(ctx), prompt.System, prompt.User, mode)

	lvl := zerolog.InfoLevel
	if err != nil {
		lvl = zerolog.ErrorLevel
	}
	g.log.WithLevel(lvl).Err(err).
		Str("kind", kind).
		Stringer("mode", mode).
		Dur("duration", time.Since(start)).
		Int("reply_len", len(reply)).
		Msg("provider call finished")

	return reply, err
}

// replyObject returns the JSON object carried by a structured reply. An empty
// reply counts as an empty object and a surrounding markdown code fence is
// ignored. Anything that is not a single JSON object is an error.
func replyObject(reply string) (json.RawMessage, error) {
	if reply == "" {
		return json.RawMessage("{}"), nil
	}
	body := bytes.TrimSpace([]byte(stripCodeFence(reply)))
	if len(body) == 0 || body[0] != '{' {
		return nil, errNotObject
	}
	if !json.Valid(body) {
		return nil, errInvalidJSON
	}
	return json.RawMessage(body), nil
}

// decodeLoose fills v from body, skipping top-level fields whose shape does
// not match v.
func decodeLoose(body []byte, v any) {
	if json.Unmarshal(body, v) == nil {
		return
	}
	var fields map[string]json.RawMessage
	if json.Unmarshal(body, &fields) != nil {
		return
	}
	for k, raw := range fields {
		one, err := json.Marshal(map[string]json.RawMessage{k: raw})
		if err != nil {
			continue
		}
		_ = json.Unmarshal(one, v)
	}
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
	// Drop the language tag on the opening line, e.g. ```json.
	if i := strings.IndexByte(s, '\n'); i >= 0 && !strings.Contains(s[:i], "{") {
		s = s[i+1:]
	}
	return s
}
