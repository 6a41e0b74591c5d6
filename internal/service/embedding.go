package service

import (
	"hash/fnv"
	"math"
	"strings"
	"unicode"

	pgvector "github.com/pgvector/pgvector-go"

	"github.com/diacare/backend/internal/models"
	"github.com/diacare/backend/internal/types"
)

// GenerateEmbedding returns a deterministic bag-of-words embedding for text.
// Each word is hashed into one of models.EmbeddingDimensions buckets and the
// vector is L2-normalized, so texts sharing words end up close together.
func GenerateEmbedding(text string) pgvector.Vector {
	vec := make([]float32, models.EmbeddingDimensions)

	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		if len(w) < 2 {
			continue
		}
		h := fnv.New32a()
		_, _ = h.Write([]byte(w))
		vec[h.Sum32()%models.EmbeddingDimensions]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v * v)
	}
	if norm > 0 {
		inv := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= inv
		}
	}
	return pgvector.NewVector(vec)
}

// recipeText is the text indexed for a saved recipe.
func recipeText(r types.GeneratedRecipe, mealType string) string {
	parts := []string{r.Title, r.Description, mealType, r.GlycemicIndex}
	for _, ing := range r.Ingredients {
		parts = append(parts, ing.Item)
	}
	return strings.Join(parts, " ")
}
