// Package sampler draws the question list for a new assessment: a fixed
// number of generic catalog questions plus a bounded number of the hiring
// company's custom questions.
package sampler

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/candidex/screening-engine/internal/models"
)

// ErrInsufficientCatalog means more catalog questions were requested than
// the catalog holds. This is a configuration error, not a runtime one.
var ErrInsufficientCatalog = errors.New("not enough catalog questions")

// Select draws exactly catalogCount distinct questions from catalog and
// min(companyMax, len(companyPool)) distinct questions from companyPool,
// each uniformly at random without replacement. The result is catalog
// picks first, then company picks, in draw order; the persisted question
// ID sequence is exactly this concatenation.
//
// An empty company pool is not an error: the company draw is simply zero.
// The function is pure apart from consuming rng, so a seeded source gives
// deterministic output.
func Select(catalog, companyPool []models.Question, catalogCount, companyMax int, rng *rand.Rand) ([]models.Question, error) {
	if catalogCount > len(catalog) {
		return nil, fmt.Errorf("%w: requested %d, catalog has %d", ErrInsufficientCatalog, catalogCount, len(catalog))
	}

	companyCount := companyMax
	if len(companyPool) < companyCount {
		companyCount = len(companyPool)
	}

	picks := make([]models.Question, 0, catalogCount+companyCount)
	picks = append(picks, draw(catalog, catalogCount, rng)...)
	picks = append(picks, draw(companyPool, companyCount, rng)...)
	return picks, nil
}

// draw picks n distinct questions from pool, uniformly at random.
func draw(pool []models.Question, n int, rng *rand.Rand) []models.Question {
	if n <= 0 {
		return nil
	}

	out := make([]models.Question, 0, n)
	for _, i := range rng.Perm(len(pool))[:n] {
		out = append(out, pool[i])
	}
	return out
}
