package types

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// weightTolerance is the floating tolerance for weight-sum checks.
const weightTolerance = 1e-6

// WeightConfig holds the scoring weights. The five hard sub-weights must
// sum to 1.0, as must the hard/semantic pair. Config is read-only after
// startup; the aggregator validates it once at construction.
type WeightConfig struct {
	Skills         float64 `json:"skills" validate:"gte=0"`
	Education      float64 `json:"education" validate:"gte=0"`
	Experience     float64 `json:"experience" validate:"gte=0"`
	Projects       float64 `json:"projects" validate:"gte=0"`
	Certifications float64 `json:"certifications" validate:"gte=0"`
	HardMatch      float64 `json:"hard_match" validate:"gte=0"`
	SemanticMatch  float64 `json:"semantic_match" validate:"gte=0"`
}

// DefaultWeightConfig returns the standard weight table.
func DefaultWeightConfig() WeightConfig {
	return WeightConfig{
		Skills:         0.4,
		Education:      0.2,
		Experience:     0.2,
		Projects:       0.1,
		Certifications: 0.1,
		HardMatch:      0.5,
		SemanticMatch:  0.5,
	}
}

// Validate checks non-negativity and the two sum-to-1.0 invariants.
func (w WeightConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(w); err != nil {
		return err
	}

	hardSum := w.Skills + w.Education + w.Experience + w.Projects + w.Certifications
	if math.Abs(hardSum-1.0) > weightTolerance {
		return fmt.Errorf("hard sub-weights sum to %.6f, want 1.0", hardSum)
	}

	splitSum := w.HardMatch + w.SemanticMatch
	if math.Abs(splitSum-1.0) > weightTolerance {
		return fmt.Errorf("hard/semantic weights sum to %.6f, want 1.0", splitSum)
	}

	return nil
}
