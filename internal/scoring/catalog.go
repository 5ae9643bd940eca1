// Package scoring turns per-criterion raw scores into a weighted total and a
// letter grade, and owns the textual encoding of score maps.
package scoring

import (
	"math"
	"strings"

	"alfredoptarigan/course-evaluator/internal/apperrors"
)

// WeightTolerance is how far the sum of weights may drift from 100.
const WeightTolerance = 0.01

// Criterion is one weighted rubric dimension. Weight is a percentage in
// (0, 100]; MaxScore is the highest raw score a student may give.
type Criterion struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description,omitempty" yaml:"description"`
	Weight      float64 `json:"weight" yaml:"weight"`
	MaxScore    int     `json:"max_score" yaml:"max_score"`
}

// keySeparators are the characters the stored score text uses for its own
// structure, plus whitespace, which Decode trims.
const keySeparators = ",:\"'{} \t\r\n"

// ValidKey reports whether id can be stored in score text and read back as
// the same key.
func ValidKey(id string) bool {
	return id != "" && !strings.ContainsAny(id, keySeparators)
}

// Validate checks the per-criterion bounds.
func (c Criterion) Validate() error {
	if c.ID == "" {
		return &apperrors.ValidationError{Field: "id", Reason: "is required"}
	}
	if !ValidKey(c.ID) {
		return &apperrors.ValidationError{Field: "id", Reason: "must not contain separators, quotes or whitespace"}
	}
	if c.Weight <= 0 || c.Weight > 100 {
		return &apperrors.ValidationError{Field: "weight", Reason: "must be in (0, 100]"}
	}
	if c.MaxScore <= 0 {
		return &apperrors.ValidationError{Field: "max_score", Reason: "must be positive"}
	}
	return nil
}

// ScoreMap maps a criterion id to the raw score given for it.
type ScoreMap map[string]int

// Catalog is an ordered set of criteria with unique ids. It is not safe for
// concurrent mutation.
type Catalog struct {
	criteria []Criterion
	index    map[string]int
}

// NewCatalog builds a catalog from criteria, failing on the first invalid or
// duplicate entry. Weight validity is not enforced here; see IsValid.
func NewCatalog(criteria ...Criterion) (*Catalog, error) {
	c := &Catalog{index: make(map[string]int, len(criteria))}
	for _, cr := range criteria {
		if err := c.AddCriterion(cr); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// AddCriterion appends cr to the catalog.
func (c *Catalog) AddCriterion(cr Criterion) error {
	if err := cr.Validate(); err != nil {
		return err
	}
	if c.index == nil {
		c.index = make(map[string]int)
	}
	if _, ok := c.index[cr.ID]; ok {
		return &apperrors.DuplicateIDError{Kind: "criterion", ID: cr.ID}
	}
	c.index[cr.ID] = len(c.criteria)
	c.criteria = append(c.criteria, cr)
	return nil
}

// RemoveCriterion deletes the criterion with the given id, keeping the order
// of the remaining ones.
func (c *Catalog) RemoveCriterion(id string) error {
	pos, ok := c.index[id]
	if !ok {
		return &apperrors.NotFoundError{Kind: "criterion", ID: id}
	}
	c.criteria = append(c.criteria[:pos], c.criteria[pos+1:]...)
	delete(c.index, id)
	for i := pos; i < len(c.criteria); i++ {
		c.index[c.criteria[i].ID] = i
	}
	return nil
}

// Get returns the criterion with the given id.
func (c *Catalog) Get(id string) (Criterion, bool) {
	pos, ok := c.index[id]
	if !ok {
		return Criterion{}, false
	}
	return c.criteria[pos], true
}

// Criteria returns a copy of the criteria in catalog order.
func (c *Catalog) Criteria() []Criterion {
	out := make([]Criterion, len(c.criteria))
	copy(out, c.criteria)
	return out
}

// Len returns the number of criteria.
func (c *Catalog) Len() int { return len(c.criteria) }

// TotalWeight returns the sum of all weights.
func (c *Catalog) TotalWeight() float64 {
	sum := 0.0
	for _, cr := range c.criteria {
		sum += cr.Weight
	}
	return sum
}

// IsValid reports whether the weights sum to 100 within WeightTolerance.
// An invalid catalog is reported, never corrected.
func (c *Catalog) IsValid() bool {
	return math.Abs(c.TotalWeight()-100.0) <= WeightTolerance+1e-9
}

// CheckScore verifies that raw is within [0, MaxScore] for the criterion.
func (c *Catalog) CheckScore(criterionID string, raw int) error {
	cr, ok := c.Get(criterionID)
	if !ok {
		return &apperrors.UnknownCriterionError{CriterionID: criterionID}
	}
	if raw < 0 || raw > cr.MaxScore {
		return &apperrors.OutOfRangeError{CriterionID: criterionID, Score: raw, MaxScore: cr.MaxScore}
	}
	return nil
}

// WeightedContribution returns raw scaled by the criterion's weight
// percentage.
func (c *Catalog) WeightedContribution(criterionID string, raw int) (float64, error) {
	cr, ok := c.Get(criterionID)
	if !ok {
		return 0, &apperrors.UnknownCriterionError{CriterionID: criterionID}
	}
	return float64(raw) * cr.Weight / 100.0, nil
}
