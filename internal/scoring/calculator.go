package scoring

// ComputeTotal combines scores with the catalog into a weighted total.
//
// Criteria missing from scores contribute zero. Keys in scores that the
// catalog does not know are ignored; stored totals depend on this, so it is
// kept even though it hides typos in criterion ids.
func ComputeTotal(catalog *Catalog, scores ScoreMap) (float64, error) {
	total := 0.0
	for _, cr := range catalog.criteria {
		raw, ok := scores[cr.ID]
		if !ok {
			continue
		}
		if err := catalog.CheckScore(cr.ID, raw); err != nil {
			return 0, err
		}
		w, err := catalog.WeightedContribution(cr.ID, raw)
		if err != nil {
			return 0, err
		}
		total += w
	}
	return total, nil
}

// Breakdown is one criterion's share of a total.
type Breakdown struct {
	CriterionID  string  `json:"criterion_id"`
	Name         string  `json:"name"`
	RawScore     int     `json:"raw_score"`
	MaxScore     int     `json:"max_score"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
	Answered     bool    `json:"answered"`
}

// Explain returns the per-criterion contributions behind ComputeTotal, in
// catalog order.
func Explain(catalog *Catalog, scores ScoreMap) ([]Breakdown, error) {
	out := make([]Breakdown, 0, catalog.Len())
	for _, cr := range catalog.criteria {
		b := Breakdown{CriterionID: cr.ID, Name: cr.Name, MaxScore: cr.MaxScore, Weight: cr.Weight}
		if raw, ok := scores[cr.ID]; ok {
			if err := catalog.CheckScore(cr.ID, raw); err != nil {
				return nil, err
			}
			b.RawScore = raw
			b.Answered = true
			b.Contribution, _ = catalog.WeightedContribution(cr.ID, raw)
		}
		out = append(out, b)
	}
	return out, nil
}
