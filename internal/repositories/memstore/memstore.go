// Package memstore is an in-memory implementation of the repository
// interfaces. It backs DB_DRIVER=memory and the service tests.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/course-evaluator/internal/apperrors"
	"alfredoptarigan/course-evaluator/internal/models"
	"alfredoptarigan/course-evaluator/internal/repositories"
	"alfredoptarigan/course-evaluator/internal/scoring"
)

// Store bundles one repository per entity.
type Store struct {
	Evaluations *Evaluations
	Criteria    *Criteria
	Periods     *Periods
	Directory   *Directory
	Users       *Users
}

func New() *Store {
	return NewWithCodec(scoring.NewCodec(nil))
}

// NewWithCodec uses codec for the stored score text.
func NewWithCodec(codec *scoring.Codec) *Store {
	return &Store{
		Evaluations: &Evaluations{byID: map[uuid.UUID]*stored{}, byTriple: map[triple]uuid.UUID{}, codec: codec},
		Criteria:    &Criteria{catalogs: map[string][]scoring.Criterion{}},
		Periods:     &Periods{periods: map[string]models.EvaluationPeriod{}},
		Directory: &Directory{
			colleges:  map[string]models.College{},
			courses:   map[string]models.Course{},
			classes:   map[string]models.Class{},
			offerings: map[string]models.Offering{},
		},
		Users: &Users{users: map[string]models.UserRecord{}},
	}
}

type triple struct {
	student, offering, period string
}

// stored keeps the encoded score text, as the database does, so decoding
// behaves the same in both stores.
type stored struct {
	record models.EvaluationRecord
	seq    int
}

// Evaluations implements repositories.EvaluationRepository.
type Evaluations struct {
	mu       sync.RWMutex
	byID     map[uuid.UUID]*stored
	byTriple map[triple]uuid.UUID
	seq      int
	codec    *scoring.Codec
}

var _ repositories.EvaluationRepository = (*Evaluations)(nil)

func (e *Evaluations) decode(s *stored) models.EvaluationRecord {
	rec := s.record
	rec.Scores = e.codec.Decode(rec.ScoreText)
	return rec
}

func (e *Evaluations) FindByTriple(_ context.Context, studentID, offeringID, periodID string) (*models.EvaluationRecord, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	id, ok := e.byTriple[triple{studentID, offeringID, periodID}]
	if !ok {
		return nil, nil
	}
	rec := e.decode(e.byID[id])
	return &rec, nil
}

func (e *Evaluations) FindByID(_ context.Context, id uuid.UUID) (*models.EvaluationRecord, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	s, ok := e.byID[id]
	if !ok {
		return nil, &apperrors.NotFoundError{Kind: "evaluation", ID: id.String()}
	}
	rec := e.decode(s)
	return &rec, nil
}

func (e *Evaluations) InsertIfAbsent(_ context.Context, eval *models.EvaluationRecord) error {
	eval.ScoreText = e.codec.Encode(eval.Scores)

	e.mu.Lock()
	defer e.mu.Unlock()
	key := triple{eval.StudentID, eval.OfferingID, eval.PeriodID}
	if _, ok := e.byTriple[key]; ok {
		return &apperrors.DuplicateSubmissionError{StudentID: eval.StudentID, OfferingID: eval.OfferingID, PeriodID: eval.PeriodID}
	}
	if eval.ID == uuid.Nil {
		eval.ID = uuid.New()
	}
	if eval.CreatedAt.IsZero() {
		eval.CreatedAt = time.Now()
	}
	e.seq++
	rec := *eval
	rec.Scores = nil
	e.byID[eval.ID] = &stored{record: rec, seq: e.seq}
	e.byTriple[key] = eval.ID
	return nil
}

// PutRaw stores a record with its score text as given, bypassing encoding.
// Used to load legacy rows.
func (e *Evaluations) PutRaw(eval models.EvaluationRecord) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.seq++
	eval.Scores = nil
	e.byID[eval.ID] = &stored{record: eval, seq: e.seq}
	e.byTriple[triple{eval.StudentID, eval.OfferingID, eval.PeriodID}] = eval.ID
}

func (e *Evaluations) List(_ context.Context, periodID string, filter repositories.EvaluationFilter) ([]models.EvaluationRecord, error) {
	offerings := map[string]struct{}{}
	for _, id := range filter.OfferingIDs {
		offerings[id] = struct{}{}
	}

	e.mu.RLock()
	matched := make([]*stored, 0)
	for _, s := range e.byID {
		r := s.record
		if r.PeriodID != periodID {
			continue
		}
		if filter.StudentID != "" && r.StudentID != filter.StudentID {
			continue
		}
		if len(offerings) > 0 {
			if _, ok := offerings[r.OfferingID]; !ok {
				continue
			}
		}
		matched = append(matched, s)
	}
	e.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].seq < matched[j].seq })
	out := make([]models.EvaluationRecord, 0, len(matched))
	for _, s := range matched {
		out = append(out, e.decode(s))
	}
	return out, nil
}

func (e *Evaluations) CountByPeriod(_ context.Context, periodID string) (int64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var n int64
	for _, s := range e.byID {
		if s.record.PeriodID == periodID {
			n++
		}
	}
	return n, nil
}

// Criteria implements repositories.CriteriaRepository.
type Criteria struct {
	mu       sync.RWMutex
	catalogs map[string][]scoring.Criterion
}

var _ repositories.CriteriaRepository = (*Criteria)(nil)

func (c *Criteria) GetCatalog(_ context.Context, courseType string) (*scoring.Catalog, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return scoring.NewCatalog(c.catalogs[courseType]...)
}

func (c *Criteria) SaveCatalog(_ context.Context, courseType string, catalog *scoring.Catalog) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.catalogs[courseType] = catalog.Criteria()
	return nil
}

func (c *Criteria) ListCourseTypes(_ context.Context) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.catalogs))
	for k, v := range c.catalogs {
		if len(v) > 0 {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Periods implements repositories.PeriodRepository.
type Periods struct {
	mu      sync.RWMutex
	periods map[string]models.EvaluationPeriod
}

var _ repositories.PeriodRepository = (*Periods)(nil)

func (p *Periods) Create(_ context.Context, period *models.EvaluationPeriod) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.periods[period.ID]; ok {
		return &apperrors.DuplicateIDError{Kind: "period", ID: period.ID}
	}
	now := time.Now()
	period.CreatedAt, period.UpdatedAt = now, now
	p.periods[period.ID] = *period
	return nil
}

func (p *Periods) FindByID(_ context.Context, id string) (*models.EvaluationPeriod, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	period, ok := p.periods[id]
	if !ok {
		return nil, &apperrors.NotFoundError{Kind: "period", ID: id}
	}
	return &period, nil
}

func (p *Periods) Save(_ context.Context, period *models.EvaluationPeriod) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.periods[period.ID]; !ok {
		return &apperrors.NotFoundError{Kind: "period", ID: period.ID}
	}
	period.UpdatedAt = time.Now()
	p.periods[period.ID] = *period
	return nil
}

func (p *Periods) List(_ context.Context) ([]models.EvaluationPeriod, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]models.EvaluationPeriod, 0, len(p.periods))
	for _, period := range p.periods {
		out = append(out, period)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.After(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (p *Periods) Delete(_ context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.periods[id]; !ok {
		return &apperrors.NotFoundError{Kind: "period", ID: id}
	}
	delete(p.periods, id)
	return nil
}
