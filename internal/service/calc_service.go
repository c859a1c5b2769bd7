package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/acadex/gradepoint-backend/internal/calc"
	"github.com/acadex/gradepoint-backend/internal/config"
	"github.com/acadex/gradepoint-backend/internal/model"
)

// emitTimeout bounds the fire-and-forget telemetry push so a slow Redis
// can never hold a calculation goroutine.
const emitTimeout = 2 * time.Second

// CalcService runs grade point calculations and emits usage telemetry.
type CalcService struct {
	rdb       *redis.Client
	telemetry bool
	log       zerolog.Logger
}

// NewCalcService creates a new CalcService.
func NewCalcService(cfg *config.Config, rdb *redis.Client, log zerolog.Logger) *CalcService {
	return &CalcService{
		rdb:       rdb,
		telemetry: cfg.TelemetryEnabled,
		log:       log.With().Str("component", "calc_service").Logger(),
	}
}

// GPA computes the term GPA for the submitted courses.
func (s *CalcService) GPA(courses []model.CourseInput, source string) model.GPAResponse {
	in := make([]calc.Course, 0, len(courses))
	for _, c := range courses {
		in = append(in, calc.Course{Name: c.Name, CreditHours: c.CreditHours, Grade: c.Grade})
	}

	valid := 0
	for _, c := range in {
		if c.Valid() {
			valid++
		}
	}

	res := calc.GPA(in)
	s.emit(model.UsageKindGPA, source, len(in), valid, res.TotalCreditHours)

	return model.GPAResponse{GPA: res.GPA, TotalCreditHours: res.TotalCreditHours}
}

// CGPA computes the cumulative GPA for the submitted terms.
func (s *CalcService) CGPA(terms []model.TermInput, source string) model.CGPAResponse {
	in := make([]calc.Term, 0, len(terms))
	for _, t := range terms {
		in = append(in, calc.Term{Name: t.Name, GPA: t.GPA, CreditHours: t.CreditHours})
	}

	valid := 0
	for _, t := range in {
		if t.Valid() {
			valid++
		}
	}

	res := calc.CGPA(in)
	s.emit(model.UsageKindCGPA, source, len(in), valid, res.TotalCreditHours)

	return model.CGPAResponse{CGPA: res.CGPA, TotalCreditHours: res.TotalCreditHours}
}

// emit queues a usage event off the request path. Telemetry loss is
// acceptable: failures are logged, never surfaced to the caller.
func (s *CalcService) emit(kind, source string, entries, validEntries int, creditHours float64) {
	if !s.telemetry {
		return
	}

	ev := model.UsageEvent{
		Kind:         kind,
		Source:       source,
		Entries:      entries,
		ValidEntries: validEntries,
		CreditHours:  creditHours,
		OccurredAt:   time.Now().UTC(),
	}

	raw, err := json.Marshal(ev)
	if err != nil {
		s.log.Error().Err(err).Msg("marshal usage event")
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), emitTimeout)
		defer cancel()

		if err := s.rdb.RPush(ctx, config.WorkerKey.UsageEventsQueue, raw).Err(); err != nil {
			s.log.Warn().Err(err).Str("kind", kind).Msg("usage event enqueue failed")
		}
	}()
}
