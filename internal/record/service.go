// Package record implements the lifecycle rules of item and user records:
// creation, editing while active, one-way soft deletion and filtered listing.
package record

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/erazemk/registro/internal/model"
	"github.com/erazemk/registro/internal/query"
)

// Store persists records of one kind.
type Store interface {
	Create(ctx context.Context, r *model.Record) (*model.Record, error)
	Get(ctx context.Context, id int64) (*model.Record, error)
	Update(ctx context.Context, r *model.Record) (*model.Record, error)
	Deactivate(ctx context.Context, id int64) (bool, error)
	SetDate(ctx context.Context, id int64, date time.Time) (*model.Record, error)
	List(ctx context.Context, preds []query.Predicate, page query.Page) ([]model.Record, error)
	Count(ctx context.Context, preds []query.Predicate) (int64, error)
}

// Input holds the editable fields of a record.
type Input struct {
	Name      string `json:"name" validate:"required"`
	Surname   string `json:"surname" validate:"required"`
	Amount    int64  `json:"amount" validate:"required,gte=0"`
	Country   string `json:"country" validate:"required"`
	AgentType string `json:"agentType" validate:"required"`
}

// Pagination describes the whole result set of a list request.
type Pagination struct {
	TotalRecords int64 `json:"totalRecords"`
	TotalPages   int64 `json:"totalPages"`
}

// ListResult is one page of records.
type ListResult struct {
	Records    []model.Record
	Pagination Pagination
}

// Service applies the record lifecycle rules on top of a Store.
type Service struct {
	store    Store
	validate *validator.Validate
	loc      *time.Location
	now      func() time.Time
}

// NewService returns a Service over store. Dates given as dd/MM/yyyy are
// interpreted in loc.
func NewService(store Store, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		loc:      loc,
		now:      time.Now,
	}
}

// Location returns the time zone used for calendar dates.
func (s *Service) Location() *time.Location {
	return s.loc
}

// Create stores a new active record dated now.
func (s *Service) Create(ctx context.Context, in Input) (*model.Record, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}

	return s.store.Create(ctx, &model.Record{
		Name:      in.Name,
		Surname:   in.Surname,
		Amount:    in.Amount,
		Country:   in.Country,
		AgentType: in.AgentType,
		Status:    model.StatusActive,
		Date:      s.now(),
	})
}

// Get returns the record with id.
func (s *Service) Get(ctx context.Context, id int64) (*model.Record, error) {
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrNotFound
	}
	return r, nil
}

// Edit replaces the editable fields of an active record and refreshes its
// date. Fields left empty in the input keep their current value. The status
// is never changed.
func (s *Service) Edit(ctx context.Context, id int64, in Input) (*model.Record, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Active() {
		return nil, ErrInvalidState
	}

	merged := Input{
		Name:      coalesce(in.Name, current.Name),
		Surname:   coalesce(in.Surname, current.Surname),
		Amount:    in.Amount,
		Country:   coalesce(in.Country, current.Country),
		AgentType: coalesce(in.AgentType, current.AgentType),
	}
	if merged.Amount == 0 {
		merged.Amount = current.Amount
	}
	if err := s.check(merged); err != nil {
		return nil, err
	}

	updated, err := s.store.Update(ctx, &model.Record{
		ID:        id,
		Name:      merged.Name,
		Surname:   merged.Surname,
		Amount:    merged.Amount,
		Country:   merged.Country,
		AgentType: merged.AgentType,
		Date:      s.now(),
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// Deactivated between the read and the write.
		return nil, ErrInvalidState
	}
	return updated, nil
}

// Delete marks an active record inactive. It fails with ErrInvalidState if
// the record is already inactive.
func (s *Service) Delete(ctx context.Context, id int64) error {
	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !current.Active() {
		return ErrInvalidState
	}

	ok, err := s.store.Deactivate(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidState
	}
	return nil
}

// List returns the page of records f selects along with totals computed over
// the same predicates.
func (s *Service) List(ctx context.Context, f query.Filter) (*ListResult, error) {
	preds := f.Predicates()

	total, err := s.store.Count(ctx, preds)
	if err != nil {
		return nil, err
	}

	records, err := s.store.List(ctx, preds, f.Page)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []model.Record{}
	}

	return &ListResult{
		Records: records,
		Pagination: Pagination{
			TotalRecords: total,
			TotalPages:   f.Page.TotalPages(total),
		},
	}, nil
}

// SetDate moves a record to midnight of a dd/MM/yyyy day. It ignores the
// record status and exists to prepare date-range fixtures.
func (s *Service) SetDate(ctx context.Context, id int64, day string) (*model.Record, error) {
	date, ok := query.ParseDay(day, s.loc)
	if !ok {
		return nil, fmt.Errorf("%w: date must use dd/MM/yyyy", ErrValidation)
	}

	r, err := s.store.SetDate(ctx, id, date)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrNotFound
	}
	return r, nil
}

// check validates in and reports every failing field.
func (s *Service) check(in Input) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fmt.Errorf("%w: invalid %s", ErrValidation, strings.Join(fields, ", "))
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
