package query

import (
	"slices"
	"strings"
	"time"

	"github.com/erazemk/registro/internal/model"
)

// Field names a filterable record field.
type Field string

const (
	FieldName      Field = "name"
	FieldSurname   Field = "surname"
	FieldCountry   Field = "country"
	FieldStatus    Field = "status"
	FieldAgentType Field = "agentType"
	FieldDate      Field = "date"
	FieldAmount    Field = "amount"
)

// Predicate is one field-level condition. A list query keeps the records
// that match every predicate.
type Predicate interface {
	Match(r *model.Record) bool
}

// Contains matches a case-insensitive substring.
type Contains struct {
	Field Field
	Value string
}

// In matches when the field equals one of Values.
type In struct {
	Field  Field
	Values []string
}

// TimeRange matches From <= field <= To. A nil bound is open.
type TimeRange struct {
	Field Field
	From  *time.Time
	To    *time.Time
}

// IntRange matches Min <= field <= Max. A nil bound is open.
type IntRange struct {
	Field Field
	Min   *int64
	Max   *int64
}

// Predicates returns the conjunction of conditions f describes, in field
// order. An empty filter yields no predicates.
func (f Filter) Predicates() []Predicate {
	var preds []Predicate
	if f.Name != "" {
		preds = append(preds, Contains{Field: FieldName, Value: f.Name})
	}
	if f.Surname != "" {
		preds = append(preds, Contains{Field: FieldSurname, Value: f.Surname})
	}
	if len(f.Country) > 0 {
		preds = append(preds, In{Field: FieldCountry, Values: f.Country})
	}
	if len(f.Status) > 0 {
		preds = append(preds, In{Field: FieldStatus, Values: f.Status})
	}
	if len(f.AgentType) > 0 {
		preds = append(preds, In{Field: FieldAgentType, Values: f.AgentType})
	}
	if f.StartDate != nil || f.EndDate != nil {
		preds = append(preds, TimeRange{Field: FieldDate, From: f.StartDate, To: f.EndDate})
	}
	if f.MinAmount != nil || f.MaxAmount != nil {
		preds = append(preds, IntRange{Field: FieldAmount, Min: f.MinAmount, Max: f.MaxAmount})
	}
	return preds
}

// MatchAll reports whether r satisfies every predicate.
func MatchAll(preds []Predicate, r *model.Record) bool {
	for _, p := range preds {
		if !p.Match(r) {
			return false
		}
	}
	return true
}

// Match folds ASCII letters only, like SQLite LIKE: "PÉREZ" does not
// match "pérez".
func (c Contains) Match(r *model.Record) bool {
	return strings.Contains(asciiLower(stringField(r, c.Field)), asciiLower(c.Value))
}

func asciiLower(s string) string {
	return strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}

func (in In) Match(r *model.Record) bool {
	return slices.Contains(in.Values, stringField(r, in.Field))
}

func (tr TimeRange) Match(r *model.Record) bool {
	if tr.Field != FieldDate {
		return false
	}
	if tr.From != nil && r.Date.Before(*tr.From) {
		return false
	}
	if tr.To != nil && r.Date.After(*tr.To) {
		return false
	}
	return true
}

func (ir IntRange) Match(r *model.Record) bool {
	if ir.Field != FieldAmount {
		return false
	}
	if ir.Min != nil && r.Amount < *ir.Min {
		return false
	}
	if ir.Max != nil && r.Amount > *ir.Max {
		return false
	}
	return true
}

func stringField(r *model.Record, f Field) string {
	switch f {
	case FieldName:
		return r.Name
	case FieldSurname:
		return r.Surname
	case FieldCountry:
		return r.Country
	case FieldStatus:
		return r.Status
	case FieldAgentType:
		return r.AgentType
	}
	return ""
}
