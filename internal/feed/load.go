// Package feed reads alert feed files and keeps them flowing into the store:
// one-shot loads, file watching, and scheduled re-imports.
package feed

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/alexanderramin/bmo/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Document is the top-level shape of a feed file. JSON feeds parse too.
type Document struct {
	Alerts []Record `yaml:"alerts"`
}

// Record is one alert as written in a feed file.
type Record struct {
	ID          string        `yaml:"id"`
	Title       string        `yaml:"title" validate:"required"`
	Description string        `yaml:"description"`
	Severity    string        `yaml:"severity" validate:"required,oneof=critical warning info success"`
	Status      string        `yaml:"status" validate:"omitempty,oneof=active acknowledged resolved escalated archived"`
	Source      string        `yaml:"source"`
	Module      string        `yaml:"module"`
	AssignedTo  string        `yaml:"assigned_to"`
	EscalatedTo string        `yaml:"escalated_to"`
	Note        string        `yaml:"note"`
	Impact      *ImpactRecord `yaml:"impact"`
	CreatedAt   Timestamp     `yaml:"created_at" validate:"required"`
	UpdatedAt   *Timestamp    `yaml:"updated_at" validate:"omitempty,gtefield=CreatedAt"`
	ResolvedAt  *Timestamp    `yaml:"resolved_at" validate:"omitempty,gtefield=CreatedAt"`
}

// Timestamp accepts RFC 3339 times, with or without a zone, and bare dates,
// quoted or not. Zone-less values are UTC.
type Timestamp time.Time

var timestampLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"}

func (t *Timestamp) UnmarshalYAML(value *yaml.Node) error {
	raw := strings.TrimSpace(value.Value)
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			*t = Timestamp(parsed)
			return nil
		}
	}
	return fmt.Errorf("line %d: %q is not a date or RFC 3339 time", value.Line, raw)
}

type ImpactRecord struct {
	Financial   float64 `yaml:"financial" validate:"gte=0"`
	Operational string  `yaml:"operational" validate:"omitempty,oneof=low medium high"`
	Reputation  string  `yaml:"reputation" validate:"omitempty,oneof=low medium high"`
}

// FieldError is one failed rule on one record.
type FieldError struct {
	Index int
	Field string
	Tag   string
	Param string
}

func (e FieldError) Error() string {
	switch e.Tag {
	case "required":
		return fmt.Sprintf("alerts[%d].%s is required", e.Index, e.Field)
	case "oneof":
		return fmt.Sprintf("alerts[%d].%s must be one of [%s]", e.Index, e.Field, e.Param)
	case "gtefield":
		return fmt.Sprintf("alerts[%d].%s must not be before %s", e.Index, e.Field, yamlName(e.Param))
	case "gte":
		return fmt.Sprintf("alerts[%d].%s must be at least %s", e.Index, e.Field, e.Param)
	case "unique":
		return fmt.Sprintf("alerts[%d].%s duplicates an earlier record", e.Index, e.Field)
	default:
		return fmt.Sprintf("alerts[%d].%s failed %s", e.Index, e.Field, e.Tag)
	}
}

// ValidationError collects every FieldError of a document.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Error()
	}
	return "invalid feed: " + strings.Join(msgs, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Load reads and validates the feed at path.
func Load(path string) ([]*domain.Alert, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading feed %s: %w", path, err)
	}
	alerts, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("feed %s: %w", path, err)
	}
	return alerts, nil
}

// Parse decodes a feed document. Records without an id get a random one;
// a missing status means active. Nothing is returned unless every record
// is valid.
func Parse(r io.Reader) ([]*domain.Alert, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decoding feed: %w", err)
	}

	for i := range doc.Alerts {
		normalize(&doc.Alerts[i])
	}
	if err := check(doc.Alerts); err != nil {
		return nil, err
	}

	alerts := make([]*domain.Alert, 0, len(doc.Alerts))
	for _, rec := range doc.Alerts {
		alerts = append(alerts, rec.toDomain())
	}
	return alerts, nil
}

func normalize(rec *Record) {
	rec.ID = strings.TrimSpace(rec.ID)
	rec.Title = strings.TrimSpace(rec.Title)
	rec.Severity = strings.ToLower(strings.TrimSpace(rec.Severity))
	rec.Status = strings.ToLower(strings.TrimSpace(rec.Status))
	if rec.Impact != nil {
		rec.Impact.Operational = strings.ToLower(strings.TrimSpace(rec.Impact.Operational))
		rec.Impact.Reputation = strings.ToLower(strings.TrimSpace(rec.Impact.Reputation))
	}
}

func check(records []Record) error {
	var errs []FieldError
	seen := make(map[string]bool, len(records))
	for i := range records {
		if err := validate.Struct(&records[i]); err != nil {
			verrs, ok := err.(validator.ValidationErrors)
			if !ok {
				return fmt.Errorf("validating alerts[%d]: %w", i, err)
			}
			for _, fe := range verrs {
				errs = append(errs, FieldError{Index: i, Field: fieldPath(fe), Tag: fe.Tag(), Param: fe.Param()})
			}
		}
		if id := records[i].ID; id != "" {
			if seen[id] {
				errs = append(errs, FieldError{Index: i, Field: "id", Tag: "unique"})
			}
			seen[id] = true
		}
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// fieldPath drops the leading struct name from the validator namespace, so
// "Record.impact.operational" becomes "impact.operational".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func yamlName(goField string) string {
	if f, ok := reflect.TypeOf(Record{}).FieldByName(goField); ok {
		return strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
	}
	return goField
}

func (rec Record) toDomain() *domain.Alert {
	id := rec.ID
	if id == "" {
		id = uuid.New().String()
	}
	status := domain.Status(rec.Status)
	if status == "" {
		status = domain.StatusActive
	}
	a := &domain.Alert{
		ID:          id,
		Title:       rec.Title,
		Description: rec.Description,
		Severity:    domain.Severity(rec.Severity),
		Status:      status,
		Source:      rec.Source,
		Module:      rec.Module,
		AssignedTo:  rec.AssignedTo,
		EscalatedTo: rec.EscalatedTo,
		Note:        rec.Note,
		CreatedAt:   time.Time(rec.CreatedAt).UTC(),
		UpdatedAt:   utcPtr(rec.UpdatedAt),
		ResolvedAt:  utcPtr(rec.ResolvedAt),
	}
	if rec.Impact != nil {
		a.Impact = &domain.Impact{
			Financial:   rec.Impact.Financial,
			Operational: domain.ImpactLevel(rec.Impact.Operational),
			Reputation:  domain.ImpactLevel(rec.Impact.Reputation),
		}
	}
	return a
}

func utcPtr(t *Timestamp) *time.Time {
	if t == nil {
		return nil
	}
	u := time.Time(*t).UTC()
	return &u
}
