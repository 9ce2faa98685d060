package forms

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mbolis/event-intake/model"
)

type Reason string

const (
	ReasonSpam    Reason = "spam"
	ReasonEmpty   Reason = "empty"
	ReasonMissing Reason = "missing"
	ReasonInvalid Reason = "invalid"
	ReasonConsent Reason = "consent"
)

// ValidationError rejects a submission the user has to correct and resend.
// Spam rejections carry the same generic message as any other validation
// failure so the trap is not revealed.
type ValidationError struct {
	Reason  Reason
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Submission holds validated values keyed by field name: a non-empty string,
// an int, a bool for the consent field, or nil.
type Submission map[string]any

var validate = validator.New()

func (s *FormSchema) Validate(p Payload) (Submission, error) {
	if tripped(p[s.Honeypot]) {
		return nil, &ValidationError{Reason: ReasonSpam, Message: "Erro de validação"}
	}
	if len(p) == 0 {
		return nil, &ValidationError{Reason: ReasonEmpty, Message: "Nenhum dado recebido"}
	}

	sub := make(Submission, len(s.Fields))
	var missing, invalid []string
	var consent *Field
	for i := range s.Fields {
		f := &s.Fields[i]
		if f.Kind == KindConsent {
			consent = f
			continue
		}

		v := Sanitize(p[f.Name], f.MaxLength)
		if v == "" {
			if f.Required {
				missing = append(missing, f.Name)
			}
			sub[f.Name] = nil
			continue
		}
		if s.checkFormats && f.Format != "" && validate.Var(v, formats[f.Format]) != nil {
			invalid = append(invalid, f.Name)
		}

		if f.Kind == KindInt {
			n, err := strconv.Atoi(v)
			if err != nil {
				sub[f.Name] = nil
			} else {
				sub[f.Name] = n
			}
			continue
		}
		sub[f.Name] = v
	}

	if len(missing) > 0 {
		return nil, &ValidationError{
			Reason:  ReasonMissing,
			Message: "Campos obrigatórios faltando: " + strings.Join(missing, ", "),
			Fields:  missing,
		}
	}
	if len(invalid) > 0 {
		return nil, &ValidationError{
			Reason:  ReasonInvalid,
			Message: "Campos com formato inválido: " + strings.Join(invalid, ", "),
			Fields:  invalid,
		}
	}
	if consent != nil {
		if !consent.accepts(p[consent.Name]) {
			return nil, &ValidationError{
				Reason:  ReasonConsent,
				Message: s.Messages.Consent,
				Fields:  []string{consent.Name},
			}
		}
		sub[consent.Name] = true
	}
	return sub, nil
}

// BuildRow lays sub out over the declared columns. Keys outside the schema
// are never copied.
func (s *FormSchema) BuildRow(sub Submission) model.Row {
	row := make(model.Row, len(s.Fields))
	for i, f := range s.Fields {
		row[i] = model.Cell{Column: f.Column, Value: sub[f.Name]}
	}
	return row
}

func (f *Field) accepts(raw any) bool {
	v := strings.ToLower(Sanitize(raw, f.MaxLength))
	for _, t := range f.Truthy {
		if v == t {
			return true
		}
	}
	return false
}

func tripped(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case string:
		return v != ""
	default:
		return true
	}
}
