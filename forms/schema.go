package forms

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

type Kind string

const (
	KindText    Kind = "text"
	KindInt     Kind = "int"
	KindConsent Kind = "consent"
)

const DefaultHoneypot = "_hp"

var DefaultTruthy = []string{"true", "on", "1", "checked", "yes"}

// formats maps the names accepted in a schema to validator tags.
var formats = map[string]string{
	"email":   "email",
	"numeric": "numeric",
	"url":     "url",
}

var reIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
var reRoute = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

//go:embed forms.yaml
var defaultForms []byte

type Field struct {
	Name      string   `yaml:"name"`
	Column    string   `yaml:"column"`
	Kind      Kind     `yaml:"kind"`
	Required  bool     `yaml:"required"`
	MaxLength int      `yaml:"max_length"`
	Format    string   `yaml:"format"`
	Truthy    []string `yaml:"truthy"`
}

type Messages struct {
	Success string `yaml:"success"`
	Consent string `yaml:"consent"`
}

// FormSchema describes one registration form: which payload fields it reads,
// how they are checked and which table columns they land in.
type FormSchema struct {
	Name      string   `yaml:"name"`
	Table     string   `yaml:"table"`
	Honeypot  string   `yaml:"honeypot"`
	MaxLength int      `yaml:"max_length"`
	Messages  Messages `yaml:"messages"`
	Fields    []Field  `yaml:"fields"`

	checkFormats bool
}

type Registry struct {
	schemas []*FormSchema
	byName  map[string]*FormSchema
}

func (reg *Registry) All() []*FormSchema {
	return reg.schemas
}

func (reg *Registry) Get(name string) (*FormSchema, bool) {
	s, ok := reg.byName[name]
	return s, ok
}

// CheckFormats turns field format checks on or off for every form. They are
// off by default: any non-empty value is accepted.
func (reg *Registry) CheckFormats(on bool) {
	for _, s := range reg.schemas {
		s.checkFormats = on
	}
}

// Default returns the registry built from the embedded forms.yaml.
func Default() (*Registry, error) {
	return Load(bytes.NewReader(defaultForms))
}

// LoadFile reads a registry from path, or the embedded defaults if path is empty.
func LoadFile(path string) (*Registry, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

func Load(r io.Reader) (*Registry, error) {
	var doc struct {
		Forms []*FormSchema `yaml:"forms"`
	}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("forms: decode: %w", err)
	}
	if len(doc.Forms) == 0 {
		return nil, errors.New("forms: no form declared")
	}

	reg := &Registry{byName: map[string]*FormSchema{}}
	for _, s := range doc.Forms {
		if err := s.normalize(); err != nil {
			return nil, err
		}
		if _, dup := reg.byName[s.Name]; dup {
			return nil, fmt.Errorf("forms: duplicate form %q", s.Name)
		}
		reg.byName[s.Name] = s
		reg.schemas = append(reg.schemas, s)
	}
	return reg, nil
}

// normalize fills defaults and rejects schemas that would build unsafe or
// ambiguous rows.
func (s *FormSchema) normalize() error {
	if !reRoute.MatchString(s.Name) {
		return fmt.Errorf("forms: invalid form name %q", s.Name)
	}
	if !reIdent.MatchString(s.Table) {
		return fmt.Errorf("forms.%s: invalid table %q", s.Name, s.Table)
	}
	if s.Honeypot == "" {
		s.Honeypot = DefaultHoneypot
	}
	if s.MaxLength <= 0 {
		s.MaxLength = DefaultMaxLength
	}
	if s.Messages.Success == "" {
		s.Messages.Success = "Inscrição enviada com sucesso!"
	}
	if s.Messages.Consent == "" {
		s.Messages.Consent = "É necessário aceitar os termos de uso."
	}
	if len(s.Fields) == 0 {
		return fmt.Errorf("forms.%s: no fields", s.Name)
	}

	names := map[string]bool{}
	columns := map[string]bool{}
	consents := 0
	for i := range s.Fields {
		f := &s.Fields[i]
		if f.Name == "" || f.Name == s.Honeypot {
			return fmt.Errorf("forms.%s: invalid field name %q", s.Name, f.Name)
		}
		if f.Column == "" {
			f.Column = f.Name
		}
		if !reIdent.MatchString(f.Column) {
			return fmt.Errorf("forms.%s.%s: invalid column %q", s.Name, f.Name, f.Column)
		}
		if names[f.Name] {
			return fmt.Errorf("forms.%s: duplicate field %q", s.Name, f.Name)
		}
		if columns[f.Column] {
			return fmt.Errorf("forms.%s: duplicate column %q", s.Name, f.Column)
		}
		names[f.Name] = true
		columns[f.Column] = true

		if f.Kind == "" {
			f.Kind = KindText
		}
		switch f.Kind {
		case KindText, KindInt:
		case KindConsent:
			consents++
			if len(f.Truthy) == 0 {
				f.Truthy = append([]string(nil), DefaultTruthy...)
			}
			for j, t := range f.Truthy {
				f.Truthy[j] = strings.ToLower(t)
			}
		default:
			return fmt.Errorf("forms.%s.%s: unknown kind %q", s.Name, f.Name, f.Kind)
		}
		if f.Format != "" {
			if _, ok := formats[f.Format]; !ok {
				return fmt.Errorf("forms.%s.%s: unknown format %q", s.Name, f.Name, f.Format)
			}
		}
		if f.MaxLength <= 0 {
			f.MaxLength = s.MaxLength
		}
	}
	if consents > 1 {
		return fmt.Errorf("forms.%s: more than one consent field", s.Name)
	}
	return nil
}
