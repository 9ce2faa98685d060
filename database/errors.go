package database

import (
	"fmt"
	"regexp"
	"strings"
)

// Error is a failed datastore call. The handler returns Err's text to the
// client as technical detail, and Message as the user facing explanation.
type Error struct {
	Op      string
	Table   string
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.Table, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

var reColumn = regexp.MustCompile(`column "([^"]+)"`)

func newError(op, table, code string, err error) *Error {
	return &Error{
		Op:      op,
		Table:   table,
		Code:    code,
		Message: describe(err.Error()),
		Err:     err,
	}
}

// describe turns common PostgreSQL/PostgREST failures into a message the
// person filling the form can act on.
func describe(text string) string {
	lowered := strings.ToLower(text)
	switch {
	case strings.Contains(lowered, "duplicate key value violates unique constraint"),
		strings.Contains(lowered, "unique constraint failed"):
		return "Já existe uma inscrição registrada com estes dados."
	case strings.Contains(lowered, "row level security"), strings.Contains(lowered, "row-level security"):
		return "Permissão negada para gravar os dados."
	case strings.Contains(lowered, "invalid input syntax for type"):
		return "Algum campo possui formato inválido. Revise os dados digitados e tente novamente."
	case strings.Contains(lowered, "null value in column"), strings.Contains(lowered, "not null constraint failed"):
		column := "desconhecida"
		if m := reColumn.FindStringSubmatch(text); m != nil {
			column = m[1]
		}
		return fmt.Sprintf("Campo obrigatório ausente ou vazio: %s.", column)
	}
	return "Erro ao salvar dados no banco"
}
