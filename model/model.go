package model

// Response is the envelope returned by every intake endpoint.
type Response struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	ID             any    `json:"id,omitempty"`
	TechnicalError string `json:"technical_error,omitempty"`
}

// Cell is one column of an insert row.
type Cell struct {
	Column string
	Value  any
}

// Row is an insert row in column declaration order.
type Row []Cell

func (row Row) Columns() []string {
	cols := make([]string, len(row))
	for i, c := range row {
		cols[i] = c.Column
	}
	return cols
}

func (row Row) Values() []any {
	vals := make([]any, len(row))
	for i, c := range row {
		vals[i] = c.Value
	}
	return vals
}

func (row Row) Map() map[string]any {
	m := make(map[string]any, len(row))
	for _, c := range row {
		m[c.Column] = c.Value
	}
	return m
}

type Health struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
	Error    string `json:"error,omitempty"`
}

type Diagnostics struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Method    string            `json:"method"`
	URL       string            `json:"url"`
	Timestamp string            `json:"timestamp"`
	EnvCheck  map[string]string `json:"env_check"`
}
