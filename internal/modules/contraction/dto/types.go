package dto

type ContractionOutput struct {
	ID          string `json:"id"`
	Index       int    `json:"index"`
	StartedAt   int64  `json:"startedAt"`
	EndedAt     int64  `json:"endedAt,omitempty"`
	InProgress  bool   `json:"inProgress"`
	DurationMS  int64  `json:"durationMs"`
	IntervalMS  int64  `json:"intervalMs,omitempty"`
	HasInterval bool   `json:"hasInterval"`
}

type StatusOutput struct {
	Active    bool   `json:"active"`
	ActiveID  string `json:"activeId,omitempty"`
	StartedAt int64  `json:"startedAt,omitempty"`
	ElapsedMS int64  `json:"elapsedMs"`
	Completed int    `json:"completed"`
}

type ToggleOutput struct {
	Started     bool              `json:"started"`
	Contraction ContractionOutput `json:"contraction"`
}

type StatsOutput struct {
	Completed     int    `json:"completed"`
	AvgDurationMS int64  `json:"avgDurationMs"`
	AvgIntervalMS int64  `json:"avgIntervalMs"`
	HasInterval   bool   `json:"hasInterval"`
	TotalSpanMS   int64  `json:"totalSpanMs"`
	AvgDuration   string `json:"avgDuration"`
	AvgInterval   string `json:"avgInterval,omitempty"`
	TotalSpan     string `json:"totalSpan"`
	IntervalMet   bool   `json:"intervalMet"`
	DurationMet   bool   `json:"durationMet"`
	SpanMet       bool   `json:"spanMet"`
}

type SaveSetInput struct {
	Name string
}

type SetOutput struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Count     int    `json:"count"`
	CreatedAt int64  `json:"createdAt"`
}

type ExportSetInput struct {
	SetID string
	Dir   string
}

type ExportSetOutput struct {
	Path string `json:"path"`
}
