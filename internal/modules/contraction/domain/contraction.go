package domain

import (
	"strconv"
	"strings"
)

// Contraction is one timed start/stop event. EndTime is nil while the
// contraction is in progress. Timestamps are Unix milliseconds.
type Contraction struct {
	ID        string `json:"id"`
	StartTime int64  `json:"startTime"`
	EndTime   *int64 `json:"endTime"`
}

func (c Contraction) Completed() bool {
	return c.EndTime != nil
}

// Duration is end minus start, or zero while in progress.
func (c Contraction) Duration() int64 {
	if c.EndTime == nil {
		return 0
	}
	return *c.EndTime - c.StartTime
}

// boundary is the instant the next contraction's interval is measured from.
func (c Contraction) boundary() int64 {
	if c.EndTime != nil {
		return *c.EndTime
	}
	return c.StartTime
}

func (c Contraction) clone() Contraction {
	out := c
	if c.EndTime != nil {
		end := *c.EndTime
		out.EndTime = &end
	}
	return out
}

// ContractionSet is a named snapshot of a contraction history.
type ContractionSet struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Contractions []Contraction `json:"contractions"`
	CreatedAt    int64         `json:"createdAt"`
}

// DefaultSetName is used when a set is saved without a usable name.
func DefaultSetName(name string, existing int) string {
	name = strings.TrimSpace(name)
	if name != "" {
		return name
	}
	return "Set " + strconv.Itoa(existing+1)
}

func cloneContractions(in []Contraction) []Contraction {
	out := make([]Contraction, len(in))
	for i, c := range in {
		out[i] = c.clone()
	}
	return out
}

func cloneSets(in []ContractionSet) []ContractionSet {
	out := make([]ContractionSet, len(in))
	for i, set := range in {
		out[i] = set
		out[i].Contractions = cloneContractions(set.Contractions)
	}
	return out
}
