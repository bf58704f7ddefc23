package domain

import (
	"labortimer/internal/platform/clock"
	"labortimer/internal/platform/id"
)

// State is the whole in-memory timer state. Contractions and SavedSets are
// ordered most-recent-first. Active is held apart from the history and is
// never part of Contractions.
type State struct {
	Contractions []Contraction
	Active       *Contraction
	IsLoading    bool
	SavedSets    []ContractionSet
}

// NewState is the state before hydration from storage.
func NewState() State {
	return State{
		Contractions: []Contraction{},
		IsLoading:    true,
		SavedSets:    []ContractionSet{},
	}
}

// FindSet returns the saved set with the given id.
func (s State) FindSet(setID string) (ContractionSet, bool) {
	for _, set := range s.SavedSets {
		if set.ID == setID {
			return set, true
		}
	}
	return ContractionSet{}, false
}

type ActionKind string

const (
	ActionStartContraction ActionKind = "START_CONTRACTION"
	ActionEndContraction   ActionKind = "END_CONTRACTION"
	ActionClearHistory     ActionKind = "CLEAR_HISTORY"
	ActionLoadContractions ActionKind = "LOAD_CONTRACTIONS"
	ActionLoadSets         ActionKind = "LOAD_SETS"
	ActionRestoreActive    ActionKind = "RESTORE_ACTIVE"
	ActionSaveSet          ActionKind = "SAVE_SET"
	ActionLoadSet          ActionKind = "LOAD_SET"
	ActionDeleteSet        ActionKind = "DELETE_SET"
)

// Action is a tagged variant; only the fields relevant to Kind are read.
type Action struct {
	Kind         ActionKind
	Contractions []Contraction
	Sets         []ContractionSet
	Active       *Contraction
	Name         string
	SetID        string
}

func StartContraction() Action { return Action{Kind: ActionStartContraction} }
func EndContraction() Action   { return Action{Kind: ActionEndContraction} }
func ClearHistory() Action     { return Action{Kind: ActionClearHistory} }

func LoadContractions(list []Contraction) Action {
	return Action{Kind: ActionLoadContractions, Contractions: list}
}

func LoadSets(sets []ContractionSet) Action {
	return Action{Kind: ActionLoadSets, Sets: sets}
}

// RestoreActive reinstates an in-progress contraction read back from storage.
// Only used during hydration.
func RestoreActive(active *Contraction) Action {
	return Action{Kind: ActionRestoreActive, Active: active}
}

func SaveSet(name string) Action    { return Action{Kind: ActionSaveSet, Name: name} }
func LoadSet(setID string) Action   { return Action{Kind: ActionLoadSet, SetID: setID} }
func DeleteSet(setID string) Action { return Action{Kind: ActionDeleteSet, SetID: setID} }

// Env supplies the time source and id generator transitions depend on.
type Env struct {
	Clock clock.Clock
	IDs   id.Generator
}

// Reduce computes the state that follows action. It never mutates the
// slices reachable from state, and every action yields a defined result:
// actions that cannot apply return state unchanged.
func Reduce(state State, action Action, env Env) State {
	switch action.Kind {
	case ActionStartContraction:
		next := state
		next.Active = &Contraction{
			ID:        env.IDs.New(),
			StartTime: clock.Millis(env.Clock),
		}
		return next

	case ActionEndContraction:
		if state.Active == nil {
			return state
		}
		completed := state.Active.clone()
		end := clock.Millis(env.Clock)
		completed.EndTime = &end
		contractions := make([]Contraction, 0, len(state.Contractions)+1)
		contractions = append(contractions, completed)
		contractions = append(contractions, state.Contractions...)
		next := state
		next.Contractions = contractions
		next.Active = nil
		return next

	case ActionClearHistory:
		next := state
		next.Contractions = []Contraction{}
		next.Active = nil
		return next

	case ActionLoadContractions:
		next := state
		next.Contractions = cloneContractions(action.Contractions)
		next.IsLoading = false
		return next

	case ActionLoadSets:
		next := state
		next.SavedSets = cloneSets(action.Sets)
		return next

	case ActionRestoreActive:
		next := state
		next.Active = nil
		if action.Active != nil && !action.Active.Completed() {
			restored := action.Active.clone()
			next.Active = &restored
		}
		return next

	case ActionSaveSet:
		set := ContractionSet{
			ID:           env.IDs.New(),
			Name:         action.Name,
			Contractions: cloneContractions(state.Contractions),
			CreatedAt:    clock.Millis(env.Clock),
		}
		sets := make([]ContractionSet, 0, len(state.SavedSets)+1)
		sets = append(sets, set)
		sets = append(sets, state.SavedSets...)
		next := state
		next.SavedSets = sets
		return next

	case ActionLoadSet:
		set, ok := state.FindSet(action.SetID)
		if !ok {
			return state
		}
		next := state
		next.Contractions = cloneContractions(set.Contractions)
		next.Active = nil
		return next

	case ActionDeleteSet:
		if _, ok := state.FindSet(action.SetID); !ok {
			return state
		}
		sets := make([]ContractionSet, 0, len(state.SavedSets)-1)
		for _, set := range state.SavedSets {
			if set.ID != action.SetID {
				sets = append(sets, set)
			}
		}
		next := state
		next.SavedSets = sets
		return next

	default:
		return state
	}
}

// Clone returns a deep copy safe to hand to readers outside the owner.
func (s State) Clone() State {
	out := s
	out.Contractions = cloneContractions(s.Contractions)
	out.SavedSets = cloneSets(s.SavedSets)
	if s.Active != nil {
		active := s.Active.clone()
		out.Active = &active
	}
	return out
}
