package model

import (
	"sort"
	"time"
)

// Action types.
const (
	ActionSimple   = "simple"
	ActionBranched = "branched"
)

// Action is a user-defined earning rule shown as a button/command.
// A branched action carries no points of its own; each of its options
// does. Deleting an action is logical only — transactions that
// reference it survive.
type Action struct {
	ID           int64
	Name         string
	Points       int64 // unused for branched actions, kept for compatibility
	DailyLimit   *int  // nil = unlimited
	MonthlyLimit *int  // nil = unlimited
	Type         string
	Active       bool
	SortOrder    int
	CreatedAt    time.Time
	Deleted      bool
}

// ActionOption is one branch of a branched action.
type ActionOption struct {
	ID        int64
	ActionID  int64
	Label     string
	Points    int64
	SortOrder int
	Deleted   bool
}

// Options returns the live options of action a, in display order,
// from the full option set.
func (a Action) Options(all []ActionOption) []ActionOption {
	var out []ActionOption
	for _, o := range all {
		if !o.Deleted && o.ActionID == a.ID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// SortActions orders actions by sort order, then id, in place.
func SortActions(actions []Action) {
	sort.Slice(actions, func(i, j int) bool {
		if actions[i].SortOrder != actions[j].SortOrder {
			return actions[i].SortOrder < actions[j].SortOrder
		}
		return actions[i].ID < actions[j].ID
	})
}
