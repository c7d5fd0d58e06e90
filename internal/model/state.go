package model

// Counters hold the monotonic next-id generators. They are persisted with
// the entities and never decrease, even after deletions, so ids are not
// reused while old references (closed tabs) still point at them.
type Counters struct {
	NextProductID int `json:"next_product_id"`
	NextTabID     int `json:"next_tab_id"`
}

// State is the full in-memory dataset handed to and loaded from the
// persistence collaborator. Tables maps a table id to the id of its open
// tab, or nil when the table is free.
type State struct {
	Products map[int]*Product `json:"products"`
	Tabs     map[int]*Tab     `json:"tabs"`
	Tables   map[int]*int     `json:"tables"`
	Counters Counters         `json:"counters"`
}

// NewState returns an empty state with counters at their starting value.
func NewState() *State {
	return &State{
		Products: make(map[int]*Product),
		Tabs:     make(map[int]*Tab),
		Tables:   make(map[int]*int),
		Counters: Counters{NextProductID: 1, NextTabID: 1},
	}
}

// Empty reports whether the state carries no entities at all, i.e. the
// backing store had nothing to load.
func (s *State) Empty() bool {
	return len(s.Products) == 0 && len(s.Tabs) == 0 && len(s.Tables) == 0
}

// Clone returns a deep copy of the state. The order service stages every
// mutation against a snapshot so a failed persistence write can restore the
// previous in-memory state.
func (s *State) Clone() *State {
	cp := NewState()
	cp.Counters = s.Counters
	for id, p := range s.Products {
		cp.Products[id] = p.Clone()
	}
	for id, t := range s.Tabs {
		cp.Tabs[id] = t.Clone()
	}
	for id, tabID := range s.Tables {
		if tabID == nil {
			cp.Tables[id] = nil
			continue
		}
		v := *tabID
		cp.Tables[id] = &v
	}
	return cp
}
