package pos

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/handlersyss/BarSystem/internal/model"
)

// AddTable registers a new table, initially free.
func (s *System) AddTable(id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: table number must be positive", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.Tables[id]; ok {
		return ErrTableExists
	}

	snapshot := s.state.Clone()
	s.state.Tables[id] = nil

	if err := s.persist(snapshot); err != nil {
		return err
	}
	s.log.Info("table added", zap.Int("table", id))
	return nil
}

// RemoveTable deletes a table. A table with an open tab cannot be removed;
// the tab has to be closed first.
func (s *System) RemoveTable(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	openTab, ok := s.state.Tables[id]
	if !ok {
		return fmt.Errorf("%w: table %d", ErrNotFound, id)
	}
	if openTab != nil {
		return ErrTableOccupied
	}

	snapshot := s.state.Clone()
	delete(s.state.Tables, id)

	if err := s.persist(snapshot); err != nil {
		return err
	}
	s.log.Info("table removed", zap.Int("table", id))
	return nil
}

// FreeTables lists the table ids without an open tab, ascending.
func (s *System) FreeTables() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tableIDs(func(tabID *int) bool { return tabID == nil })
}

// OccupiedTables lists the table ids with an open tab, ascending.
func (s *System) OccupiedTables() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tableIDs(func(tabID *int) bool { return tabID != nil })
}

func (s *System) tableIDs(match func(*int) bool) []int {
	out := make([]int, 0, len(s.state.Tables))
	for id, tabID := range s.state.Tables {
		if match(tabID) {
			out = append(out, id)
		}
	}
	sort.Ints(out)
	return out
}

// TabForTable returns the open tab bound to a table.
func (s *System) TabForTable(tableID int) (model.Tab, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tabID, ok := s.state.Tables[tableID]
	if !ok {
		return model.Tab{}, fmt.Errorf("%w: table %d", ErrNotFound, tableID)
	}
	if tabID == nil {
		return model.Tab{}, fmt.Errorf("%w: table %d has no open tab", ErrNotFound, tableID)
	}
	tab, ok := s.state.Tabs[*tabID]
	if !ok {
		return model.Tab{}, fmt.Errorf("%w: tab %d", ErrNotFound, *tabID)
	}
	return *tab.Clone(), nil
}
