// Package pos implements the order/inventory core: the product catalog,
// the tab ledger and the table registry, composed behind the System type.
// All invariants (non-negative stock, one open tab per table, immutable
// closed tabs) are enforced here, regardless of the caller.
package pos

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/handlersyss/BarSystem/internal/model"
	"github.com/handlersyss/BarSystem/internal/store"
)

// defaultTableCount is how many tables a brand-new venue starts with.
const defaultTableCount = 10

// System is the order service. It owns the single in-memory copy of the
// state and serializes every operation through one mutex: none of the
// invariants are enforced transactionally across callers, so concurrent
// mutation without the lock would corrupt them.
type System struct {
	mu    sync.Mutex
	state *model.State
	store store.Store
	log   *zap.Logger
	now   func() time.Time
}

// New loads the state from the store and returns a ready system. A store
// with nothing in it yields a fresh venue seeded with the default tables.
func New(st store.Store, log *zap.Logger) (*System, error) {
	state, err := st.Load()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if state == nil {
		state = model.NewState()
	}
	if state.Empty() {
		for i := 1; i <= defaultTableCount; i++ {
			state.Tables[i] = nil
		}
		log.Info("starting with a fresh venue", zap.Int("tables", defaultTableCount))
	}
	return &System{
		state: state,
		store: st,
		log:   log,
		now:   time.Now,
	}, nil
}

// persist writes the current state through the store. On failure the
// in-memory state is restored from the snapshot taken before the mutation,
// so memory and disk never diverge.
func (s *System) persist(snapshot *model.State) error {
	if err := s.store.Save(s.state); err != nil {
		s.state = snapshot
		s.log.Error("state save failed, mutation rolled back", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
