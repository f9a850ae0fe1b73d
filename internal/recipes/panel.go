package recipes

import (
	"context"
	"errors"
	"sync"

	"github.com/rogerio-castellano/pantry-tracker/internal/models"
)

// ErrSuperseded is returned by Panel.Request when a newer request started
// before this one finished. Its result was discarded.
var ErrSuperseded = errors.New("superseded by a newer request")

type Suggester interface {
	Suggest(ctx context.Context, text string) ([]models.Recipe, error)
}

// PanelState is what a recipe panel shows.
type PanelState struct {
	Loading bool
	Recipes []models.Recipe
	Err     error
}

// Panel holds the recipe list for one user view. Only the most recent
// request may change it.
type Panel struct {
	svc Suggester

	mu    sync.Mutex
	seq   uint64
	state PanelState
}

func NewPanel(svc Suggester) *Panel {
	return &Panel{svc: svc}
}

func (p *Panel) State() PanelState {
	p.mu.Lock()
	defer p.mu.Unlock()
	st := p.state
	st.Recipes = append([]models.Recipe(nil), p.state.Recipes...)
	return st
}

// Request runs one suggestion and blocks until it completes. A failure
// clears the list.
func (p *Panel) Request(ctx context.Context, text string) error {
	p.mu.Lock()
	p.seq++
	id := p.seq
	p.state = PanelState{Loading: true}
	p.mu.Unlock()

	out, err := p.svc.Suggest(ctx, text)

	p.mu.Lock()
	defer p.mu.Unlock()
	if id != p.seq {
		return ErrSuperseded
	}
	if err != nil {
		p.state = PanelState{Err: err}
		return err
	}
	p.state = PanelState{Recipes: out}
	return nil
}
