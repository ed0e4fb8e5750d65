package registry

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/flappy-bounce/internal/core"
)

type stubGame struct{}

func (stubGame) ID() string                                          { return "stub" }
func (stubGame) Title() string                                       { return "Stub" }
func (stubGame) Reset(core.RuntimeConfig)                            {}
func (stubGame) Step(time.Duration, core.InputFrame) core.StepResult { return core.StepResult{} }
func (stubGame) Render(*core.Screen)                                 {}
func (stubGame) State() core.GameState                               { return core.GameState{} }

var errBroken = errors.New("broken")

func init() {
	Register("stub", "Stub", func(Env) (Game, error) { return stubGame{}, nil })
	Register("broken", "Broken", func(Env) (Game, error) { return nil, errBroken })
}

func TestListSorted(t *testing.T) {
	list := List()
	if len(list) != 2 {
		t.Fatalf("List() returned %d games, expected 2", len(list))
	}
	if list[0].ID != "broken" || list[1].ID != "stub" || list[1].Title != "Stub" {
		t.Errorf("unexpected list: %+v", list)
	}
}

func TestCreate(t *testing.T) {
	g, err := Create("stub", Env{})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "stub" {
		t.Errorf("ID = %q", g.ID())
	}

	if _, err := Create("nope", Env{}); err == nil {
		t.Error("expected error for unknown game")
	}
	if _, err := Create("broken", Env{}); !errors.Is(err, errBroken) {
		t.Errorf("Create(broken) error = %v, expected wrapped factory error", err)
	}
	if !Exists("stub") || Exists("nope") {
		t.Error("Exists() mismatch")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("stub", "Again", func(Env) (Game, error) { return stubGame{}, nil })
}
