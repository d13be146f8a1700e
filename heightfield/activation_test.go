package heightfield

import "testing"

func TestRaiseActivationNeverLowers(t *testing.T) {
	hm := flatHeightmap(2)
	hm.At(1, 1).Activation = 3
	hm.At(2, 2).Activation = 1

	raiseActivation(hm, coord{1, 1}, coord{2, 2})
	if got := hm.At(2, 2).Activation; got != 3 {
		t.Errorf("target activation = %d, want 3", got)
	}

	raiseActivation(hm, coord{2, 2}, coord{1, 1})
	if got := hm.At(1, 1).Activation; got != 3 {
		t.Errorf("raising from a lower source should be a no-op, got %d", got)
	}
}

func TestForceActivateRaisesOnly(t *testing.T) {
	hm := flatHeightmap(2)
	ForceActivate(hm, 0, 0, 2)
	if got := hm.At(0, 0).Activation; got != 2 {
		t.Errorf("activation = %d, want 2", got)
	}
	ForceActivate(hm, 0, 0, 1)
	if got := hm.At(0, 0).Activation; got != 2 {
		t.Errorf("ForceActivate should never lower, got %d", got)
	}
}

func TestPropagateLevelSpreadsEdgeToNodeCenter(t *testing.T) {
	hm := flatHeightmap(2)
	// Side = 5, level 0 node center (1,1) reads its west/north/east/south
	// edge midpoints, here (0,1),(2,1),(1,0),(1,2).
	hm.At(0, 1).Activation = 2

	p := NewPropagator(hm)
	p.PropagateLevel(0)

	if got := hm.At(1, 1).Activation; got != 2 {
		t.Errorf("node center activation = %d, want 2 after one edge raised", got)
	}
}

func TestRunConvergesAcrossLevels(t *testing.T) {
	hm := flatHeightmap(3)
	// Side = 9; (1,1) is a level-0 node center, which becomes a "child
	// center" input for the level-1 node centered on (2,2), which in turn
	// becomes a child-center input for the root at (4,4).
	hm.At(1, 1).Activation = 4

	p := NewPropagator(hm)
	p.Run()

	root := hm.Side / 2
	if got := hm.At(root, root).Activation; got != 4 {
		t.Errorf("root center activation = %d, want 4 propagated up from a level-0 center", got)
	}
}
