package network

import (
	"errors"
	"testing"
)

func TestRegistry_Add(t *testing.T) {
	r := NewRegistry()

	if err := r.Add(Node{ID: 1, Type: Basin}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if r.Len() != 1 {
		t.Errorf("Expected 1 node, got %d", r.Len())
	}
}

func TestRegistry_AddDuplicateID(t *testing.T) {
	r := NewRegistry()

	if err := r.Add(Node{ID: 1, Type: Basin}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	err := r.Add(Node{ID: 1, Type: Pump})
	if !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("Expected ErrDuplicateNodeID, got %v", err)
	}
	if r.Len() != 1 {
		t.Errorf("Failed add must not change the registry, got %d nodes", r.Len())
	}
}

func TestRegistry_AddInvalidID(t *testing.T) {
	r := NewRegistry()

	for _, id := range []int64{0, -1, -100} {
		err := r.Add(Node{ID: id, Type: Basin})
		if !errors.Is(err, ErrInvalidNodeID) {
			t.Errorf("ID %d: expected ErrInvalidNodeID, got %v", id, err)
		}
	}
	if r.Len() != 0 {
		t.Errorf("Expected empty registry, got %d nodes", r.Len())
	}
}

func TestRegistry_AddUnknownType(t *testing.T) {
	r := NewRegistry()

	err := r.Add(Node{ID: 1, Type: NodeType("Reservoir")})
	if !errors.Is(err, ErrUnknownNodeType) {
		t.Errorf("Expected ErrUnknownNodeType, got %v", err)
	}
}

func TestRegistry_RestoreAcceptsUnknownType(t *testing.T) {
	r := NewRegistry()

	if err := r.Restore(Node{ID: 1, Type: NodeType("Reservoir")}); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	err := r.Restore(Node{ID: -1, Type: Basin})
	if !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("Restore must still reject non-positive IDs, got %v", err)
	}
}

func TestRegistry_Lookup(t *testing.T) {
	r := NewRegistry()
	r.Add(Node{ID: 5, Type: Pump, Name: "inlet pump"})

	node, err := r.Lookup(5)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if node.Type != Pump || node.Name != "inlet pump" {
		t.Errorf("Unexpected node: %+v", node)
	}

	_, err = r.Lookup(6)
	if !errors.Is(err, ErrUnknownNode) {
		t.Errorf("Expected ErrUnknownNode, got %v", err)
	}
}

func TestRegistry_AllOfTypeOrdered(t *testing.T) {
	r := NewRegistry()
	r.Add(Node{ID: 9, Type: Basin})
	r.Add(Node{ID: 1, Type: Basin})
	r.Add(Node{ID: 4, Type: Pump})
	r.Add(Node{ID: 3, Type: Basin})

	basins := r.AllOfType(Basin)
	if len(basins) != 3 {
		t.Fatalf("Expected 3 basins, got %d", len(basins))
	}
	want := []int64{1, 3, 9}
	for i, node := range basins {
		if node.ID != want[i] {
			t.Errorf("Position %d: expected node %d, got %d", i, want[i], node.ID)
		}
	}
}

func TestRegistry_Remove(t *testing.T) {
	r := NewRegistry()
	r.Add(Node{ID: 1, Type: Basin})

	if err := r.Remove(1); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if r.Contains(1) {
		t.Error("Node still present after Remove")
	}
	if len(r.AllOfType(Basin)) != 0 {
		t.Error("Type index still lists removed node")
	}

	err := r.Remove(1)
	if !errors.Is(err, ErrUnknownNode) {
		t.Errorf("Expected ErrUnknownNode, got %v", err)
	}
}

func TestRegistry_IDs(t *testing.T) {
	r := NewRegistry()
	for _, id := range []int64{7, 2, 5} {
		r.Add(Node{ID: id, Type: Terminal})
	}
	ids := r.IDs()
	want := []int64{2, 5, 7}
	if len(ids) != len(want) {
		t.Fatalf("Expected %d IDs, got %d", len(want), len(ids))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("Position %d: expected %d, got %d", i, want[i], ids[i])
		}
	}
}
