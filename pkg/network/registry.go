package network

import "sort"

// Registry owns node identity. It is the single authority on which node IDs
// exist and what type each node has.
type Registry struct {
	nodes  map[int64]*Node
	byType map[NodeType][]int64
}

// NewRegistry creates an empty node registry.
func NewRegistry() *Registry {
	return &Registry{
		nodes:  make(map[int64]*Node),
		byType: make(map[NodeType][]int64),
	}
}

// Add registers a node. The ID must be positive and unused, and the type must
// be a member of the fixed enumeration. On failure nothing is inserted.
func (r *Registry) Add(node Node) error {
	if node.ID <= 0 {
		return nodeError("add", node.ID, ErrInvalidNodeID)
	}
	if !node.Type.Known() {
		return &Error{Op: "add", Entity: "node", ID: node.ID, Context: string(node.Type), Cause: ErrUnknownNodeType}
	}
	return r.insert(node)
}

// Restore registers a node loaded from a persisted bundle. Unlike Add it
// accepts unknown node types so that a full validation pass can report them;
// ID rules still hold.
func (r *Registry) Restore(node Node) error {
	if node.ID <= 0 {
		return nodeError("restore", node.ID, ErrInvalidNodeID)
	}
	return r.insert(node)
}

func (r *Registry) insert(node Node) error {
	if _, exists := r.nodes[node.ID]; exists {
		return nodeError("add", node.ID, ErrDuplicateNodeID)
	}
	n := node
	r.nodes[n.ID] = &n
	r.byType[n.Type] = append(r.byType[n.Type], n.ID)
	return nil
}

// Remove deletes a node. The caller is responsible for checking that no edge
// or table row still references it; Remove only fails if the node is absent.
func (r *Registry) Remove(id int64) error {
	node, exists := r.nodes[id]
	if !exists {
		return nodeError("remove", id, ErrUnknownNode)
	}
	delete(r.nodes, id)
	ids := r.byType[node.Type]
	for i, nid := range ids {
		if nid == id {
			r.byType[node.Type] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(r.byType[node.Type]) == 0 {
		delete(r.byType, node.Type)
	}
	return nil
}

// Lookup returns the node with the given ID.
func (r *Registry) Lookup(id int64) (*Node, error) {
	node, exists := r.nodes[id]
	if !exists {
		return nil, nodeError("lookup", id, ErrUnknownNode)
	}
	n := *node
	return &n, nil
}

// Contains reports whether the ID is registered.
func (r *Registry) Contains(id int64) bool {
	_, exists := r.nodes[id]
	return exists
}

// AllOfType returns the nodes of the given type ordered by ascending ID.
func (r *Registry) AllOfType(nt NodeType) []*Node {
	ids := append([]int64(nil), r.byType[nt]...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	nodes := make([]*Node, 0, len(ids))
	for _, id := range ids {
		n := *r.nodes[id]
		nodes = append(nodes, &n)
	}
	return nodes
}

// All returns every node ordered by ascending ID.
func (r *Registry) All() []*Node {
	ids := r.IDs()
	nodes := make([]*Node, 0, len(ids))
	for _, id := range ids {
		n := *r.nodes[id]
		nodes = append(nodes, &n)
	}
	return nodes
}

// IDs returns all registered node IDs in ascending order.
func (r *Registry) IDs() []int64 {
	ids := make([]int64, 0, len(r.nodes))
	for id := range r.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Len returns the number of registered nodes.
func (r *Registry) Len() int {
	return len(r.nodes)
}
