package store

// orderedMap is an id keyed map that remembers insertion order.
// It is not safe for concurrent use; the Store guards it.
type orderedMap[V any] struct {
	keys   []int
	values map[int]V
}

func newOrderedMap[V any]() *orderedMap[V] {
	return &orderedMap[V]{values: map[int]V{}}
}

func (m *orderedMap[V]) get(id int) (V, bool) {
	v, ok := m.values[id]
	return v, ok
}

// set inserts or replaces; a replaced value keeps its position.
func (m *orderedMap[V]) set(id int, v V) {
	if _, ok := m.values[id]; !ok {
		m.keys = append(m.keys, id)
	}
	m.values[id] = v
}

// replaceKey swaps oldID for newID in place, keeping the position of oldID.
func (m *orderedMap[V]) replaceKey(oldID, newID int, v V) {
	if _, ok := m.values[oldID]; !ok {
		m.set(newID, v)
		return
	}
	if oldID != newID {
		if _, ok := m.values[newID]; ok {
			m.delete(newID)
		}
	}
	for i, k := range m.keys {
		if k == oldID {
			m.keys[i] = newID
			break
		}
	}
	delete(m.values, oldID)
	m.values[newID] = v
}

func (m *orderedMap[V]) delete(id int) bool {
	if _, ok := m.values[id]; !ok {
		return false
	}
	delete(m.values, id)
	for i, k := range m.keys {
		if k == id {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

func (m *orderedMap[V]) len() int {
	return len(m.keys)
}

// list returns the values in insertion order, each passed through clone.
func (m *orderedMap[V]) list(clone func(V) V) []V {
	out := make([]V, 0, len(m.keys))
	for _, k := range m.keys {
		v := m.values[k]
		if clone != nil {
			v = clone(v)
		}
		out = append(out, v)
	}
	return out
}

func (m *orderedMap[V]) clear() {
	m.keys = nil
	m.values = map[int]V{}
}
