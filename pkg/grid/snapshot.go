package grid

// Placement is one persisted item record. It is the wire format for layout
// snapshots: JSON for the file, redis, and mongo stores as well as the HTTP
// API.
type Placement struct {
	ID     string `json:"id" bson:"id"`
	X      int    `json:"x" bson:"x"`
	Y      int    `json:"y" bson:"y"`
	W      int    `json:"w" bson:"w"`
	H      int    `json:"h" bson:"h"`
	Hidden bool   `json:"hidden" bson:"hidden"`
}

// Snapshot is the persisted unit for one tab: an ordered collection of
// placements. Order is insertion order and carries no meaning; positions are
// explicit.
type Snapshot []Placement

// Snapshot captures all items, visible and hidden, in insertion order.
func (m *Model) Snapshot() Snapshot {
	out := make(Snapshot, 0, len(m.items))
	for _, it := range m.items {
		out = append(out, Placement{
			ID:     it.ID,
			X:      it.X,
			Y:      it.Y,
			W:      it.W,
			H:      it.H,
			Hidden: it.Hidden,
		})
	}
	return out
}

// Restore applies a snapshot to the model. Entries failing validation and
// entries for ids the model does not know are dropped; items absent from the
// snapshot keep their current (registry default) geometry. Restore never
// fails: a malformed snapshot must not block initialization.
func (m *Model) Restore(snap Snapshot) {
	for _, p := range snap.Validate() {
		it, ok := m.index[p.ID]
		if !ok {
			continue
		}
		it.X, it.Y, it.W, it.H = p.X, p.Y, p.W, p.H
		it.Hidden = p.Hidden
		m.clamp(it)
	}
}

// Validate returns the snapshot with malformed entries dropped: empty ids,
// negative coordinates, non-positive spans, and duplicate ids (first entry
// wins).
func (s Snapshot) Validate() Snapshot {
	seen := make(map[string]bool, len(s))
	out := make(Snapshot, 0, len(s))
	for _, p := range s {
		if p.ID == "" || seen[p.ID] {
			continue
		}
		if p.X < 0 || p.Y < 0 || p.W <= 0 || p.H <= 0 {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	return out
}

// Equal reports order-independent set equality between two snapshots.
func (s Snapshot) Equal(o Snapshot) bool {
	if len(s) != len(o) {
		return false
	}
	byID := make(map[string]Placement, len(s))
	for _, p := range s {
		byID[p.ID] = p
	}
	for _, p := range o {
		q, ok := byID[p.ID]
		if !ok || q != p {
			return false
		}
	}
	return true
}

// Clone returns a copy the caller may mutate freely.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	copy(out, s)
	return out
}
