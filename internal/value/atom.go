package value

import (
	"sync"

	"github.com/google/uuid"
)

// atomNamespace is the fixed UUID namespace atoms are hashed under, the way
// uuid.NewSHA1 expects a stable namespace UUID rather than a random seed —
// two processes hashing the same atom name always agree on its ID.
var atomNamespace = uuid.MustParse("6f6e8b1a-2f0b-4f1e-9a0e-8f6f6e6f6e6f")

var (
	atomIDsMu sync.Mutex
	atomIDs   = map[Atom]uuid.UUID{}
)

// InternAtom returns the stable UUID identity of an atom, computed
// deterministically from its name (spec.md §3.1's Atom scalar) and cached so
// repeated lookups of the same atom share one uuid.UUID value. Glint source
// never observes this ID directly — two atoms with the same name are already
// equal by Go string comparison — but it gives built-ins (and any future
// wire protocol) a stable cross-process handle distinct from the display
// text, the way the teacher's connection/session identifiers are UUIDs
// rather than names.
func InternAtom(a Atom) uuid.UUID {
	atomIDsMu.Lock()
	defer atomIDsMu.Unlock()
	if id, ok := atomIDs[a]; ok {
		return id
	}
	id := uuid.NewSHA1(atomNamespace, []byte(a))
	atomIDs[a] = id
	return id
}
