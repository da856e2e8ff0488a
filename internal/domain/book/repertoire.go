package book

// MoveRecord is one prepared candidate: the move in UCI form and the key of
// the position it leads to.
type MoveRecord struct {
	Move  string `json:"move"`
	Child string `json:"child"`
}

// TrieNode holds the ordered candidates prepared at one position. Insertion
// order is priority order.
type TrieNode struct {
	Moves []MoveRecord
	seen  map[string]string // move -> child, for idempotence and conflicts
}

// InsertOutcome tells the caller what an insert actually did.
type InsertOutcome int

const (
	Inserted InsertOutcome = iota
	// Duplicate means the exact (move, child) edge was already present.
	Duplicate
	// Conflict means the move was present with a different child key; the
	// first-recorded edge is kept.
	Conflict
)

// Repertoire maps position keys to prepared candidate moves for one side.
// It is built once and read-only afterwards.
type Repertoire struct {
	Side  Color
	nodes map[string]*TrieNode
}

func NewRepertoire(side Color) *Repertoire {
	return &Repertoire{
		Side:  side,
		nodes: make(map[string]*TrieNode),
	}
}

func (r *Repertoire) Insert(key, move, child string) InsertOutcome {
	node, ok := r.nodes[key]
	if !ok {
		node = &TrieNode{seen: make(map[string]string)}
		r.nodes[key] = node
	}
	if prev, ok := node.seen[move]; ok {
		if prev == child {
			return Duplicate
		}
		return Conflict
	}
	node.seen[move] = child
	node.Moves = append(node.Moves, MoveRecord{Move: move, Child: child})
	return Inserted
}

// Candidates returns the prepared moves at key in priority order, nil when
// the position is out of book.
func (r *Repertoire) Candidates(key string) []MoveRecord {
	node, ok := r.nodes[key]
	if !ok {
		return nil
	}
	return node.Moves
}

// Len is the number of distinct indexed positions.
func (r *Repertoire) Len() int {
	return len(r.nodes)
}
