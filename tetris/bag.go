package tetris

import "math/rand/v2"

const bagSize = len(Kinds)

// Bag is the 7-bag randomizer: it deals every kind once per shuffled bag
// and shuffles a fresh bag whenever fewer than seven kinds remain.
type Bag struct {
	rng     *rand.Rand
	pending []Kind
}

func NewBag(rng *rand.Rand) *Bag {
	return &Bag{rng: rng, pending: make([]Kind, 0, 2*bagSize)}
}

// Draw deals the next kind.
func (b *Bag) Draw() Kind {
	if len(b.pending) < bagSize {
		b.refill()
	}

	k := b.pending[0]
	b.pending = b.pending[1:]
	return k
}

func (b *Bag) refill() {
	fresh := Kinds
	b.rng.Shuffle(len(fresh), func(i, j int) {
		fresh[i], fresh[j] = fresh[j], fresh[i]
	})
	b.pending = append(b.pending, fresh[:]...)
}

// Queue is the lookahead of upcoming kinds shown to the player.
type Queue struct {
	src  Source
	next []Kind
}

// MinPreview is the smallest lookahead a Queue will keep.
const MinPreview = 3

func NewQueue(src Source, size int) *Queue {
	if size < MinPreview {
		size = MinPreview
	}

	q := &Queue{src: src, next: make([]Kind, 0, size)}
	for range size {
		q.next = append(q.next, src.Draw())
	}
	return q
}

// Pop consumes the head of the queue and draws exactly one replacement.
func (q *Queue) Pop() Kind {
	k := q.next[0]
	copy(q.next, q.next[1:])
	q.next[len(q.next)-1] = q.src.Draw()
	return k
}

// Peek returns up to n upcoming kinds without consuming them.
func (q *Queue) Peek(n int) []Kind {
	if n > len(q.next) {
		n = len(q.next)
	}
	out := make([]Kind, n)
	copy(out, q.next[:n])
	return out
}

func (q *Queue) Len() int {
	return len(q.next)
}
