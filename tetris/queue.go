package tetris

import (
	"fmt"
	"time"

	"github.com/Ilingu/corrodis/geom"
)

// QueueLen is the number of upcoming pieces kept as previews.
const QueueLen = 3

// Queue is the FIFO of upcoming shapes. Each entry is materialised as a
// scale-1 preview piece parked at the side-panel slot of its rank.
type Queue struct {
	rng    Rand
	panel  Bounds
	slots  [QueueLen]geom.Point
	pieces [QueueLen]Piece
}

// NewQueue fills all three ranks with random shapes. Every shape must fit at
// every slot inside panel, so that later refills cannot fail.
func NewQueue(r Rand, panel Bounds, slots [QueueLen]geom.Point) (*Queue, error) {
	for rank, slot := range slots {
		for _, kind := range Shapes {
			cells, ok := layout(kind, slot, 1)
			if !ok || !allFit(panel, cells, 1) {
				return nil, fmt.Errorf("%w: preview rank %d at %v cannot hold %v", ErrPieceOutOfBounds, rank, slot, kind)
			}
		}
	}

	q := &Queue{rng: r, panel: panel, slots: slots}
	for rank := range q.pieces {
		q.pieces[rank] = q.fresh(rank)
	}
	return q, nil
}

func (q *Queue) fresh(rank int) Piece {
	p, err := Spawn(q.rng, q.panel, time.Time{}, AtPosition(q.slots[rank]))
	if err != nil {
		// NewQueue checked every shape at every slot.
		panic(err)
	}
	return p
}

// Promote removes the shape at rank 0 and returns it. The remaining previews
// move up one rank and a new random shape is appended at rank 2.
func (q *Queue) Promote() ShapeKind {
	kind := q.pieces[0].Kind
	for rank := 0; rank < QueueLen-1; rank++ {
		q.pieces[rank] = q.pieces[rank+1].AtPosition(q.slots[rank])
	}
	q.pieces[QueueLen-1] = q.fresh(QueueLen - 1)
	return kind
}

// Peek returns the preview piece at rank.
func (q *Queue) Peek(rank int) Piece {
	return q.pieces[rank]
}

// Kinds returns the queued shapes, rank 0 first.
func (q *Queue) Kinds() [QueueLen]ShapeKind {
	var kinds [QueueLen]ShapeKind
	for i, p := range q.pieces {
		kinds[i] = p.Kind
	}
	return kinds
}

// Previews returns the preview pieces, rank 0 first.
func (q *Queue) Previews() [QueueLen]Piece {
	return q.pieces
}

// Len always returns QueueLen.
func (q *Queue) Len() int {
	return len(q.pieces)
}
