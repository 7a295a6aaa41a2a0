package world

import (
	"container/heap"

	"github.com/annel0/blockverse/internal/vec"
)

// queueItem — запрос на сборку чанка
type queueItem struct {
	coords vec.Vec2
	dist   int // расстояние Чебышёва до опорного чанка
	distSq int // вторичный ключ: ближе к центру по евклиду
	seq    uint64
	index  int
}

// chunkQueue — очередь с приоритетом по расстоянию (ближние первыми), реализует heap.Interface
type chunkQueue []*queueItem

func (q chunkQueue) Len() int { return len(q) }

func (q chunkQueue) Less(i, j int) bool {
	a, b := q[i], q[j]
	if a.dist != b.dist {
		return a.dist < b.dist
	}
	if a.distSq != b.distSq {
		return a.distSq < b.distSq
	}
	return a.seq < b.seq
}

func (q chunkQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *chunkQueue) Push(x any) {
	item := x.(*queueItem)
	item.index = len(*q)
	*q = append(*q, item)
}

func (q *chunkQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*q = old[:n-1]
	return item
}

// reprioritize пересчитывает приоритеты относительно нового опорного чанка
func (q *chunkQueue) reprioritize(reference vec.Vec2) {
	for _, item := range *q {
		item.dist = item.coords.ChebyshevTo(reference)
		item.distSq = item.coords.DistanceSqTo(reference)
	}
	heap.Init(q)
}
