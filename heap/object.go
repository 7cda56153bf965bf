package heap

// SimpleObject is a zero-initialized block tracked by a Heap.
//
// Index is the object's position in the heap. Deleting an object with a
// lower index shifts it down by one; the heap keeps the field current, so
// hold on to the pointer rather than a copied index.
type SimpleObject struct {
	Obj       []byte
	Allocator Descriptor
	Index     int
}

func (o *SimpleObject) Strategy() Strategy { return StrategySimple }
func (o *SimpleObject) Position() int      { return o.Index }
func (o *SimpleObject) Bytes() []byte      { return o.Obj }

func (o *SimpleObject) setPosition(i int) { o.Index = i }

func (o *SimpleObject) release() {
	o.Obj = nil
	o.Index = -1
}

// TermObject is a block shaped by a type descriptor in the owning
// TermHeap's arena. Resize reshapes it in place.
type TermObject struct {
	Data  []byte
	Shape Ref
	Index int
}

func (o *TermObject) Strategy() Strategy { return StrategyTerm }
func (o *TermObject) Position() int      { return o.Index }
func (o *TermObject) Bytes() []byte      { return o.Data }

func (o *TermObject) setPosition(i int) { o.Index = i }

func (o *TermObject) release() {
	o.Data = nil
	o.Index = -1
}
