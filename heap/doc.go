// Package heap implements the runtime's object heaps.
//
// A heap is a dense array of live objects. Every object records its own
// index and the heap keeps that index equal to the object's position:
// deleting the object at position k shifts every later object down by one
// and renumbers it, and objects before k are untouched. The backing array
// doubles when full and halves once it is half empty.
//
// Two allocation strategies exist and the set is closed:
//
//   - Heap holds SimpleObjects, flat zeroed blocks sized by a Descriptor.
//   - TermHeap holds TermObjects, sized by an abi type descriptor and
//     resizable to a new descriptor in place.
//
// Observers subscribed to a heap see every allocation, deletion,
// compaction move and teardown.
package heap
