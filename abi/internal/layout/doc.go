// Package layout computes the packed size of descriptor trees without
// recursion.
//
// Size runs in two passes. Flatten walks the tree pre-order with an explicit
// work stack and emits one token per node. Evaluate scans the tokens in
// reverse against an operand stack: a simple token pushes its size, an array
// token multiplies the top operand by its count, and a struct token replaces
// its field operands with their sum. Exactly one operand remains.
//
// Cost is linear in the number of visited nodes. Shared subtrees are visited
// once per reference, so a node cap bounds the work on hostile inputs.
//
// This package is internal to abi.
package layout
