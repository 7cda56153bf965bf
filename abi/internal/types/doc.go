// Package types defines the descriptor node model shared by the abi
// package and its size calculator.
//
// Descriptors live in an Arena and refer to each other by Ref. Array nodes
// name their element; struct nodes name a contiguous run of child refs in
// the arena's child table. The first NumLeaves refs of every arena are the
// scalar leaves, so leaf refs are valid in any arena.
//
// This package is internal to abi.
package types
