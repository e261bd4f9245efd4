// Package ordering assigns flowchart nodes to rows from edge connectivity.
//
// # Row Assignment
//
// [OrderNodes] makes a single pass over the edge list in declaration order:
//
//  1. The source of an edge that has not been seen yet starts at row 0
//  2. The target is placed one row below its source, if it is new
//  3. Both ends record the connection in their From/To adjacency
//  4. The highest row reached is tracked as [Result.MaxIndex]
//
// A node keeps the row it was created in. Back edges (a target whose row is
// at or above its source) therefore do not move nodes, and the edge
// declaration order fully determines the result.
//
// Nodes that appear in no edge are not part of the result and are never
// laid out.
//
// # Adjacency
//
// Each [OrderedNode] maps neighbour ids to a [Link]. When several edges join
// the same ordered pair, the last one declared wins.
package ordering
