// Package io reads and writes graphs as delimited edge lists and JSON.
//
// # Edge Lists
//
// An edge list has one edge per row, two vertex names separated by a
// delimiter (comma by default):
//
//	# collaboration network
//	alice,bob
//	bob,carol
//
// Blank lines and lines starting with the comment character are skipped.
// Fields after the second are ignored. Rows whose two names are equal are
// skipped and counted in [EdgeListStats.SelfLoops], since graphs are simple.
// A row with fewer than two fields is an INVALID_FORMAT error naming the
// line.
//
// Edge lists cannot represent isolated vertices; [WriteEdgeList] drops them.
// Use JSON for a lossless round trip.
//
// # Copy Generations
//
// Copies created by orbit anonymization are written in their marker form,
// "-a" for the first copy of "a". With [EdgeListOptions.ParseTags] the reader
// turns leading markers back into generations.
//
// # JSON Format
//
//	{
//	  "nodes": [
//	    {"id": "a"},
//	    {"id": "-a", "name": "a", "generation": 1}
//	  ],
//	  "edges": [
//	    {"from": "a", "to": "-a"}
//	  ]
//	}
//
// Node ids must be unique; edges reference ids. name and generation default
// to the id and 0. Nodes are read in order, so vertex handles survive a round
// trip.
//
// # Files
//
// [ReadFile] and [WriteFile] pick the format from the file extension, see
// [FormatFromPath].
package io
