// Package anonymize defines the contract shared by the structural
// k-anonymity algorithms and the checks used to verify their results.
//
// Implementations live in subpackages:
//
//   - [github.com/matzehuels/kanon/pkg/anonymize/degree]: k-degree anonymity
//     through degree-sequence anonymization and supergraph realization
//   - [github.com/matzehuels/kanon/pkg/anonymize/orbit]: k-symmetry through
//     orbit copying
//
// Both mutate the graph they are given and return it.
package anonymize
