// Package huffpack implements deterministic Huffman codes and a small,
// self-delimiting container format that binds a code table to the packed
// bits it was used to produce.
//
// The encode pipeline is:
//
//     symbols → FrequencyTable → BuildTree → AssignCodes → Pack → Container
//
// and decoding reverses it using only the persisted code table:
//
//     Container → Unpack → greedy prefix match → symbols
//
// Ties between equal weights are broken by symbol order, so the same input
// always yields the same tree and the same codes.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffpack
