// Package inspect runs the granule inspection pipeline: discover granules,
// sample the first N, decode and mask each LST band pair, summarise, and hand
// the rows to the configured sinks and report writers.
//
// Processing is sequential and stops at the first error.
package inspect
