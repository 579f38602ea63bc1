// Package vertexing reconstructs the correspondence between reconstructed
// tracks or vertices and true heavy-flavour hadron decay chains.
//
// Input data is ragged per-jet data stored as dense rectangular tables with
// a padding sentinel (see NoBarcode, NoIndex). The package provides:
//
//   - TrackMask: validity mask separating real track slots from padding.
//   - CleanIndices: removal or merging of per-track vertex index values.
//   - ResolveHadrons: per-jet parent/child barcode resolution and jet
//     topology classification (single hadron, decay chain, unrelated).
//   - AssociateTracks: inclusive and exclusive track-to-hadron vertex
//     assignment with a best-candidate pick per jet.
//   - VertexMetrics: match counts, vertex sizes and track-overlap vectors
//     from comparing any two per-track index assignments.
//
// All functions are pure transforms over in-memory tables; per-jet outputs
// are aligned with the input jet ordering.
package vertexing
