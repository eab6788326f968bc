// Package table reads entity data into [poset.Entity] values.
//
// Two input shapes are supported:
//
//   - Ranking tables ([ReadCSV], [ReadEntities]): each row lists entity
//     names, one per column position. A name's vector counts how often it
//     appears in each column. By default the first row is a header and the
//     first column holds row labels; both are dropped.
//   - Vector files ([LoadVectors], [DecodeVectors]): a precomputed mapping
//     from entity name to count vector, in JSON, YAML or TOML.
//
// Either way the result is ready for [hasse.Build].
package table
