// Package aggregates turns raw traversal rows into the person views served by the API.
//
// Rows arrive with one anchor person and the neighbor sets collected for it.
// Aggregation strips unmatched-optional placeholders, de-duplicates neighbors by
// identity (never by attributes), derives isMarried and builds one Marriage per spouse.
// Output order follows input order, so results are deterministic whenever the
// store's ordering is.
package aggregates
