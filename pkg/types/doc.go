// Package types defines the unified record-map model shared by every content
// source, the Source and Cache interfaces, configuration, and the standard
// error values for notionmap.
//
// A RecordMap is the shape a renderer consumes: a node table keyed by
// identifier, a collection table, a view table, and per-view query results.
// Both the official database API and the legacy block-graph API are
// normalized into it.
package types
