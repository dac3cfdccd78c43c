// Package registry is the durable store of installed capability modules.
// Modules are keyed by (layer, stack) and persisted as record files with a
// YAML header block and a free-form payload the core never parses. All
// mutations are atomic: a record is rewritten in full via a temp file and
// rename, or the operation fails with no change on disk.
package registry
