// Package deploy materializes the registry's on-disk tree into a target
// runtime location. It is a plain file-copy surface: source and destination
// roots in, copied tree out, error on any copy failure.
package deploy
