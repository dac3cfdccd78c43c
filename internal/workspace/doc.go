// Package workspace performs read-only inspection of a development
// workspace. It produces typed signals (file presence, manifest keys) for
// stack classification and detects the live dependency set used by sync
// reconciliation. A missing or malformed manifest degrades to an empty
// signal subset; it never fails the whole scan.
package workspace
