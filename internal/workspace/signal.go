package workspace

// SignalKind discriminates the observation types a scan can produce.
type SignalKind string

const (
	// FileExists records that a probed file (or glob pattern) matched in
	// the workspace root.
	FileExists SignalKind = "file_exists"

	// ManifestKey records that a probed key path is present in the
	// workspace dependency manifest.
	ManifestKey SignalKind = "manifest_key"
)

// Signal is a single observed fact about a workspace. Signals are produced
// fresh on every scan and never persisted.
type Signal struct {
	Kind SignalKind `json:"kind"`
	// Ref identifies the probe: a file pattern for FileExists (e.g.
	// "vite.config.*") or a dotted key path for ManifestKey (e.g.
	// "dependencies.react").
	Ref string `json:"ref"`
	// Value carries the observed value where one exists: the matched file
	// name for FileExists, the manifest value for ManifestKey.
	Value string `json:"value,omitempty"`
}

// SignalSet is the complete observation set of one scan.
type SignalSet []Signal

// Has reports whether the set contains a signal with the given kind and ref.
func (s SignalSet) Has(kind SignalKind, ref string) bool {
	for _, sig := range s {
		if sig.Kind == kind && sig.Ref == ref {
			return true
		}
	}
	return false
}

// Get returns the signal with the given kind and ref, if present.
func (s SignalSet) Get(kind SignalKind, ref string) (Signal, bool) {
	for _, sig := range s {
		if sig.Kind == kind && sig.Ref == ref {
			return sig, true
		}
	}
	return Signal{}, false
}
