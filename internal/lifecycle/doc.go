// Package lifecycle drives creation of missing capability modules as an
// explicit approval-gated state machine. A drafted proposal suspends at
// AwaitingApproval until an external decision arrives; generation fills a
// placeholder template and inserts the module into the registry only after
// approval. Nothing is ever written without that decision.
package lifecycle
