// Package reconcile compares a capability module's declared library set
// against the workspace's live dependency set and computes an ordered
// add/update/remove action plan. Plans are proposals: nothing is applied
// without an explicit external approval, and removals in particular are
// flagged rather than forced. Applying a full plan is idempotent.
package reconcile
