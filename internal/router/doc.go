// Package router matches free-form request text to a capability category
// via a static, priority-ordered trigger table. Evaluation is single-pass
// and first-match-wins over the normalized text, trading recall for
// determinism: the same text against the same table always produces the
// same decision. No match is a valid outcome that asks the caller to
// request clarification rather than guess.
package router
