// Package classify maps a workspace signal set to a canonical stack
// identity using an ordered, scored rule table. Classification is a pure
// function of the signal set: the same signals always select the same
// profile. A workspace matching no rule classifies as Unknown, which is a
// valid terminal outcome rather than an error.
package classify
