package models

// Policy decides how many effective likes a name needs before it counts as a
// match, given the household's current roster size. Roster size is consulted
// at evaluation time, so a member joining later raises the bar instead of
// inheriting pre-existing matches.
type Policy interface {
	RequiredLikes(memberCount int) int
}

// AllMembers requires every current household member to like the name.
// This is the default policy.
type AllMembers struct{}

// RequiredLikes returns the roster size, with a floor of two so a household
// of one can never match against itself.
func (AllMembers) RequiredLikes(memberCount int) int {
	if memberCount < 2 {
		return 2
	}
	return memberCount
}

// Quorum requires a fixed number of likes regardless of roster size, capped
// below by two. The original product shipped with a quorum of two.
type Quorum struct {
	N int
}

// RequiredLikes returns the quorum, never less than two and never more than
// would be impossible to express (a quorum above the roster simply means no
// match yet).
func (q Quorum) RequiredLikes(int) int {
	if q.N < 2 {
		return 2
	}
	return q.N
}
