package db_models

// TagSet is a closed vocabulary for one family of check-in tags.
type TagSet map[string]struct{}

func newTagSet(tags ...string) TagSet {
	s := make(TagSet, len(tags))
	for _, t := range tags {
		s[t] = struct{}{}
	}
	return s
}

func (s TagSet) Contains(tag string) bool {
	_, ok := s[tag]
	return ok
}

var (
	ChallengeTags = newTagSet(
		"physical_fatigue",
		"mental_exhaustion",
		"time_constraints",
		"distractions",
		"lack_of_motivation",
		"environmental_factors",
	)

	MotivationTags = newTagSet(
		"personal_goal",
		"external_accountability",
		"immediate_reward",
		"long_term_benefits",
		"support_from_others",
	)

	SabotageTags = newTagSet(
		"procrastination",
		"perfectionism",
		"all_or_nothing",
		"negative_self_talk",
		"comparison_with_others",
	)
)
