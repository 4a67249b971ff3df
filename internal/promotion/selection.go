package promotion

// Wildcard is the category tag meaning "every category". It can never
// coexist with a specific tag in a selection set.
const Wildcard = "all"

// Category tags offered by the console.
var (
	BettingTypeTags = []string{"football", "boxing"}
	MarketTypeTags  = []string{"handicap", "over_under", "1x2"}
)

// SelectionSet is the toggle state machine behind the applicable-category
// checkboxes (sport types, market types). It preserves insertion order and
// keeps the wildcard mutually exclusive with specific tags after every
// transition.
type SelectionSet struct {
	tags []string
}

// NewSelectionSet starts a set from existing tags, deduplicated. If the
// wildcard is present among the initial tags it wins and the set collapses
// to just the wildcard.
func NewSelectionSet(initial []string) *SelectionSet {
	s := &SelectionSet{}
	for _, tag := range initial {
		if tag == Wildcard {
			s.tags = []string{Wildcard}
			return s
		}
	}
	for _, tag := range initial {
		if !s.Contains(tag) {
			s.tags = append(s.tags, tag)
		}
	}
	return s
}

// Toggle applies one checkbox transition:
//   - wildcard on: the set becomes {all}
//   - wildcard off: the set becomes empty
//   - specific tag on: the wildcard is dropped, the tag added
//   - specific tag off: the tag is dropped
func (s *SelectionSet) Toggle(tag string, checked bool) {
	if tag == Wildcard {
		if checked {
			s.tags = []string{Wildcard}
		} else {
			s.tags = nil
		}
		return
	}

	if checked {
		s.remove(Wildcard)
		if !s.Contains(tag) {
			s.tags = append(s.tags, tag)
		}
		return
	}
	s.remove(tag)
}

func (s *SelectionSet) remove(tag string) {
	for i, existing := range s.tags {
		if existing == tag {
			s.tags = append(s.tags[:i], s.tags[i+1:]...)
			return
		}
	}
}

// Contains reports whether the tag is currently selected.
func (s *SelectionSet) Contains(tag string) bool {
	for _, existing := range s.tags {
		if existing == tag {
			return true
		}
	}
	return false
}

// Empty reports whether nothing is selected.
func (s *SelectionSet) Empty() bool {
	return len(s.tags) == 0
}

// Values returns the selected tags in insertion order.
func (s *SelectionSet) Values() []string {
	copied := make([]string, len(s.tags))
	copy(copied, s.tags)
	return copied
}
