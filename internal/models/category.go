package models

// Categories is the enumerated set of fact categories, in display order.
var Categories = []string{
	"Science",
	"History",
	"Geography",
	"Animals",
	"Space",
	"Technology",
	"Food",
	"Sports",
	"Anime",
}

// TriviaCategory labels the made-up statements mixed into trivia rounds. It
// is not a valid category for stored facts.
const TriviaCategory = "Trivia"

// IsCategory reports whether c is one of Categories (exact match).
func IsCategory(c string) bool {
	for _, known := range Categories {
		if known == c {
			return true
		}
	}
	return false
}
