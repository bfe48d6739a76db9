package engine

// SelfCareKind groups interchangeable self-care suggestions. The generator
// rotates through a kind's variants so a user does not see the same one
// twice within the recent window.
type SelfCareKind string

const (
	KindMicroBreak SelfCareKind = "micro-break"
	KindCelebrate  SelfCareKind = "celebrate"
	KindWindDown   SelfCareKind = "wind-down"
)

// SelfCareVariant is one concrete rendition of a self-care kind
type SelfCareVariant struct {
	Key      string
	Title    string
	Subtitle string
	Reason   string
	Minutes  int
}

// RecentKey is the member recorded in the recent-suggestion store
func (k SelfCareKind) RecentKey(variant string) string {
	return string(k) + ":" + variant
}

var selfCareCatalog = map[SelfCareKind][]SelfCareVariant{
	KindMicroBreak: {
		{
			Key:      "breathing",
			Title:    "Five minutes of box breathing",
			Subtitle: "Inhale 4, hold 4, exhale 4, hold 4",
			Reason:   "Your mood has dipped lately; a short reset can take the edge off the evening",
			Minutes:  15,
		},
		{
			Key:      "stretch",
			Title:    "Gentle evening stretch",
			Subtitle: "Neck, shoulders and hips",
			Reason:   "Your mood has dipped lately; moving a little helps release the day",
			Minutes:  15,
		},
		{
			Key:      "walk",
			Title:    "Short walk outside",
			Subtitle: "No phone, just a loop around the block",
			Reason:   "Your mood has dipped lately; daylight and a change of scene help",
			Minutes:  15,
		},
	},
	KindCelebrate: {
		{
			Key:      "journal",
			Title:    "Write down what went well",
			Subtitle: "Three wins from this week",
			Reason:   "Your mood has been consistently good; noting why helps keep it that way",
			Minutes:  20,
		},
		{
			Key:      "gratitude",
			Title:    "Send a thank-you note",
			Subtitle: "To someone who made this week better",
			Reason:   "Your mood has been consistently good; sharing it reinforces it",
			Minutes:  20,
		},
		{
			Key:      "treat",
			Title:    "Plan a small treat",
			Subtitle: "Something you have been looking forward to",
			Reason:   "Your mood has been consistently good; celebrate the progress",
			Minutes:  20,
		},
	},
	KindWindDown: {
		{
			Key:      "reading",
			Title:    "Wind down with a book",
			Subtitle: "Screens off, pages on",
			Reason:   "A calm evening routine is a good place to start while we learn your rhythm",
			Minutes:  20,
		},
		{
			Key:      "tea",
			Title:    "Tea and a quiet moment",
			Subtitle: "Something warm, nothing urgent",
			Reason:   "A calm evening routine is a good place to start while we learn your rhythm",
			Minutes:  20,
		},
	},
}

// Variants returns the catalog for kind in rotation order
func Variants(kind SelfCareKind) []SelfCareVariant {
	return selfCareCatalog[kind]
}

// VariantPicker chooses one of the variant keys for kind
type VariantPicker func(kind SelfCareKind, keys []string) string

// FirstVariant always picks the first key
func FirstVariant(_ SelfCareKind, keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}
