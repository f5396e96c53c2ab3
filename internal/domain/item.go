package domain

// Item is the uniform record every upstream result is mapped to before it enters a session.
type Item struct {
	Key      string
	Title    string
	Subtitle string
	Fields   []Field
	// Meta carries loader hints (team ids, slugs) that are never rendered.
	Meta map[string]string
}

// FieldScore names the item field holding a match score. It is hidden when scores are off.
const FieldScore = "Score"

type Field struct {
	Name  string
	Value string
}

// Detail is the expanded form of one Item. Groups are its sub-sources, each browsable as a sub-list.
type Detail struct {
	Item        Item
	Description string
	Groups      []Group
}

type Group struct {
	Name    string
	Entries []Entry
	// Scores marks groups whose entry values are match scores.
	Scores bool
}

type Entry struct {
	Label string
	Value string
}

func (i Item) MetaValue(key string) string {
	if i.Meta == nil {
		return ""
	}
	return i.Meta[key]
}

// Listing is the result of a list-producing command, ready to seed a session.
type Listing struct {
	Kind  SessionKind
	Title string
	Items []Item
	// FromCache reports that no upstream call was made.
	FromCache bool
}
