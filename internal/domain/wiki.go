package domain

type WikiRecord struct {
	Name     string
	Summary  string
	Fields   []Field
	Sections []WikiSection
}

type WikiSection struct {
	Name  string
	Lines []string
}
