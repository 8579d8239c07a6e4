package models

// WordLink is one row of the input word list.
type WordLink struct {
	Word string
	Link string
}

// WordEntries is the per-word record of the JSON lexicon.
type WordEntries struct {
	Word        string        `json:"word" yaml:"word"`
	Definitions []ParsedEntry `json:"definitions" yaml:"definitions"`
}

// Instance is one dated quotation of a tagged definition.
type Instance struct {
	Word        string
	Description string
	Year        string
	Text        string
}

// ContextRecord is a sentence window around one lexicon word in a corpus article.
type ContextRecord struct {
	Date string `json:"date"`
	Word string `json:"word"`
	Text string `json:"text"`
}

// Article is one corpus document.
type Article struct {
	Date    string `json:"date"`
	Article string `json:"article"`
}
