package models

// PageMeta is page-level information recorded alongside the parsed entries.
type PageMeta struct {
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	SiteName string `json:"site_name,omitempty" yaml:"site_name,omitempty"`
	Excerpt  string `json:"excerpt,omitempty" yaml:"excerpt,omitempty"`
	Length   int    `json:"length,omitempty" yaml:"length,omitempty"` // readable text length in characters
}
