package models

type ParseRequest struct {
	Word string
	URL  string
	HTML string

	Mode ParseMode `json:"mode,omitempty"`

	// SkipMeta disables the readability pass over the page.
	SkipMeta bool `json:"skip_meta,omitempty"`
}
