package scrape

// ResultOutput is the per-word line of the run output.
type ResultOutput struct {
	Word      string   `json:"word" yaml:"word"`
	URL       string   `json:"url" yaml:"url"`
	Status    string   `json:"status" yaml:"status"`
	Entries   int      `json:"entries" yaml:"entries"`
	Discarded int      `json:"discarded,omitempty" yaml:"discarded,omitempty"`
	Tags      []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	FromCache bool     `json:"from_cache,omitempty" yaml:"from_cache,omitempty"`
	Error     string   `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorType string   `json:"error_type,omitempty" yaml:"error_type,omitempty"`
}

// FinalOutput is the structured output for the entire run.
type FinalOutput struct {
	Status   string      `json:"status" yaml:"status"`
	RunKey   string      `json:"run_key" yaml:"run_key"`
	RunID    int64       `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Manifest string      `json:"manifest,omitempty" yaml:"manifest,omitempty"`
	Outputs  []string    `json:"outputs" yaml:"outputs"`
	Results  interface{} `json:"results,omitempty" yaml:"results,omitempty"`
	Stats    Stats       `json:"stats" yaml:"stats"`
}

// Stats provides summary statistics for the run.
type Stats struct {
	TotalWords       int      `json:"total_words" yaml:"total_words"`
	Processed        int      `json:"processed" yaml:"processed"`
	Successful       int      `json:"successful" yaml:"successful"`
	Failed           int      `json:"failed" yaml:"failed"`
	FromCache        int      `json:"from_cache" yaml:"from_cache"`
	Entries          int      `json:"entries" yaml:"entries"`
	Pauses           int      `json:"pauses" yaml:"pauses"`
	Interrupted      bool     `json:"interrupted,omitempty" yaml:"interrupted,omitempty"`
	TotalTimeSeconds float64  `json:"total_time_seconds" yaml:"total_time_seconds"`
	TopTags          []string `json:"top_tags,omitempty" yaml:"top_tags,omitempty"`
}
