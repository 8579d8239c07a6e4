package manifest

// RunManifest is the YAML summary written at the end of a scrape run.
// It gives an overview of every word, its outcome and the outputs produced
// without opening the outputs themselves.
type RunManifest struct {
	RunKey      string          `yaml:"run_key"`
	RunID       int64           `yaml:"run_id,omitempty"`
	GeneratedAt string          `yaml:"generated_at"`
	Elapsed     string          `yaml:"elapsed"`
	ParseMode   string          `yaml:"parse_mode"`
	TotalWords  int             `yaml:"total_words"`
	Successful  int             `yaml:"successful"`
	Failed      int             `yaml:"failed"`
	FromCache   int             `yaml:"from_cache"`
	Entries     int             `yaml:"entries"`
	Discarded   int             `yaml:"discarded"`
	TopTags     []string        `yaml:"top_tags,omitempty"`
	Outputs     []OutputSummary `yaml:"outputs,omitempty"`
	Results     []WordSummary   `yaml:"results"`
}

// OutputSummary describes one output file.
type OutputSummary struct {
	Path      string `yaml:"path"`
	SizeBytes int64  `yaml:"size_bytes"`
	Size      string `yaml:"size"` // human readable, e.g. "1.2 MB"
}

// WordSummary represents the outcome of a single word.
type WordSummary struct {
	Word         string   `yaml:"word"`
	URL          string   `yaml:"url,omitempty"`
	Status       string   `yaml:"status"` // "success" or "error"
	ErrorType    string   `yaml:"error_type,omitempty"`
	ErrorMessage string   `yaml:"error_message,omitempty"`
	Entries      int      `yaml:"entries"`
	Discarded    int      `yaml:"discarded,omitempty"`
	FromCache    bool     `yaml:"from_cache,omitempty"`
	Tags         []string `yaml:"tags,omitempty"`
}
