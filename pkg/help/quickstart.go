package help

const QuickstartYAML = `# lexicon-scraper Quick Start

parse_modes:
  senses: "Noun and Adjective definition lists only (default)"
  all: "Every definition list of the English section, labelled by heading"

commands:
  scrape: |
    lxs scrape --words words.csv --out lexicon.csv
    lxs scrape --words words.csv --out lexicon.csv --json lexicon.json --xlsx lexicon.xlsx

  lookup: |
    lxs lookup cad
    lxs lookup --format json --mode all "bad egg"

  parse_saved_page: |
    lxs parse --file cad.html --word cad

  instances: |
    lxs instances --lexicon lexicon.json --out instances.csv

  contexts: |
    lxs contexts --lexicon lexicon.json --out contexts.csv corpus/*.jsonl
    lxs contexts --lexicon lexicon.json --out contexts.csv --english-only --workers 8 corpus/*.jsonl

  export: |
    lxs export --format xlsx --out lexicon.xlsx

  inspect: |
    lxs db runs
    lxs db run 3
    lxs db words
    lxs db show cad

word_list:
  - "CSV, header optional: word,link"
  - "Empty link: page URL is built from scrape.base_url and the word"
  - "Spaces in words become underscores ('bad egg' -> bad_egg)"

scrape_behaviour:
  - "One request every scrape.delay (default 1.5s)"
  - "Pause scrape.batch_pause (default 5s) after every scrape.batch_size (default 50) fetched words"
  - "Raw pages cached under lxs-results/words/{id}/ for scrape.max_age (default 168h)"
  - "--force-fetch ignores the cache"
  - "CSV output is flushed after every word; Ctrl-C keeps what was written"
  - "robots.txt is honoured unless scrape.ignore_robots is set"

definitions:
  pos: "Noun or Adjective (senses mode); heading category (all mode)"
  tags: "Subset of derogatory, vulgar, slang, offensive found in the usage label"
  description: "Definition text without nested lists, citations or markup"
  quotations: "'year; text' for every dated or quoted citation"

config:
  file: "lxs.yaml, or --config, or $LXS_CONFIG"
  env: "LXS_* variables override the file; .env is loaded first"
  sections: [scrape, log, db, metrics]

error_behavior:
  - "A failed word is logged and recorded; the run continues"
  - "Exit codes: 0=success, 1=partial failure, 2=complete failure"
`
