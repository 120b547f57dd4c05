package langcache

// SearchRequest is the body of a semantic search call.
type SearchRequest struct {
	// Prompt is the query text to match against cached entries.
	Prompt string `json:"prompt"`

	// Attributes optionally restricts matching to entries with these attributes.
	Attributes map[string]string `json:"attributes,omitempty"`

	// Scope optionally restricts matching to a named scope.
	Scope map[string]string `json:"scope,omitempty"`

	// DistanceThreshold optionally overrides the cache-side match threshold.
	DistanceThreshold *float64 `json:"distanceThreshold,omitempty"`
}

// Match is one candidate returned by a semantic search, ordered best first.
type Match struct {
	ID       string `json:"id"`
	Prompt   string `json:"prompt"`
	Response string `json:"response"`

	// Distance is the dissimilarity of the match: 0.0 identical, 1.0 unrelated.
	Distance float64 `json:"distance"`

	Attributes map[string]string `json:"attributes,omitempty"`
	Scope      map[string]string `json:"scope,omitempty"`
	Metadata   map[string]any    `json:"metadata,omitempty"`
}

// Similarity returns the complement of the match distance, clamped to [0, 1].
func (m Match) Similarity() float64 {
	s := 1.0 - m.Distance
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

// EntryRequest is the body of an entry insertion call.
type EntryRequest struct {
	Prompt     string            `json:"prompt"`
	Response   string            `json:"response"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Scope      map[string]string `json:"scope,omitempty"`
	TTLMillis  int64             `json:"ttlMillis,omitempty"`
}

// EntryReceipt confirms a stored entry.
type EntryReceipt struct {
	EntryID   string `json:"entryId"`
	Timestamp string `json:"timestamp"`
}
