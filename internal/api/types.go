package api

// WordsResponse is returned by GET /words
type WordsResponse struct {
	Prefix string   `json:"prefix"`
	Words  []string `json:"words"`
}

// WordResponse is returned by the single-word endpoints
type WordResponse struct {
	Word  string `json:"word"`
	Found bool   `json:"found"`
	Added bool   `json:"added,omitempty"`
}

// StatsResponse is returned by GET /stats
type StatsResponse struct {
	Words int `json:"words"`
	Nodes int `json:"nodes"`
	Roots int `json:"roots"`
}

// ErrorResponse carries the message of a failed request
type ErrorResponse struct {
	Error string `json:"error"`
}
