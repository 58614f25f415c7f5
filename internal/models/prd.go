package models

import "time"

// PRDSection is one titled section of a PRDDocument.
type PRDSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// PRDDocument is a templated product requirements document.
type PRDDocument struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	GeneratedAt time.Time    `json:"generatedAt"`
	FeatureIdea string       `json:"featureIdea"`
	Sections    []PRDSection `json:"sections"`
}
