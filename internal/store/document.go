package store

import "github.com/dcastano/evalia/internal/model"

// The bootstrap source serves one document per collection, each wrapping its
// records under the collection name. The durable cache combines all four
// under the same shape, so a cache file and the bootstrap documents stay
// mutually convertible.

type UsersDocument struct {
	Users []model.User `json:"users"`
}

type TestsDocument struct {
	Tests []model.Test `json:"tests"`
}

type AssignmentsDocument struct {
	Assignments []model.Assignment `json:"assignments"`
}

type ResultsDocument struct {
	Results []model.Result `json:"results"`
}

// Document is the full serialized store: the durable cache payload.
type Document struct {
	Users       UsersDocument       `json:"users"`
	Tests       TestsDocument       `json:"tests"`
	Assignments AssignmentsDocument `json:"assignments"`
	Results     ResultsDocument     `json:"results"`
}

// EmptyDocument returns a structurally valid document with four empty
// collections, the fallback when bootstrap fails.
func EmptyDocument() Document {
	return Document{
		Users:       UsersDocument{Users: []model.User{}},
		Tests:       TestsDocument{Tests: []model.Test{}},
		Assignments: AssignmentsDocument{Assignments: []model.Assignment{}},
		Results:     ResultsDocument{Results: []model.Result{}},
	}
}
