package models

// Group is a row of the "group" relation, keyed by name.
type Group struct {
	Name        string
	Description string
}
