package models

// Course is an immutable snapshot of one classroom course, fetched per
// request and never cached server-side.
type Course struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Section       string `json:"section,omitempty"`
	AlternateLink string `json:"alternate_link,omitempty"`
}

// Roster pairs a course with its enrolled students in upstream page order.
type Roster struct {
	Course   Course    `json:"course"`
	Students []Student `json:"students"`
}
