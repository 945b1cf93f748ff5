package domain

// EmployerDashboard holds counts over everything an employer owns, taken from one snapshot.
type EmployerDashboard struct {
	Jobs         int `json:"jobs"`
	Applications int `json:"applications"`
	Accepted     int `json:"accepted"`
	Rejected     int `json:"rejected"`
}
