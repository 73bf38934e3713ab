package domain

// Account is a user row as the admin endpoints report it. Role carries the
// combined role string, e.g. "PATIENT,ADMIN".
type Account struct {
	UserID    int
	Name      string
	Email     string
	Role      string
	CreatedAt string
}

// Filter narrows the admin user listing. Only restricts the match to
// accounts holding exactly the given role and nothing else.
type Filter struct {
	Role string
	Only bool
}
