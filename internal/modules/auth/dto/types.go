package dto

type LoginInput struct {
	Email    string
	Password string
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type RegisterOutput struct {
	Message string
	UserID  int
}

type SessionOutput struct {
	UserID        int
	Email         string
	Name          string
	Role          string
	Token         string
	Authenticated bool
	Loading       bool
	Err           string
}
