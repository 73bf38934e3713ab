package dto

type AccountOutput struct {
	UserID    int
	Name      string
	Email     string
	Role      string
	CreatedAt string
}

type ListInput struct {
	Role string
	Only bool
}
