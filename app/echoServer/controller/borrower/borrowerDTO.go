package borrower

type RegisterBorrowerReq struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Course  string `json:"course" validate:"required"`
	Year    int    `json:"year" validate:"omitempty,gte=1"`
}
