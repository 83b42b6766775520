package book

type CreateBookReq struct {
	Title       string `json:"title" validate:"required"`
	Author      string `json:"author" validate:"required"`
	Publisher   string `json:"publisher"`
	Category    string `json:"category"`
	Year        int    `json:"year"`
	ISBN        string `json:"isbn"`
	CopiesTotal int64  `json:"copies_total" validate:"required,gte=1"`
}
