// model/book.go
package model

type Book struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Publisher       string `json:"publisher"`
	Category        string `json:"category"`
	Year            int    `json:"year"`
	ISBN            string `json:"isbn"`
	CopiesTotal     int64  `json:"copies_total"`
	CopiesAvailable int64  `json:"copies_available"`
}
