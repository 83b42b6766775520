// model/borrower.go
package model

type Borrower struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Course  string `json:"course"`
	Year    int    `json:"year"`
}
