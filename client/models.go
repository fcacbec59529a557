package client

// LoanStatus is the lifecycle state of a loan.
type LoanStatus string

const (
	LoanStatusActive   LoanStatus = "active"
	LoanStatusReturned LoanStatus = "returned"
)

// User mirrors a server user record. Records are read-only on this side:
// mutations happen through POST calls followed by a full list reload.
type User struct {
	ID               int64        `json:"id"`
	Name             string       `json:"name"`
	Email            string       `json:"email"`
	Phone            string       `json:"phone"`
	RegistrationDate string       `json:"registration_date"`
	Active           bool         `json:"active"`
	CurrentLoan      *CurrentLoan `json:"current_loan"`
}

// CurrentLoan is the denormalized summary of a user's single active loan,
// embedded by the server into user records.
type CurrentLoan struct {
	LoanID             int64  `json:"loan_id"`
	BookTitle          string `json:"book_title"`
	BookAuthor         string `json:"book_author"`
	LoanDate           string `json:"loan_date"`
	ExpectedReturnDate string `json:"expected_return_date"`
}

// Book mirrors a server book record.
type Book struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	Genre           string `json:"genre"`
	PublicationDate string `json:"publication_date"`
	Available       bool   `json:"available"`
}

// Loan mirrors a server loan record.
type Loan struct {
	ID                 int64      `json:"id"`
	UserID             int64      `json:"user_id"`
	BookID             int64      `json:"book_id"`
	LoanDate           string     `json:"loan_date"`
	ExpectedReturnDate string     `json:"expected_return_date"`
	ActualReturnDate   *string    `json:"actual_return_date"`
	Status             LoanStatus `json:"status"`
}

// CreateUserParams is the payload for registering a user.
type CreateUserParams struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CreateBookParams is the payload for adding a book to the catalog.
type CreateBookParams struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	Genre           string `json:"genre"`
	PublicationDate string `json:"publication_date"`
}

type createLoanParams struct {
	UserID int64 `json:"user_id"`
	BookID int64 `json:"book_id"`
}
