package controller

import (
	"time"

	"github.com/a-la-firme/librarysystem/client"
	"github.com/a-la-firme/librarysystem/forms"
	"github.com/a-la-firme/librarysystem/ui"
)

// displayDateLayout renders calendar dates the way the page's audience reads
// them (dd/mm/yyyy).
const displayDateLayout = "02/01/2006"

// placeholderNoLoan fills the current-loan column for users without one.
const placeholderNoLoan = "Sin préstamo"

// formatDate converts a wire date into display form. Timestamps are accepted
// for fields the server serializes with a time component. Values that parse
// as neither are shown verbatim rather than hiding data.
func formatDate(value string) string {
	if t, err := time.Parse(forms.DateLayout, value); err == nil {
		return t.Format(displayDateLayout)
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.Format(displayDateLayout)
	}
	return value
}

// userRow maps a user record onto its table display model.
func userRow(u client.User) ui.UserRow {
	row := ui.UserRow{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		RegisteredAt: formatDate(u.RegistrationDate),
		Active:       u.Active,
		LoanTitle:    placeholderNoLoan,
	}

	if u.CurrentLoan != nil {
		row.LoanTitle = u.CurrentLoan.BookTitle
		row.LoanID = u.CurrentLoan.LoanID
	}

	return row
}

// loanDetails maps a current-loan summary onto the dialog display model.
// A loan is overdue once the expected return date has passed: the date marks
// the start of its calendar day, so the day after it is already late.
func loanDetails(userName string, loan client.CurrentLoan, now time.Time) ui.LoanDetails {
	details := ui.LoanDetails{
		UserName:       userName,
		BookTitle:      loan.BookTitle,
		BookAuthor:     loan.BookAuthor,
		LoanDate:       formatDate(loan.LoanDate),
		ExpectedReturn: formatDate(loan.ExpectedReturnDate),
	}

	if due, err := time.Parse(forms.DateLayout, loan.ExpectedReturnDate); err == nil {
		details.Overdue = due.Before(now)
	}

	return details
}
