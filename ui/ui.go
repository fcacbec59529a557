package ui

// Option is a single entry in a selection list.
type Option struct {
	Value string
	Label string
}

// UserRow is the display model for one row of the users table.
// Date fields arrive pre-formatted; the table renders values verbatim.
type UserRow struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	RegisteredAt string
	Active       bool
	LoanTitle    string // placeholder text when the user has no current loan
	LoanID       int64  // 0 when the user has no current loan
}

// HasLoan reports whether the row should offer the view-loan action.
func (r UserRow) HasLoan() bool {
	return r.LoanID != 0
}

// LoanDetails is the display model for the loan-info dialog.
type LoanDetails struct {
	UserName       string
	BookTitle      string
	BookAuthor     string
	LoanDate       string
	ExpectedReturn string
	Overdue        bool
}

// TableOptions configures the table widget at initialization.
type TableOptions struct {
	PageLength      int
	Responsive      bool
	OrderColumn     int
	OrderDescending bool
	StaticColumns   []int // column indexes excluded from user sorting
}

// Table is the users-table widget. Rows are replaced wholesale: callers Clear,
// Append every row, then Draw once.
type Table interface {
	Configure(TableOptions)
	Clear()
	Append(UserRow)
	Draw()
}

// Form is a create-form widget with per-field validation feedback.
type Form interface {
	// Values returns the current input values keyed by field name.
	Values() map[string]string

	// SetFieldValid marks the field visually valid and clears any prior message.
	SetFieldValid(field string)

	// SetFieldInvalid marks the field visually invalid with an inline message.
	SetFieldInvalid(field, message string)

	// ClearValidation removes validation state from every field.
	ClearValidation()

	// Reset restores every field to its initial empty value.
	Reset()
}

// Modal is a dialog widget.
type Modal interface {
	Show()
	Hide()
}

// Select is a single-choice selection list.
type Select interface {
	// Fill replaces all options with a leading placeholder entry (empty value)
	// followed by the given options, discarding any previous selection.
	Fill(placeholder string, options []Option)
}

// LoanInfoView renders the loan-info dialog content.
type LoanInfoView interface {
	Render(LoanDetails)
}

// Document is the page adapter. Widgets are addressed by logical name; the
// concrete implementation resolves names to elements once at construction
// using a Bindings map.
type Document interface {
	Table(name string) Table
	Form(name string) Form
	Modal(name string) Modal
	Select(name string) Select
	LoanInfo() LoanInfoView
}
