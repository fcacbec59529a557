package ui

// Logical widget names used by the controller. Concrete Document
// implementations map these to element identifiers via Bindings.
const (
	WidgetUsersTable    = "usersTable"
	WidgetUserForm      = "userForm"
	WidgetBookForm      = "bookForm"
	WidgetLoanForm      = "loanForm"
	WidgetUserModal     = "userModal"
	WidgetBookModal     = "bookModal"
	WidgetLoanModal     = "loanModal"
	WidgetLoanInfoModal = "loanInfoModal"
	WidgetLoanUserList  = "loanUserList"
	WidgetLoanBookList  = "loanBookList"
	WidgetLoanInfoView  = "loanInfoView"
	WidgetReturnButton  = "returnBookBtn"
)

// Bindings maps logical widget names to element identifiers.
// Resolved once at Document construction rather than scattered lookups.
type Bindings map[string]string

// DefaultBindings returns the element identifiers of the stock page layout.
func DefaultBindings() Bindings {
	return Bindings{
		WidgetUsersTable:    "usersTable",
		WidgetUserForm:      "userForm",
		WidgetBookForm:      "bookForm",
		WidgetLoanForm:      "loanForm",
		WidgetUserModal:     "userModal",
		WidgetBookModal:     "bookModal",
		WidgetLoanModal:     "loanModal",
		WidgetLoanInfoModal: "loanInfoModal",
		WidgetLoanUserList:  "loanUserId",
		WidgetLoanBookList:  "loanBookId",
		WidgetLoanInfoView:  "loanInfoContent",
		WidgetReturnButton:  "returnBookBtn",
	}
}

// ElementID resolves a logical widget name, falling back to the name itself
// for widgets without an explicit binding.
func (b Bindings) ElementID(widget string) string {
	if id, ok := b[widget]; ok {
		return id
	}
	return widget
}
