package controller

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/a-la-firme/librarysystem/client"
	"github.com/a-la-firme/librarysystem/forms"
	"github.com/a-la-firme/librarysystem/notify"
	"github.com/a-la-firme/librarysystem/pkg/logger"
	"github.com/a-la-firme/librarysystem/ui"
)

// API is the slice of the library client the controller depends on.
// *client.Client satisfies it; tests substitute fakes.
type API interface {
	ListUsers(ctx context.Context) ([]client.User, error)
	ListAvailableBooks(ctx context.Context) ([]client.Book, error)
	CreateUser(ctx context.Context, params client.CreateUserParams) (*client.User, error)
	CreateBook(ctx context.Context, params client.CreateBookParams) (*client.Book, error)
	CreateLoan(ctx context.Context, userID, bookID int64) (*client.Loan, error)
	ReturnLoan(ctx context.Context, loanID int64) (*client.Loan, error)
}

// User-facing messages, matching the wording of the original page.
const (
	msgUserCreated  = "Usuario creado exitosamente"
	msgBookCreated  = "Libro creado exitosamente"
	msgLoanCreated  = "Préstamo creado exitosamente"
	msgBookReturned = "Libro devuelto exitosamente"

	msgUserCreateFailed = "Error al crear usuario"
	msgBookCreateFailed = "Error al crear libro"
	msgLoanCreateFailed = "Error al crear préstamo"
	msgReturnFailed     = "Error al devolver libro"

	msgConnectionFailed   = "Error de conexión"
	msgLoadUsersFailed    = "Error al cargar usuarios"
	msgLoadLoanInfoFailed = "Error al cargar información del préstamo"
	msgLoadLoanFormFailed = "Error al cargar datos del formulario"
	msgLoanNotFound       = "No se encontró información del préstamo"

	placeholderSelectUser = "Seleccionar usuario..."
	placeholderSelectBook = "Seleccionar libro..."
)

// Controller orchestrates the library page: it validates form input, issues
// API calls and keeps the users table in sync with server state by reloading
// the full list after every successful mutation.
//
// The controller is driven by page events and assumes the single-threaded,
// cooperative model of its host: methods are not safe for concurrent use.
type Controller struct {
	api       API
	doc       ui.Document
	alerts    *notify.Emitter
	log       *slog.Logger
	now       func() time.Time
	tableOpts ui.TableOptions

	// pendingLoanID is the loan shown in the loan-info dialog, target of the
	// return action. Last-writer-wins single slot, 0 means none.
	pendingLoanID int64
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger for the Controller.
func WithLogger(log *slog.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// WithClock replaces the time source used for overdue computation, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithTableOptions overrides the users-table display options.
func WithTableOptions(opts ui.TableOptions) Option {
	return func(c *Controller) {
		c.tableOpts = opts
	}
}

// New creates a page controller. All collaborators are injected; nothing is
// resolved from globals.
func New(api API, doc ui.Document, alerts *notify.Emitter, opts ...Option) *Controller {
	c := &Controller{
		api:    api,
		doc:    doc,
		alerts: alerts,
		log:    slog.Default(),
		now:    time.Now,
		tableOpts: ui.TableOptions{
			PageLength:    10,
			Responsive:    true,
			OrderColumn:   0,
			StaticColumns: []int{5, 6, 7},
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Init configures the users table and performs the initial load.
func (c *Controller) Init(ctx context.Context) error {
	c.doc.Table(ui.WidgetUsersTable).Configure(c.tableOpts)
	return c.LoadUsers(ctx)
}

// LoadUsers re-fetches the full user list and redraws the table from scratch.
// This is the single resynchronization path after every mutation; displayed
// state is never patched incrementally.
func (c *Controller) LoadUsers(ctx context.Context) error {
	users, err := c.api.ListUsers(ctx)
	if err != nil {
		c.log.LogAttrs(ctx, slog.LevelError, "failed to load users", logger.Error(err))
		c.alerts.Danger(msgLoadUsersFailed)
		return err
	}

	table := c.doc.Table(ui.WidgetUsersTable)
	table.Clear()
	for _, u := range users {
		table.Append(userRow(u))
	}
	table.Draw()

	return nil
}

// ValidateField validates a single field of a form and pushes inline
// feedback. This is the blur-time hook; submission re-runs the same rules.
func (c *Controller) ValidateField(formName, field string, kind forms.Kind) bool {
	return forms.ValidateField(c.doc.Form(formName), field, kind)
}

// SubmitUser validates the user form and creates the user. On success the
// form resets, the dialog closes and the table reloads once.
func (c *Controller) SubmitUser(ctx context.Context) {
	form := c.doc.Form(ui.WidgetUserForm)
	if !forms.Check(form, forms.UserForm) {
		return
	}

	values := form.Values()
	_, err := c.api.CreateUser(ctx, client.CreateUserParams{
		Name:  values["name"],
		Email: values["email"],
		Phone: values["phone"],
	})
	if err != nil {
		c.handleMutationError(ctx, err, form, msgUserCreateFailed)
		return
	}

	c.alerts.Success(msgUserCreated)
	form.Reset()
	form.ClearValidation()
	c.doc.Modal(ui.WidgetUserModal).Hide()
	_ = c.LoadUsers(ctx)
}

// SubmitBook validates the book form and adds the book to the catalog.
// The users table is untouched: books do not appear on it.
func (c *Controller) SubmitBook(ctx context.Context) {
	form := c.doc.Form(ui.WidgetBookForm)
	if !forms.Check(form, forms.BookForm) {
		return
	}

	values := form.Values()
	_, err := c.api.CreateBook(ctx, client.CreateBookParams{
		Title:           values["title"],
		Author:          values["author"],
		ISBN:            values["isbn"],
		Genre:           values["genre"],
		PublicationDate: values["publication_date"],
	})
	if err != nil {
		c.handleMutationError(ctx, err, form, msgBookCreateFailed)
		return
	}

	c.alerts.Success(msgBookCreated)
	form.Reset()
	form.ClearValidation()
	c.doc.Modal(ui.WidgetBookModal).Hide()
}

// OpenLoanForm populates the loan dialog's selection lists: active users
// without a current loan, and available books. Previous selections are
// discarded.
func (c *Controller) OpenLoanForm(ctx context.Context) {
	users, err := c.api.ListUsers(ctx)
	if err != nil {
		c.log.LogAttrs(ctx, slog.LevelError, "failed to load loan form data", logger.Error(err))
		c.alerts.Danger(msgLoadLoanFormFailed)
		return
	}

	books, err := c.api.ListAvailableBooks(ctx)
	if err != nil {
		c.log.LogAttrs(ctx, slog.LevelError, "failed to load loan form data", logger.Error(err))
		c.alerts.Danger(msgLoadLoanFormFailed)
		return
	}

	var userOpts []ui.Option
	for _, u := range users {
		if !u.Active || u.CurrentLoan != nil {
			continue
		}
		userOpts = append(userOpts, ui.Option{
			Value: strconv.FormatInt(u.ID, 10),
			Label: u.Name,
		})
	}

	var bookOpts []ui.Option
	for _, b := range books {
		bookOpts = append(bookOpts, ui.Option{
			Value: strconv.FormatInt(b.ID, 10),
			Label: b.Title + " - " + b.Author,
		})
	}

	c.doc.Select(ui.WidgetLoanUserList).Fill(placeholderSelectUser, userOpts)
	c.doc.Select(ui.WidgetLoanBookList).Fill(placeholderSelectBook, bookOpts)
}

// SubmitLoan creates a loan from the dialog's selections. An empty selection
// is flagged inline without a network call; the server still rejects users
// with an active loan and unavailable books, and those come back as field
// errors on the same channel.
func (c *Controller) SubmitLoan(ctx context.Context) {
	form := c.doc.Form(ui.WidgetLoanForm)
	values := form.Values()

	userID, userErr := strconv.ParseInt(values["user_id"], 10, 64)
	bookID, bookErr := strconv.ParseInt(values["book_id"], 10, 64)
	if userErr != nil || bookErr != nil {
		if userErr != nil {
			form.SetFieldInvalid("user_id", msgRequired)
		}
		if bookErr != nil {
			form.SetFieldInvalid("book_id", msgRequired)
		}
		return
	}

	_, err := c.api.CreateLoan(ctx, userID, bookID)
	if err != nil {
		c.handleMutationError(ctx, err, form, msgLoanCreateFailed)
		return
	}

	c.alerts.Success(msgLoanCreated)
	form.Reset()
	form.ClearValidation()
	c.doc.Modal(ui.WidgetLoanModal).Hide()
	_ = c.LoadUsers(ctx)
}

// ShowLoanInfo opens the loan-info dialog for the given user. There is no
// single-record endpoint, so the full user list is re-fetched and the user
// located in it; this also guarantees the dialog shows current server state.
func (c *Controller) ShowLoanInfo(ctx context.Context, userID int64) {
	users, err := c.api.ListUsers(ctx)
	if err != nil {
		c.log.LogAttrs(ctx, slog.LevelError, "failed to load loan info",
			logger.UserID(userID), logger.Error(err))
		c.alerts.Danger(msgLoadLoanInfoFailed)
		return
	}

	var user *client.User
	for i := range users {
		if users[i].ID == userID {
			user = &users[i]
			break
		}
	}

	if user == nil || user.CurrentLoan == nil {
		c.alerts.Warning(msgLoanNotFound)
		return
	}

	c.doc.LoanInfo().Render(loanDetails(user.Name, *user.CurrentLoan, c.now()))
	c.pendingLoanID = user.CurrentLoan.LoanID
	c.doc.Modal(ui.WidgetLoanInfoModal).Show()
}

// PendingLoanID returns the loan currently targeted by the return action,
// or 0 when none is set.
func (c *Controller) PendingLoanID() int64 {
	return c.pendingLoanID
}

// ReturnBook returns the loan remembered by the last ShowLoanInfo call.
// Without a pending loan this is a no-op: no network call is made. On
// failure the dialog stays open so the user can retry.
func (c *Controller) ReturnBook(ctx context.Context) {
	if c.pendingLoanID == 0 {
		return
	}

	_, err := c.api.ReturnLoan(ctx, c.pendingLoanID)
	if err != nil {
		c.log.LogAttrs(ctx, slog.LevelError, "failed to return book",
			logger.LoanID(c.pendingLoanID), logger.Error(err))
		apiErr := client.AsError(err)
		switch {
		case apiErr != nil && apiErr.Message != "":
			c.alerts.Danger(apiErr.Message)
		case apiErr != nil:
			c.alerts.Danger(msgReturnFailed)
		default:
			c.alerts.Danger(msgConnectionFailed)
		}
		return
	}

	c.alerts.Success(msgBookReturned)
	c.doc.Modal(ui.WidgetLoanInfoModal).Hide()
	_ = c.LoadUsers(ctx)
}

// handleMutationError routes a failed create call: field-level server errors
// go back onto the form inline, general server errors and transport failures
// become notifications. The dialog stays open and no reload happens.
func (c *Controller) handleMutationError(ctx context.Context, err error, form ui.Form, fallback string) {
	c.log.LogAttrs(ctx, slog.LevelError, "mutation failed", logger.Error(err))

	apiErr := client.AsError(err)
	switch {
	case apiErr != nil && apiErr.HasFieldErrors():
		forms.ApplyServerErrors(form, apiErr.Fields)
	case apiErr != nil && apiErr.Message != "":
		c.alerts.Danger(apiErr.Message)
	case apiErr != nil:
		c.alerts.Danger(fallback)
	default:
		c.alerts.Danger(msgConnectionFailed)
	}
}

// msgRequired mirrors the forms package message for the loan selects, which
// have no Kind of their own.
const msgRequired = "Este campo es obligatorio"
