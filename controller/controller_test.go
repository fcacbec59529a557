package controller_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a-la-firme/librarysystem/client"
	"github.com/a-la-firme/librarysystem/controller"
	"github.com/a-la-firme/librarysystem/forms"
	"github.com/a-la-firme/librarysystem/notify"
	"github.com/a-la-firme/librarysystem/ui"
)

// fakeAPI implements controller.API with programmable responses and call
// counters.
type fakeAPI struct {
	users    []client.User
	listErr  error
	books    []client.Book
	booksErr error

	createUserFn func(client.CreateUserParams) (*client.User, error)
	createBookFn func(client.CreateBookParams) (*client.Book, error)
	createLoanFn func(userID, bookID int64) (*client.Loan, error)
	returnLoanFn func(loanID int64) (*client.Loan, error)

	listCalls       int
	createUserCalls int
	createBookCalls int
	createLoanCalls int
	returnLoanCalls int
}

func (f *fakeAPI) ListUsers(ctx context.Context) ([]client.User, error) {
	f.listCalls++
	return f.users, f.listErr
}

func (f *fakeAPI) ListAvailableBooks(ctx context.Context) ([]client.Book, error) {
	return f.books, f.booksErr
}

func (f *fakeAPI) CreateUser(ctx context.Context, params client.CreateUserParams) (*client.User, error) {
	f.createUserCalls++
	if f.createUserFn != nil {
		return f.createUserFn(params)
	}
	return &client.User{ID: 99, Name: params.Name}, nil
}

func (f *fakeAPI) CreateBook(ctx context.Context, params client.CreateBookParams) (*client.Book, error) {
	f.createBookCalls++
	if f.createBookFn != nil {
		return f.createBookFn(params)
	}
	return &client.Book{ID: 99, Title: params.Title}, nil
}

func (f *fakeAPI) CreateLoan(ctx context.Context, userID, bookID int64) (*client.Loan, error) {
	f.createLoanCalls++
	if f.createLoanFn != nil {
		return f.createLoanFn(userID, bookID)
	}
	return &client.Loan{ID: 99, UserID: userID, BookID: bookID, Status: client.LoanStatusActive}, nil
}

func (f *fakeAPI) ReturnLoan(ctx context.Context, loanID int64) (*client.Loan, error) {
	f.returnLoanCalls++
	if f.returnLoanFn != nil {
		return f.returnLoanFn(loanID)
	}
	return &client.Loan{ID: loanID, Status: client.LoanStatusReturned}, nil
}

type fixture struct {
	api       *fakeAPI
	doc       *ui.FakeDocument
	presenter *notify.MemoryPresenter
	ctrl      *controller.Controller
}

// clock fixed at 2026-08-30 so overdue computations are deterministic.
var testNow = time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

func newFixture(t *testing.T, api *fakeAPI) *fixture {
	t.Helper()

	doc := ui.NewFakeDocument()
	presenter := notify.NewMemoryPresenter()
	alerts := notify.New(presenter,
		notify.WithScheduler(func(d time.Duration, fn func()) func() {
			return func() {}
		}),
	)
	t.Cleanup(func() { _ = alerts.Close() })

	ctrl := controller.New(api, doc, alerts,
		controller.WithClock(func() time.Time { return testNow }),
	)

	return &fixture{api: api, doc: doc, presenter: presenter, ctrl: ctrl}
}

func (f *fixture) form(name string) *ui.FakeForm {
	return f.doc.Form(name).(*ui.FakeForm)
}

func (f *fixture) modal(name string) *ui.FakeModal {
	return f.doc.Modal(name).(*ui.FakeModal)
}

func (f *fixture) table() *ui.FakeTable {
	return f.doc.Table(ui.WidgetUsersTable).(*ui.FakeTable)
}

func (f *fixture) lastAlert(t *testing.T) notify.Alert {
	t.Helper()
	last := f.presenter.Last()
	require.NotNil(t, last, "expected an alert to be shown")
	return *last
}

func someUsers() []client.User {
	return []client.User{
		{
			ID: 1, Name: "Ana Pérez", Email: "ana@example.com", Phone: "555123456",
			RegistrationDate: "2024-01-15", Active: true,
		},
		{
			ID: 2, Name: "Luis Gómez", Email: "luis@example.com", Phone: "555654321",
			RegistrationDate: "2024-02-20", Active: true,
			CurrentLoan: &client.CurrentLoan{
				LoanID: 7, BookTitle: "Rayuela", BookAuthor: "Julio Cortázar",
				LoanDate: "2026-08-01", ExpectedReturnDate: "2026-08-15",
			},
		},
		{
			ID: 3, Name: "Marta Ruiz", Email: "marta@example.com", Phone: "555999888",
			RegistrationDate: "2023-11-05", Active: false,
		},
	}
}

func TestInit(t *testing.T) {
	t.Parallel()

	f := newFixture(t, &fakeAPI{users: someUsers()})
	require.NoError(t, f.ctrl.Init(context.Background()))

	table := f.table()
	assert.Equal(t, 10, table.Options.PageLength)
	assert.Equal(t, []int{5, 6, 7}, table.Options.StaticColumns)
	assert.Len(t, table.Rows, 3)
}

func TestLoadUsers(t *testing.T) {
	t.Parallel()

	t.Run("renders one row per user", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, &fakeAPI{users: someUsers()})
		require.NoError(t, f.ctrl.LoadUsers(context.Background()))

		table := f.table()
		require.Len(t, table.Rows, 3)
		assert.Equal(t, 1, table.Clears)
		assert.Equal(t, 1, table.Draws)

		noLoan := table.Rows[0]
		assert.Equal(t, "Ana Pérez", noLoan.Name)
		assert.Equal(t, "15/01/2024", noLoan.RegisteredAt)
		assert.True(t, noLoan.Active)
		assert.Equal(t, "Sin préstamo", noLoan.LoanTitle)
		assert.False(t, noLoan.HasLoan())

		withLoan := table.Rows[1]
		assert.Equal(t, "Rayuela", withLoan.LoanTitle)
		assert.Equal(t, int64(7), withLoan.LoanID)
		assert.True(t, withLoan.HasLoan())

		inactive := table.Rows[2]
		assert.False(t, inactive.Active)
	})

	t.Run("failure shows a notification and leaves the table alone", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, &fakeAPI{listErr: fmt.Errorf("%w: refused", client.ErrConnection)})
		require.Error(t, f.ctrl.LoadUsers(context.Background()))

		assert.Equal(t, "Error al cargar usuarios", f.lastAlert(t).Message)
		assert.Equal(t, notify.LevelDanger, f.lastAlert(t).Level)
		assert.Zero(t, f.table().Draws)
	})
}

func TestSubmitUser(t *testing.T) {
	t.Parallel()

	t.Run("success reloads the table exactly once", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, &fakeAPI{users: someUsers()})
		form := f.form(ui.WidgetUserForm)
		form.Set("name", "Eva Torres")
		form.Set("email", "eva@example.com")
		form.Set("phone", "555000111")

		f.ctrl.SubmitUser(context.Background())

		assert.Equal(t, 1, f.api.createUserCalls)
		assert.Equal(t, 1, f.api.listCalls, "table reload is triggered exactly once")
		assert.Equal(t, "Usuario creado exitosamente", f.lastAlert(t).Message)
		assert.Equal(t, notify.LevelSuccess, f.lastAlert(t).Level)
		assert.Equal(t, 1, form.Resets)
		assert.Equal(t, 1, form.Clearings)
		assert.Equal(t, 1, f.modal(ui.WidgetUserModal).Hides)
	})

	t.Run("local validation failure blocks the network call", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, &fakeAPI{})
		form := f.form(ui.WidgetUserForm)
		form.Set("name", "Jo")
		form.Set("email", "bad")
		form.Set("phone", "123")

		f.ctrl.SubmitUser(context.Background())

		assert.Zero(t, f.api.createUserCalls, "no network call issued")
		assert.Zero(t, f.api.listCalls)

		// Two characters satisfy the name minimum; email and phone fail.
		assert.True(t, form.FieldStates["name"].Valid)
		assert.Equal(t, "Email inválido", form.FieldStates["email"].Message)
		assert.Equal(t, "Mínimo 8 caracteres", form.FieldStates["phone"].Message)
	})

	t.Run("server field errors map back onto the form", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{
			createUserFn: func(client.CreateUserParams) (*client.User, error) {
				return nil, &client.Error{
					Status: 409,
					Fields: map[string][]string{"email": {"El email ya está registrado"}},
				}
			},
		}
		f := newFixture(t, api)
		form := f.form(ui.WidgetUserForm)
		form.Set("name", "Eva Torres")
		form.Set("email", "taken@example.com")
		form.Set("phone", "555000111")

		f.ctrl.SubmitUser(context.Background())

		assert.Equal(t, "El email ya está registrado", form.FieldStates["email"].Message)
		assert.Zero(t, f.api.listCalls, "no reload on failure")
		assert.Zero(t, f.modal(ui.WidgetUserModal).Hides, "dialog stays open")
		assert.Nil(t, f.presenter.Last(), "field errors show inline, not as a toast")
	})

	t.Run("transport failure shows the connection message", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{
			createUserFn: func(client.CreateUserParams) (*client.User, error) {
				return nil, fmt.Errorf("%w: timeout", client.ErrConnection)
			},
		}
		f := newFixture(t, api)
		form := f.form(ui.WidgetUserForm)
		form.Set("name", "Eva Torres")
		form.Set("email", "eva@example.com")
		form.Set("phone", "555000111")

		f.ctrl.SubmitUser(context.Background())

		assert.Equal(t, "Error de conexión", f.lastAlert(t).Message)
	})

	t.Run("general server error without message falls back", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{
			createUserFn: func(client.CreateUserParams) (*client.User, error) {
				return nil, &client.Error{Status: 500}
			},
		}
		f := newFixture(t, api)
		form := f.form(ui.WidgetUserForm)
		form.Set("name", "Eva Torres")
		form.Set("email", "eva@example.com")
		form.Set("phone", "555000111")

		f.ctrl.SubmitUser(context.Background())

		assert.Equal(t, "Error al crear usuario", f.lastAlert(t).Message)
	})
}

func TestSubmitBook(t *testing.T) {
	t.Parallel()

	t.Run("success closes the dialog without touching the user table", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, &fakeAPI{})
		form := f.form(ui.WidgetBookForm)
		form.Set("title", "Ficciones")
		form.Set("author", "Jorge Luis Borges")
		form.Set("isbn", "9780802130303")
		form.Set("genre", "Cuento")
		form.Set("publication_date", "1944-01-01")

		f.ctrl.SubmitBook(context.Background())

		assert.Equal(t, 1, f.api.createBookCalls)
		assert.Zero(t, f.api.listCalls, "books do not appear on the users table")
		assert.Equal(t, "Libro creado exitosamente", f.lastAlert(t).Message)
		assert.Equal(t, 1, f.modal(ui.WidgetBookModal).Hides)
	})

	t.Run("future publication date blocks submission", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, &fakeAPI{})
		form := f.form(ui.WidgetBookForm)
		form.Set("title", "Ficciones")
		form.Set("author", "Jorge Luis Borges")
		form.Set("isbn", "9780802130303")
		form.Set("genre", "Cuento")
		form.Set("publication_date", time.Now().AddDate(1, 0, 0).Format(forms.DateLayout))

		f.ctrl.SubmitBook(context.Background())

		assert.Zero(t, f.api.createBookCalls)
		assert.Equal(t, "La fecha no puede ser futura", form.FieldStates["publication_date"].Message)
	})
}

func TestOpenLoanForm(t *testing.T) {
	t.Parallel()

	t.Run("offers only active users without a loan and available books", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{
			users: someUsers(),
			books: []client.Book{
				{ID: 11, Title: "Ficciones", Author: "Jorge Luis Borges", Available: true},
			},
		}
		f := newFixture(t, api)

		f.ctrl.OpenLoanForm(context.Background())

		userSel := f.doc.Select(ui.WidgetLoanUserList).(*ui.FakeSelect)
		assert.Equal(t, "Seleccionar usuario...", userSel.Placeholder)
		// Luis has a loan and Marta is inactive; only Ana qualifies.
		require.Len(t, userSel.Options, 1)
		assert.Equal(t, ui.Option{Value: "1", Label: "Ana Pérez"}, userSel.Options[0])

		bookSel := f.doc.Select(ui.WidgetLoanBookList).(*ui.FakeSelect)
		assert.Equal(t, "Seleccionar libro...", bookSel.Placeholder)
		require.Len(t, bookSel.Options, 1)
		assert.Equal(t, "Ficciones - Jorge Luis Borges", bookSel.Options[0].Label)
	})

	t.Run("failure shows a notification", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, &fakeAPI{booksErr: errors.New("boom"), users: someUsers()})
		f.ctrl.OpenLoanForm(context.Background())
		assert.Equal(t, "Error al cargar datos del formulario", f.lastAlert(t).Message)
	})
}

func TestSubmitLoan(t *testing.T) {
	t.Parallel()

	t.Run("success closes the dialog and reloads", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, &fakeAPI{users: someUsers()})
		form := f.form(ui.WidgetLoanForm)
		form.Set("user_id", "1")
		form.Set("book_id", "11")

		f.ctrl.SubmitLoan(context.Background())

		assert.Equal(t, 1, f.api.createLoanCalls)
		assert.Equal(t, 1, f.api.listCalls)
		assert.Equal(t, "Préstamo creado exitosamente", f.lastAlert(t).Message)
		assert.Equal(t, 1, f.modal(ui.WidgetLoanModal).Hides)
	})

	t.Run("empty selections are flagged without a network call", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, &fakeAPI{})
		form := f.form(ui.WidgetLoanForm)
		form.Set("user_id", "")
		form.Set("book_id", "")

		f.ctrl.SubmitLoan(context.Background())

		assert.Zero(t, f.api.createLoanCalls)
		assert.Equal(t, "Este campo es obligatorio", form.FieldStates["user_id"].Message)
		assert.Equal(t, "Este campo es obligatorio", form.FieldStates["book_id"].Message)
	})

	t.Run("conflict with a general message shows that exact text", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{
			users: someUsers(),
			createLoanFn: func(int64, int64) (*client.Loan, error) {
				return nil, &client.Error{Status: 409, Message: "Book not available"}
			},
		}
		f := newFixture(t, api)
		form := f.form(ui.WidgetLoanForm)
		form.Set("user_id", "1")
		form.Set("book_id", "11")

		f.ctrl.SubmitLoan(context.Background())

		assert.Equal(t, "Book not available", f.lastAlert(t).Message)
		assert.Equal(t, notify.LevelDanger, f.lastAlert(t).Level)
		assert.Zero(t, f.modal(ui.WidgetLoanModal).Hides, "dialog remains open")
		assert.Zero(t, f.api.listCalls, "no reload triggered")
	})

	t.Run("conflict with field errors maps onto the form", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{
			createLoanFn: func(int64, int64) (*client.Loan, error) {
				return nil, &client.Error{
					Status: 409,
					Fields: map[string][]string{"user_id": {"El usuario ya tiene un libro prestado"}},
				}
			},
		}
		f := newFixture(t, api)
		form := f.form(ui.WidgetLoanForm)
		form.Set("user_id", "2")
		form.Set("book_id", "11")

		f.ctrl.SubmitLoan(context.Background())

		assert.Equal(t, "El usuario ya tiene un libro prestado", form.FieldStates["user_id"].Message)
	})
}

func TestShowLoanInfo(t *testing.T) {
	t.Parallel()

	t.Run("overdue loan renders the warning", func(t *testing.T) {
		t.Parallel()

		// Expected return 2026-08-15 is before the fixed clock (2026-08-30).
		f := newFixture(t, &fakeAPI{users: someUsers()})
		f.ctrl.ShowLoanInfo(context.Background(), 2)

		view := f.doc.LoanInfo().(*ui.FakeLoanInfo)
		require.NotNil(t, view.Last)
		assert.True(t, view.Last.Overdue)
		assert.Equal(t, "Luis Gómez", view.Last.UserName)
		assert.Equal(t, "Rayuela", view.Last.BookTitle)
		assert.Equal(t, "Julio Cortázar", view.Last.BookAuthor)
		assert.Equal(t, "01/08/2026", view.Last.LoanDate)
		assert.Equal(t, "15/08/2026", view.Last.ExpectedReturn)

		assert.Equal(t, int64(7), f.ctrl.PendingLoanID())
		assert.Equal(t, 1, f.modal(ui.WidgetLoanInfoModal).Shows)
	})

	t.Run("future return date is not overdue", func(t *testing.T) {
		t.Parallel()

		users := someUsers()
		users[1].CurrentLoan.ExpectedReturnDate = "2026-09-15"
		f := newFixture(t, &fakeAPI{users: users})

		f.ctrl.ShowLoanInfo(context.Background(), 2)

		view := f.doc.LoanInfo().(*ui.FakeLoanInfo)
		require.NotNil(t, view.Last)
		assert.False(t, view.Last.Overdue)
	})

	t.Run("user without a loan yields a warning", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, &fakeAPI{users: someUsers()})
		f.ctrl.ShowLoanInfo(context.Background(), 1)

		assert.Equal(t, "No se encontró información del préstamo", f.lastAlert(t).Message)
		assert.Equal(t, notify.LevelWarning, f.lastAlert(t).Level)
		assert.Zero(t, f.modal(ui.WidgetLoanInfoModal).Shows)
		assert.Zero(t, f.ctrl.PendingLoanID())
	})

	t.Run("unknown user yields the same warning", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, &fakeAPI{users: someUsers()})
		f.ctrl.ShowLoanInfo(context.Background(), 42)
		assert.Equal(t, "No se encontró información del préstamo", f.lastAlert(t).Message)
	})

	t.Run("a later open overwrites the pending loan id", func(t *testing.T) {
		t.Parallel()

		users := someUsers()
		users[0].CurrentLoan = &client.CurrentLoan{
			LoanID: 9, BookTitle: "Ficciones", BookAuthor: "Jorge Luis Borges",
			LoanDate: "2026-08-20", ExpectedReturnDate: "2026-09-03",
		}
		f := newFixture(t, &fakeAPI{users: users})

		f.ctrl.ShowLoanInfo(context.Background(), 2)
		assert.Equal(t, int64(7), f.ctrl.PendingLoanID())

		f.ctrl.ShowLoanInfo(context.Background(), 1)
		assert.Equal(t, int64(9), f.ctrl.PendingLoanID())
	})
}

func TestReturnBook(t *testing.T) {
	t.Parallel()

	t.Run("no pending loan is a silent no-op", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, &fakeAPI{})
		f.ctrl.ReturnBook(context.Background())

		assert.Zero(t, f.api.returnLoanCalls, "no network call performed")
		assert.Nil(t, f.presenter.Last())
	})

	t.Run("success closes the dialog and reloads", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, &fakeAPI{users: someUsers()})
		f.ctrl.ShowLoanInfo(context.Background(), 2)
		require.Equal(t, int64(7), f.ctrl.PendingLoanID())
		listCallsBefore := f.api.listCalls

		f.ctrl.ReturnBook(context.Background())

		assert.Equal(t, 1, f.api.returnLoanCalls)
		assert.Equal(t, "Libro devuelto exitosamente", f.lastAlert(t).Message)
		assert.Equal(t, 1, f.modal(ui.WidgetLoanInfoModal).Hides)
		assert.Equal(t, listCallsBefore+1, f.api.listCalls)
	})

	t.Run("transport failure shows the connection message", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{
			users: someUsers(),
			returnLoanFn: func(int64) (*client.Loan, error) {
				return nil, fmt.Errorf("%w: timeout", client.ErrConnection)
			},
		}
		f := newFixture(t, api)
		f.ctrl.ShowLoanInfo(context.Background(), 2)

		f.ctrl.ReturnBook(context.Background())

		assert.Equal(t, "Error de conexión", f.lastAlert(t).Message)
		assert.Zero(t, f.modal(ui.WidgetLoanInfoModal).Hides, "dialog remains open")
	})

	t.Run("failure keeps the dialog open", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{
			users: someUsers(),
			returnLoanFn: func(int64) (*client.Loan, error) {
				return nil, &client.Error{Status: 409, Message: "El libro ya fue devuelto"}
			},
		}
		f := newFixture(t, api)
		f.ctrl.ShowLoanInfo(context.Background(), 2)
		listCallsBefore := f.api.listCalls

		f.ctrl.ReturnBook(context.Background())

		assert.Equal(t, "El libro ya fue devuelto", f.lastAlert(t).Message)
		assert.Zero(t, f.modal(ui.WidgetLoanInfoModal).Hides)
		assert.Equal(t, listCallsBefore, f.api.listCalls, "no reload on failure")
	})
}

func TestValidateField(t *testing.T) {
	t.Parallel()

	f := newFixture(t, &fakeAPI{})
	form := f.form(ui.WidgetBookForm)
	form.Set("isbn", "123")

	assert.False(t, f.ctrl.ValidateField(ui.WidgetBookForm, "isbn", forms.KindISBN))
	assert.Equal(t, "ISBN debe tener entre 10 y 13 caracteres", form.FieldStates["isbn"].Message)

	form.Set("isbn", "1234567890")
	assert.True(t, f.ctrl.ValidateField(ui.WidgetBookForm, "isbn", forms.KindISBN))
	assert.True(t, form.FieldStates["isbn"].Valid)
}
