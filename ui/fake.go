package ui

import "sync"

// FieldState captures the validation feedback applied to a form field.
type FieldState struct {
	Valid   bool
	Message string
}

// FakeDocument is an in-memory Document implementation that records every
// widget interaction. Suitable for development and testing.
type FakeDocument struct {
	mu       sync.Mutex
	tables   map[string]*FakeTable
	forms    map[string]*FakeForm
	modals   map[string]*FakeModal
	selects  map[string]*FakeSelect
	loanInfo *FakeLoanInfo
}

// NewFakeDocument creates an empty fake page. Widgets are created lazily on
// first access so tests only deal with the widgets they exercise.
func NewFakeDocument() *FakeDocument {
	return &FakeDocument{
		tables:   make(map[string]*FakeTable),
		forms:    make(map[string]*FakeForm),
		modals:   make(map[string]*FakeModal),
		selects:  make(map[string]*FakeSelect),
		loanInfo: &FakeLoanInfo{},
	}
}

func (d *FakeDocument) Table(name string) Table {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, ok := d.tables[name]
	if !ok {
		t = &FakeTable{}
		d.tables[name] = t
	}
	return t
}

func (d *FakeDocument) Form(name string) Form {
	d.mu.Lock()
	defer d.mu.Unlock()
	f, ok := d.forms[name]
	if !ok {
		f = NewFakeForm(nil)
		d.forms[name] = f
	}
	return f
}

func (d *FakeDocument) Modal(name string) Modal {
	d.mu.Lock()
	defer d.mu.Unlock()
	m, ok := d.modals[name]
	if !ok {
		m = &FakeModal{}
		d.modals[name] = m
	}
	return m
}

func (d *FakeDocument) Select(name string) Select {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, ok := d.selects[name]
	if !ok {
		s = &FakeSelect{}
		d.selects[name] = s
	}
	return s
}

func (d *FakeDocument) LoanInfo() LoanInfoView {
	return d.loanInfo
}

// FakeTable accumulates rows and counts redraws.
type FakeTable struct {
	Options TableOptions
	Rows    []UserRow
	Clears  int
	Draws   int
}

func (t *FakeTable) Configure(opts TableOptions) { t.Options = opts }

func (t *FakeTable) Clear() {
	t.Rows = nil
	t.Clears++
}

func (t *FakeTable) Append(row UserRow) { t.Rows = append(t.Rows, row) }

func (t *FakeTable) Draw() { t.Draws++ }

// FakeForm holds settable input values and records validation feedback.
type FakeForm struct {
	values      map[string]string
	FieldStates map[string]FieldState
	Resets      int
	Clearings   int
}

func NewFakeForm(values map[string]string) *FakeForm {
	if values == nil {
		values = make(map[string]string)
	}
	return &FakeForm{
		values:      values,
		FieldStates: make(map[string]FieldState),
	}
}

// Set assigns an input value, standing in for the user typing.
func (f *FakeForm) Set(field, value string) {
	f.values[field] = value
}

func (f *FakeForm) Values() map[string]string {
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

func (f *FakeForm) SetFieldValid(field string) {
	f.FieldStates[field] = FieldState{Valid: true}
}

func (f *FakeForm) SetFieldInvalid(field, message string) {
	f.FieldStates[field] = FieldState{Valid: false, Message: message}
}

func (f *FakeForm) ClearValidation() {
	f.FieldStates = make(map[string]FieldState)
	f.Clearings++
}

func (f *FakeForm) Reset() {
	f.values = make(map[string]string)
	f.Resets++
}

// FakeModal tracks visibility transitions.
type FakeModal struct {
	Visible bool
	Shows   int
	Hides   int
}

func (m *FakeModal) Show() {
	m.Visible = true
	m.Shows++
}

func (m *FakeModal) Hide() {
	m.Visible = false
	m.Hides++
}

// FakeSelect records the last Fill call.
type FakeSelect struct {
	Placeholder string
	Options     []Option
	Fills       int
}

func (s *FakeSelect) Fill(placeholder string, options []Option) {
	s.Placeholder = placeholder
	s.Options = options
	s.Fills++
}

// FakeLoanInfo records rendered loan details.
type FakeLoanInfo struct {
	Last    *LoanDetails
	Renders int
}

func (v *FakeLoanInfo) Render(details LoanDetails) {
	d := details
	v.Last = &d
	v.Renders++
}
