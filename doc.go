// Package librarysystem assembles the front-end controller for the library
// management page: a users table kept in sync with server state, three
// create forms with inline validation, loan dialogs and transient alerts.
//
// The page supplies two adapters, a ui.Document wrapping its widgets and a
// notify.Presenter for the alert surface, and receives a fully wired
// controller back:
//
//	cfg, err := librarysystem.LoadConfig()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	app := librarysystem.New(cfg, doc, presenter)
//	defer app.Close()
//
//	if err := app.Controller.Init(ctx); err != nil {
//	    // page stays interactive, error already surfaced as an alert
//	}
package librarysystem
