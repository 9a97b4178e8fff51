// Package forms holds the login, registration and password-reset form
// controllers.
//
// Each controller owns a State: field values, per-field validation errors,
// one server-level error, an informational notice and a busy flag. Submit
// validates synchronously; when validation fails no request is sent and the
// busy flag is never raised. Otherwise the controller raises busy, calls the
// auth gateway, applies the outcome and lowers busy on every exit path.
//
// Outcome rules:
//
//   - Login success persists the session and navigates to the dashboard.
//   - Register success navigates to login without creating a session.
//   - Password-reset success shows the confirmation as the notice.
//   - Any gateway error becomes the server error; field errors are kept.
package forms
