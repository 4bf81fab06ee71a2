// Package api is the client's HTTP plumbing toward the SchoolDesk backend.
//
// Every call made through Client passes the same stages in order:
//
//  1. Augmenter adds "Authorization: Bearer <token>" unless the target is the
//     login or registration endpoint.
//  2. LoggingTransport tags the request with an X-Request-ID and logs it.
//  3. FaultHandler inspects the response. A 401 from anything other than
//     login/registration ends the session and sends the user to the login
//     page. Every failure surfaces as a single *Error with one message.
package api
