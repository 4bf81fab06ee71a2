// Package cli provides the interactive SchoolDesk terminal client.
//
// It wires configuration, the local session store, the session service for
// the configured auth mode, the REST client and the route table, then runs a
// REPL. Typical flow: open a page, get sent to the login page, sign in, land
// on the page for your role.
//
// Commands:
//   - help                 show available commands
//   - login / register     sign in or create an account
//   - logout               sign out
//   - whoami               show the signed-in user
//   - open <path>          navigate, running the route gates
//   - where                show the current location
//   - get <endpoint> [k=v] call a GET endpoint and print the JSON reply
//   - reset <email>        request a password reset (provider mode)
//   - exit | quit          leave the program
//
// Sign-in and sign-out are announced as they happen, including the forced
// sign-out that follows a rejected credential.
package cli
