// Package cli provides the interactive drivequiz command-line client.
//
// It wires configuration, local storage, the API client, the session and
// the quiz engine, and runs a REPL. The REPL keeps a current location, one
// of the views known to the guard package; every command bound to a
// protected view goes through the route guard first, and a 401 from any
// request sends the user back to /login.
//
// Typical flow: restore a stored session, start the online status watcher,
// then read commands until exit. See App.Run and runREPL.
package cli
