// Package nodejs models the Node.js collaborators of a Karma run: a reference
// to the interpreter that executes Karma and the location of the installed
// karma package.
package nodejs
