// Package karma holds the Karma run settings model and its XML form.
//
// RunSettings is an immutable value built with a Builder. ReadXML and WriteXML
// convert it to and from the option-based element layout used by run
// configuration documents. Fields equal to their defaults are omitted on
// write and restored on read, so the stored form stays minimal.
package karma
