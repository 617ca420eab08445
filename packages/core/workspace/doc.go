// Package workspace reads and writes run configuration documents: the
// RunManager component of a project workspace file and shared .run/*.run.xml
// files. Only Karma configurations are surfaced; everything else in the
// document is kept as is.
package workspace
