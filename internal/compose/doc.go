// Package compose assembles the output document from its fragments.
//
// A conversion renders the Markdown blocks into a content-stripped theme
// package. SectionBuffer then splits that package into a buffer section and
// the Body Section, TOCSynthesizer puts the table of contents field at the
// start of the Body Section, and Composer appends the result to the Cover
// and appends the End after it.
//
// Every package handled here is owned by a single conversion.
package compose
