// Package dfdoc turns schema definition dumps (.df files) into HTML pages,
// an XML document, a SQLite catalog, or an interactive terminal view.
package dfdoc

// Version is the current dfdoc release.
const Version = "0.3.0"
