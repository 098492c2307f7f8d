// Package internal holds values shared by every jsonlingo package.
package internal

// Version is the current jsonlingo release.
const Version = "0.1.0"
