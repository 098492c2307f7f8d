// Package tree models JSON documents as a closed set of value kinds:
// translatable string leaves, opaque non-string scalars, arrays and
// insertion-ordered objects. Decoding and encoding round-trip a document
// without disturbing key order or the spelling of numbers.
package tree
