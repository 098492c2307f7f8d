// Package engine is the concurrent, structure-preserving translation
// core. It recursively fans out one sub-task per translatable child of
// every container node, awaits them all, and rebuilds a tree identical in
// shape to the input with string leaves replaced by their translations.
// A single Gate bounds the number of in-flight backend calls across the
// entire batch, and the first failure anywhere cancels the rest of the
// run.
package engine
