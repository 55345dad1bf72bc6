// Package watch regenerates generated artifacts while their sources change.
//
// Only skills_generate and memory_generate rules need watching; symlinked
// artifacts already reflect edits to their sources. Events are debounced so
// an editor's write-and-rename produces a single regeneration per tool.
package watch
