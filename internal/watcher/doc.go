// Package watcher re-runs work when input files change on disk.
//
// The Watcher subscribes to the parent directories of the files it is
// given rather than the files themselves, because most editors save by
// writing a temporary file and renaming it over the original, which drops
// a watch placed directly on the file. Events for unrelated siblings are
// filtered out.
//
// Bursts of events (an editor typically emits several per save) are
// collapsed: the callback runs once the directory has been quiet for the
// debounce interval. Callbacks never overlap.
package watcher
