// Package prefs persists the last successfully loaded directory across
// runs. The on-disk format is one plain-text file containing the absolute
// path; loading validates the path still names a readable directory and
// silently starts fresh otherwise.
package prefs
