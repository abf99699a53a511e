// SPDX-License-Identifier: MPL-2.0

// Package gfa embeds FHR headers into assembly-graph (GFA) files and strips them out again.
//
// A combined file is the graph-carrier rendering of the header (lines starting with "#~")
// followed by the original body, byte for byte. Stripping removes every line whose first
// two bytes are the marker; a marker anywhere else on a line is left alone. For any header
// h and marker-free body b, stripping Combine(h, b) yields b exactly.
package gfa
