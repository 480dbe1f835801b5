// Package render holds exporters that turn procedure graphs into formats
// for external diagram tools.
//
// The [nodelink] subpackage writes Graphviz DOT source, with states as
// boxes and events as ellipses, for use with dot(1) or any DOT viewer.
//
// [nodelink]: github.com/matzehuels/procflow/pkg/render/nodelink
package render
