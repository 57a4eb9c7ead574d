// Package pipeline implements the literate-source to HTML conversion stages.
//
// Data flows one way through the package:
//   - SplitLines cuts the normalized source into numbered lines
//   - Classify types each line using the comment positions reported by the
//     lexer package, so '#' inside string literals is never a marker
//   - Aggregate groups adjacent lines of one type into blocks
//   - Renderer highlights code blocks, formats comment blocks and executes
//     directive blocks against the document parameters
//   - Assembler fills the document template from the rendered fragments
//
// Process chains the first four stages. PDF rendering is handled by the
// root lit2html package with headless Chrome; ResolveLocalLinks prepares an
// assembled document for it.
package pipeline
