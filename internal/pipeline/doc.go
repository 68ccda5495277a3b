// Package pipeline implements the conversation-to-HTML rendering pipeline.
//
// The package has two stages:
//   - Text transformation: raw turn text to an HTML fragment, either with
//     the InlineTransformer regex passes (strong, emphasis, paragraphs,
//     fenced code, links) or with the goldmark-based MarkdownTransformer
//   - Document assembly: records and turns laid out through the document
//     template, with role-specific containers and an optional inline image
//
// ResolveLocalLinks post-processes an assembled document for PDF output,
// where the page is loaded from a temp file and relative links would
// otherwise break.
//
// The stages are pure over their inputs. Reading log files, locating
// images and writing output are handled by the root chat2html package and
// the CLI.
package pipeline
