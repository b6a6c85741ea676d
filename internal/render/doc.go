// Package render produces standalone HTML documents from proposals and
// insights for local preview and export.
//
// Section content arrives as markdown from the backend and is converted with
// goldmark. The output is a single self-contained page with inline styles,
// suitable for opening in a browser or attaching to an email.
package render
