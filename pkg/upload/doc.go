// Package upload wraps multipart file headers with a nil-safe accessor
// surface for handler code.
//
// Handlers frequently branch on whether a form field carried a file.
// [File] makes the absent case a first-class value: lookups that find
// nothing return [Empty] rather than nil, so chained calls like
//
//	name := req.File("avatar").Filename()
//
// are safe regardless of what the client sent. Presence is checked with
// Exists; content is read through Open or Bytes; ContentType detects the
// MIME type from magic bytes rather than trusting the client header.
package upload
