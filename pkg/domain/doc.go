/*
Package domain contains the core models of the form layout service.

It is kept free of I/O and persistence so every adapter (file, Redis, HTTP, MCP)
can share the same types.

# Key Entities

  - Field: a single input, identified by its key, with its validation rules.
  - Form: an ordered list of fields plus the pair rules used to lay them out.
  - Layout: the grouped rendering order of a form.
  - Group: fields rendered together, either paired by a rule or alone.
*/
package domain
