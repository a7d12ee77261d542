/*
Package ports defines the driven ports (interfaces) of the layout engine.

These interfaces decouple the core logic from external implementations, allowing
the engine to read forms from files or memory and to cache layouts in Redis or memory.

# Key Interfaces

  - FormLoader: Responsible for loading Form definitions (e.g., from a directory or memory).
  - LayoutCache: Responsible for storing computed layouts between requests.
*/
package ports
