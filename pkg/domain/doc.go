/*
Package domain contains the core domain models and state logic for the
description editor.

It defines per-language documents, the editor state that holds them, and the
closed set of transition requests that mutate that state. This package is kept
pure and free of external dependencies like I/O or persistence, following
Hexagonal Architecture principles.

# Key Entities

  - Document: Per-language editable content (markup, stylesheet, assets, history).
  - EditorState: The full session snapshot (active language, UI mode, documents).
  - Request: A transition request consumed by Apply.
  - Apply: The pure, total transition function over EditorState.
*/
package domain
