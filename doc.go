/*
Package desceditor is the embeddable core of a multi-language description
editor: per-language document state, bounded edit history, and a
synchronization bridge to an external host process that owns durable
storage.

The Editor facade is the narrow external API for embedding callers. Every
write funnels through the pure transition function in pkg/domain, so no
caller can observe a partially applied state.

Two operating modes are mutually exclusive:

  - Standalone: a ports.StateStore (typically the file adapter) is the
    durable backing, refreshed by a fixed-interval autosave pulse and an
    explicit SaveNow.
  - Hosted: a session ID plus a ports.HostClient delegate durability to the
    host; state is fetched once at boot and pushed only on explicit user
    action. Local autosave is disabled.
*/
package desceditor
