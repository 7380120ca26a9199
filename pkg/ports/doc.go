/*
Package ports defines the driven ports (interfaces) for the editor core.

These interfaces decouple the state machine from external implementations,
allowing the facade to work with various storage backends, host transports,
and timer sources.

# Key Interfaces

  - StateStore: Responsible for persisting and loading full editor state.
  - HostClient: Session-scoped request/response synchronization with a host.
  - Scheduler: Cancel-and-reschedule single-shot timers for debounced effects.
*/
package ports
