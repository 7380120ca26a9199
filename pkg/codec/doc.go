/*
Package codec defines the canonical JSON shapes shared by export files,
autosave payloads, and host payloads, plus the conversions between those
wire shapes and the domain model.

Decoding is tolerant of older payloads: missing asset or history sequences
default to empty. Structurally invalid input fails with a *DecodeError and
never produces a partially decoded value.
*/
package codec
