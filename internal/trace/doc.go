// Package trace records what the front end is doing while it runs.
//
// Tracing is enabled from the command line:
//
//	cfront symbols --trace=- --trace-level=detail unit.c
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes every event as it happens (file or stderr)
//   - RingTracer: keeps the last N events for dumping after a fatal error
//   - MultiTracer: fans events out to several tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: ring buffer only, dumped on fatal errors
//   - LevelPhase: driver and per-unit boundaries
//   - LevelDetail: function scopes opened and closed by the symbol table
//   - LevelDebug: every symbol added to a catalog
package trace
