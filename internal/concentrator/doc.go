// Package concentrator connects the transport to the telemetry decoder.
//
// The Subscriber is registered as the transport's on-message handler. For
// every delivered message it runs the decoder and hands the resulting
// record batch to a single Sink, assigned at construction.
//
// # Contract
//
//   - One delivery produces at most one sink call, carrying every record
//     decoded from that message. Batches are never split.
//   - Decode failures are returned to the transport layer unmodified. The
//     subscriber never swallows errors, never retries and never calls the
//     sink for a failed message. Logging and error policy live at the
//     transport boundary (see internal/infrastructure/mqtt).
//
// # Concurrency
//
// The subscriber holds no mutable state, so it is safe for the transport
// to invoke OnMessage from multiple delivery goroutines. No ordering is
// guaranteed across distinct messages; within one message, records keep
// their wire order. Sinks that need serialisation must provide their own.
package concentrator
