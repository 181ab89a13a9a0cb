// Package provenance records a tamper-evident audit trail of engine runs.
//
// Every command that evaluates a note can seal a Record describing what
// ran, over which input, with which outcome. Records form a hash chain
// per note: each record's digest covers its content plus the digest of
// the previous record, so any retroactive edit breaks verification from
// that point forward.
//
// Two stores are provided: an in-memory store for tests and one-shot
// runs, and a Redis-backed store for durable trails shared across
// machines.
package provenance
