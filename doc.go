// Package sdk provides the evaluation engine for Risk Note safety-assurance
// artifacts.
//
// A Risk Note is a versioned, schema-constrained YAML document describing one
// safety claim: its scope, supporting evidence, uncertainty ledger, triage
// inputs, controls, and a proposed next investigation. The SDK validates such
// documents and derives release decisions from them.
//
// # Packages
//
// The engine is split into small, pure packages:
//
//   - note: the typed Risk Note model, semantic validation, and ISO-8601
//     duration helpers
//   - schema: JSON Schema (Draft 2020-12) validation of raw documents
//   - triage: posture classification from severity, exploitability, and
//     reversibility
//   - freshness: evidence staleness checks against a maximum-age policy
//   - evoi: budget-constrained ranking of proposed investigations by
//     expected value of information
//   - gsn: assurance-case (goal-structuring-notation) rendering
//   - gate: release gating on recomputed posture or a CEL policy expression
//   - provenance: hash-chained audit records of engine invocations
//
// # Purity
//
// Every engine operation is a pure function of its explicit inputs. Time
// ("now"), maximum ages, and budgets are always caller-supplied, never read
// from an ambient clock, so evaluations are deterministic and reproducible.
// Concurrent evaluation of independent notes requires no coordination.
//
// # Errors
//
// This package defines the shared error taxonomy. Validation failures are
// reported as a complete ViolationList (never truncated to the first
// problem); semantically invalid values surface as domain errors, and
// implausible dates as timestamp errors. See Error and the Kind constants.
package sdk
