// Package schema validates raw Risk Note documents against the versioned
// JSON Schema contract (Draft 2020-12).
//
// The schema is the first gate of the evaluation pipeline: it enforces
// structure, numeric ranges, enum membership, and ISO-8601 duration syntax
// before any typed decoding happens. Unknown fields are rejected
// everywhere; strictness keeps the artifacts machine-checkable.
//
// Validation failures are reported as a complete, path-qualified
// sdk.ViolationList so a single run surfaces every defect.
//
// The default schema (version v1) ships embedded in the binary; callers
// can compile their own with Compile to pin a different contract version.
package schema
