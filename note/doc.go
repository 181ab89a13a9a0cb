// Package note provides the typed Risk Note model and its validation.
//
// A Risk Note is the aggregate root of the evaluation engine: one safety
// claim together with its scope, evidence sources, uncertainty ledger,
// triage inputs, controls, and a proposed next investigation. Notes are
// parsed from YAML documents, checked against the versioned JSON Schema
// contract, and then semantically validated. Once a note has passed
// Parse it is treated as immutable: every engine operation is a read-only
// projection over it.
//
// Validation is exhaustive. A single Parse call reports every structural
// and semantic defect as a path-qualified sdk.ViolationList rather than
// stopping at the first problem, so one lint run surfaces the complete
// defect set.
//
// Example usage:
//
//	n, err := note.Parse(doc, schema.Default())
//	if err != nil {
//		var violations sdk.ViolationList
//		if errors.As(err, &violations) {
//			for _, v := range violations {
//				fmt.Println(v)
//			}
//		}
//		return err
//	}
//	fmt.Println(n.Identity.ID, n.Triage.Posture)
package note
