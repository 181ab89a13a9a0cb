package gate

import (
	"fmt"

	"github.com/google/cel-go/cel"

	sdk "github.com/lousa-ai/sdk"
)

// Policy is a compiled gate expression. Expressions are written in CEL
// over the fields of Report and must evaluate to a boolean, for example:
//
//	posture == "green" && !any_stale
//	risk_score < 2.0 || evoi_score > 0.5
type Policy struct {
	source  string
	program cel.Program
}

// policyEnv declares the variables a policy expression may reference.
func policyEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("posture", cel.StringType),
		cel.Variable("stored_posture", cel.StringType),
		cel.Variable("drift", cel.BoolType),
		cel.Variable("severity", cel.IntType),
		cel.Variable("exploitability", cel.IntType),
		cel.Variable("reversibility", cel.IntType),
		cel.Variable("risk_score", cel.DoubleType),
		cel.Variable("any_stale", cel.BoolType),
		cel.Variable("evoi_score", cel.DoubleType),
	)
}

// CompilePolicy parses and type-checks a CEL gate expression. A syntax
// error, a reference to an undeclared variable, or a non-boolean result
// type fails with a configuration error.
func CompilePolicy(expr string) (*Policy, error) {
	const op = "gate.CompilePolicy"

	env, err := policyEnv()
	if err != nil {
		return nil, sdk.NewInternalError(op, err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, sdk.NewConfigurationError(op,
			fmt.Errorf("invalid policy %q: %w", expr, issues.Err()))
	}
	if ast.OutputType() != cel.BoolType {
		return nil, sdk.NewConfigurationError(op,
			fmt.Errorf("policy %q evaluates to %s, want bool", expr, ast.OutputType()))
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, sdk.NewInternalError(op, err)
	}
	return &Policy{source: expr, program: prg}, nil
}

// Source returns the original expression text.
func (p *Policy) Source() string { return p.source }

// Eval applies the policy to a report and returns whether it passes.
func (p *Policy) Eval(r *Report) (bool, error) {
	const op = "gate.Policy.Eval"

	out, _, err := p.program.Eval(map[string]any{
		"posture":        r.Posture.String(),
		"stored_posture": r.StoredPosture.String(),
		"drift":          r.Drift,
		"severity":       r.Severity,
		"exploitability": r.Exploitability,
		"reversibility":  r.Reversibility,
		"risk_score":     r.RiskScore,
		"any_stale":      r.AnyStale,
		"evoi_score":     r.EVOIScore,
	})
	if err != nil {
		return false, sdk.NewInternalError(op, fmt.Errorf("policy %q: %w", p.source, err))
	}

	pass, ok := out.Value().(bool)
	if !ok {
		return false, sdk.NewInternalError(op,
			fmt.Errorf("policy %q produced %T, want bool", p.source, out.Value()))
	}
	return pass, nil
}

// CheckPolicy gates a report on a compiled policy and produces a
// Decision in the same shape as Check.
func CheckPolicy(r *Report, p *Policy) (*Decision, error) {
	pass, err := p.Eval(r)
	if err != nil {
		return nil, err
	}

	d := &Decision{
		Pass:       pass,
		Classified: r.Posture,
		Stored:     r.StoredPosture,
		Drift:      r.Drift,
	}
	if pass {
		d.Reason = fmt.Sprintf("policy %q satisfied", p.source)
	} else {
		d.Reason = fmt.Sprintf("policy %q not satisfied", p.source)
	}
	return d, nil
}
