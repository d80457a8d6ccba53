// Package policy decides whether an authenticated user may act on a
// username-scoped resource. The rule is written in rego and compiled once.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

const accessModule = `
package socialnet.authz

default allow = false

allow {
	input.subject.username != ""
	input.subject.username == input.resource.owner
}
`

type Subject struct {
	ID       uint
	Username string
}

type Resource struct {
	// Owner is the username the request is addressed to.
	Owner  string
	Action string
}

type Access struct {
	query rego.PreparedEvalQuery
}

func NewAccess(ctx context.Context) (*Access, error) {
	query, err := rego.New(
		rego.Query("data.socialnet.authz.allow"),
		rego.Module("authz.rego", accessModule),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("rule failed to compile: %w", err)
	}
	return &Access{query: query}, nil
}

// Allowed reports whether subject may perform the action on resource.
func (a *Access) Allowed(ctx context.Context, subject Subject, resource Resource) (bool, error) {
	input := map[string]interface{}{
		"subject": map[string]interface{}{
			"id":       subject.ID,
			"username": subject.Username,
		},
		"resource": map[string]interface{}{
			"owner":  resource.Owner,
			"action": resource.Action,
		},
	}

	rs, err := a.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return false, fmt.Errorf("evaluate access policy: %w", err)
	}
	if len(rs) == 0 || len(rs[0].Expressions) == 0 {
		return false, nil
	}

	allowed, ok := rs[0].Expressions[0].Value.(bool)
	return ok && allowed, nil
}
