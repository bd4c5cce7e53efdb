package processing

import (
	"context"
	"fmt"

	"github.com/systemstart/many-scaffold/pkg/steps"
)

// Run executes actions against sc sequentially, in list order. After each
// action the policy decides whether the run continues: OnActionEnd on success,
// OnActionError on failure. A nil policy behaves like NopPolicy.
func Run(ctx context.Context, sc *steps.ScaffoldContext, actions []steps.Action, policy Policy) error {
	if policy == nil {
		policy = NopPolicy{}
	}

	for _, action := range actions {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("pipeline cancelled before %q: %w", action.Name(), err)
		}

		policy.OnActionStart(ctx, action, sc)
		if err := action.Run(ctx, sc); err != nil {
			if perr := policy.OnActionError(ctx, action, sc, err); perr != nil {
				return perr
			}
			continue
		}
		policy.OnActionEnd(ctx, action, sc)
	}

	return nil
}
