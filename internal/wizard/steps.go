package wizard

import "context"

// Step shows one prompt, records the answer in caller-owned state and returns
// the step to run next. A nil Step ends the run.
type Step func(ctx context.Context, in *Input) (Step, error)

// Field is a step body that never branches.
type Field func(ctx context.Context, in *Input) error

// Chain links fields into a linear sequence of steps.
func Chain(fields ...Field) Step {
	if len(fields) == 0 {
		return nil
	}
	return func(ctx context.Context, in *Input) (Step, error) {
		if fields[0] != nil {
			if err := fields[0](ctx, in); err != nil {
				return nil, err
			}
		}
		return Chain(fields[1:]...), nil
	}
}
