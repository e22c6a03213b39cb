package wizard

import "context"

// InputBoxParams describes one text prompt.
type InputBoxParams struct {
	Title      string
	Step       int
	TotalSteps int
	// Value is the initial text, typically the previous answer or a seeded default.
	Value    string
	Password bool
	Prompt   string
	Validate Validator
	// ShouldResume decides between Resume and Cancel when the prompt is dismissed.
	ShouldResume func(ctx context.Context) bool
}

// ShowInputBox displays a text prompt and returns the accepted value.
// It returns Back, Cancel or Resume when the user leaves the prompt instead.
func (in *Input) ShowInputBox(ctx context.Context, p InputBoxParams) (string, error) {
	box := in.ui.NewInputBox(InputBoxOptions{
		Header:   in.header(p.Title, p.Step, p.TotalSteps),
		Value:    p.Value,
		Prompt:   p.Prompt,
		Password: p.Password,
	})
	if err := in.show(box); err != nil {
		return "", err
	}

	typing := newDebouncer(ctx, p.Validate)
	defer typing.close()
	submit := newDebouncer(ctx, p.Validate)
	defer submit.close()

	events := box.Events()
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return "", resumeOrCancel(ctx, p.ShouldResume)
			}
			switch ev.Kind {
			case EventChange:
				typing.issue(ev.Value)
			case EventAccept:
				if p.Validate == nil {
					return ev.Value, nil
				}
				typing.invalidate()
				box.SetEnabled(false)
				box.SetBusy(true)
				submit.issue(ev.Value)
			case EventBack:
				return "", Back
			case EventHide:
				return "", resumeOrCancel(ctx, p.ShouldResume)
			}

		case v := <-typing.results:
			if typing.settle(v) {
				box.SetValidationMessage(v.message)
			}

		case v := <-submit.results:
			if !submit.settle(v) {
				continue
			}
			if v.message == "" {
				return v.value, nil
			}
			box.SetValidationMessage(v.message)
			box.SetEnabled(true)
			box.SetBusy(false)
		}
	}
}
