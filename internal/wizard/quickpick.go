package wizard

import "context"

// QuickPickParams describes one choice prompt.
type QuickPickParams struct {
	Title       string
	Step        int
	TotalSteps  int
	Placeholder string
	Items       []Item
	// Active is highlighted initially, typically the previous answer.
	Active       *Item
	ShouldResume func(ctx context.Context) bool
}

// ShowQuickPick displays a list and returns the chosen item.
// Callers must not pass an empty list.
func (in *Input) ShowQuickPick(ctx context.Context, p QuickPickParams) (Item, error) {
	pick := in.ui.NewQuickPick(QuickPickOptions{
		Header:      in.header(p.Title, p.Step, p.TotalSteps),
		Placeholder: p.Placeholder,
		Items:       p.Items,
		Active:      p.Active,
	})
	if err := in.show(pick); err != nil {
		return Item{}, err
	}

	events := pick.Events()
	for {
		select {
		case <-ctx.Done():
			return Item{}, ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return Item{}, resumeOrCancel(ctx, p.ShouldResume)
			}
			switch ev.Kind {
			case EventSelect:
				return ev.Item, nil
			case EventBack:
				return Item{}, Back
			case EventHide:
				return Item{}, resumeOrCancel(ctx, p.ShouldResume)
			}
		}
	}
}
