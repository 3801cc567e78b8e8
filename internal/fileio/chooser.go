package fileio

import "context"

// Choice is one answer from an interactive picker or save prompt.
type Choice struct {
	Path      string
	Cancelled bool
}

// PendingChooser answers ChooseOpen and ChooseCreate from channels that a UI fills
// once the user decides. A nil channel means that kind of request is not expected.
type PendingChooser struct {
	Open   <-chan Choice
	Create <-chan Choice
}

func (c PendingChooser) ChooseOpen(ctx context.Context, _ []string) (string, error) {
	return await(ctx, c.Open)
}

func (c PendingChooser) ChooseCreate(ctx context.Context, _, _ string) (string, error) {
	return await(ctx, c.Create)
}

func await(ctx context.Context, ch <-chan Choice) (string, error) {
	if ch == nil {
		return "", ErrNoChooser
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case choice, ok := <-ch:
		if !ok || choice.Cancelled || choice.Path == "" {
			return "", ErrCancelled
		}
		return choice.Path, nil
	}
}
