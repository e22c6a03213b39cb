package main

import (
	"context"
	"fmt"

	"github.com/Bibi40k/sftp-logfetch/internal/store"
	"github.com/Bibi40k/sftp-logfetch/internal/wizard"
)

// lastTarget rebuilds the previous download from the saved state.
func (a *app) lastTarget() (target, error) {
	var t target
	for _, f := range []struct {
		dst *string
		key string
	}{
		{&t.Host, store.KeyHost},
		{&t.User, store.KeyUsername},
		{&t.Path, store.KeyPath},
		{&t.File, store.KeyFilename},
	} {
		v, ok := a.state.Get(f.key)
		if !ok || v == "" {
			return target{}, &userError{
				msg:  fmt.Sprintf("no previous download recorded (%s missing)", f.key),
				hint: `run "logfetch fetch" first`,
			}
		}
		*f.dst = v
	}
	return t, nil
}

// runLast downloads the previously fetched file again; only the password
// is asked for.
func (a *app) runLast(ctx context.Context) error {
	t, err := a.lastTarget()
	if err != nil {
		return err
	}

	t.Password = a.cfg.Password
	if t.Password == "" {
		if a.cfg.NonInteractive {
			return missingValue(keyPassword)
		}
		ask := func(ctx context.Context, in *wizard.Input) (wizard.Step, error) {
			v, err := in.ShowInputBox(ctx, wizard.InputBoxParams{
				Title:        a.cfg.Title,
				Step:         1,
				TotalSteps:   1,
				Prompt:       fmt.Sprintf("Password for %s@%s", t.User, t.Host),
				Password:     true,
				Validate:     validatePassword,
				ShouldResume: a.resume,
			})
			if err != nil {
				return nil, err
			}
			t.Password = v
			return nil, nil
		}
		if err := wizard.Run(ctx, a.ui, ask, wizard.WithLogger(a.log)); err != nil {
			return err
		}
		if t.Password == "" {
			_, _ = fmt.Fprintln(a.out, "  Cancelled.")
			return nil
		}
	}

	s := &session{app: a}
	defer s.close()
	client, err := s.open(ctx, t)
	if err != nil {
		return err
	}
	a.log.Info("Fetching last file", "path", t.Path, "file", t.File)
	_, err = a.download(ctx, client, t)
	return err
}
