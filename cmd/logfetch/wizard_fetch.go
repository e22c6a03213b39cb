package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Bibi40k/sftp-logfetch/internal/store"
	"github.com/Bibi40k/sftp-logfetch/internal/wizard"
	"github.com/Bibi40k/sftp-logfetch/pkg/sftpclient"
)

const fetchSteps = 5

// serverState collects the fetch wizard answers.
type serverState struct {
	Host     string
	User     string
	Password string
	Path     string
	File     *wizard.Item
}

func (s *serverState) complete() bool {
	return s.Host != "" && s.User != "" && s.Password != "" && s.Path != "" && s.File != nil
}

func (s *serverState) target() target {
	t := target{Host: s.Host, User: s.User, Password: s.Password, Path: s.Path}
	if s.File != nil {
		t.File = s.File.Label
	}
	return t
}

type fetchWizard struct {
	app     *app
	session *session
	state   serverState
}

// seed fills answers from settings first, then from the saved state.
func (w *fetchWizard) seed() {
	cfg, st := w.app.cfg, w.app.state
	pick := func(v, key string) string {
		if v != "" {
			return v
		}
		return st.Lookup(key)
	}
	w.state.Host = pick(cfg.Host, store.KeyHost)
	w.state.User = pick(cfg.User, store.KeyUsername)
	w.state.Path = pick(cfg.Path, store.KeyPath)
	w.state.Password = cfg.Password
	if name := pick(cfg.File, store.KeyFilename); name != "" {
		w.state.File = &wizard.Item{Label: name}
	}
}

func (w *fetchWizard) start() wizard.Step {
	return wizard.Chain(w.askHost, w.askUser, w.askPassword, w.askPath, w.pickFile)
}

func (w *fetchWizard) input(ctx context.Context, in *wizard.Input, step int, p wizard.InputBoxParams) (string, error) {
	p.Title = w.app.cfg.Title
	p.Step = step
	p.TotalSteps = fetchSteps
	p.ShouldResume = w.app.resume
	return in.ShowInputBox(ctx, p)
}

func (w *fetchWizard) askHost(ctx context.Context, in *wizard.Input) error {
	v, err := w.input(ctx, in, 1, wizard.InputBoxParams{
		Value:    w.state.Host,
		Prompt:   "Server address",
		Validate: w.app.validateHost,
	})
	if err != nil {
		return err
	}
	w.state.Host = strings.TrimSpace(v)
	return nil
}

func (w *fetchWizard) askUser(ctx context.Context, in *wizard.Input) error {
	v, err := w.input(ctx, in, 2, wizard.InputBoxParams{
		Value:    w.state.User,
		Prompt:   "Username",
		Validate: validateUser,
	})
	if err != nil {
		return err
	}
	w.state.User = strings.TrimSpace(v)
	return nil
}

func (w *fetchWizard) askPassword(ctx context.Context, in *wizard.Input) error {
	v, err := w.input(ctx, in, 3, wizard.InputBoxParams{
		Value:    w.state.Password,
		Prompt:   "Password",
		Password: true,
		Validate: validatePassword,
	})
	if err != nil {
		return err
	}
	w.state.Password = v
	return nil
}

func (w *fetchWizard) askPath(ctx context.Context, in *wizard.Input) error {
	v, err := w.input(ctx, in, 4, wizard.InputBoxParams{
		Value:    w.state.Path,
		Prompt:   "Remote log directory",
		Validate: validateRemoteDir,
	})
	if err != nil {
		return err
	}
	w.state.Path = strings.TrimSpace(v)
	return nil
}

// pickFile connects with the answers so far and lists the directory.
// Going back from here keeps the connection unless the credentials change.
func (w *fetchWizard) pickFile(ctx context.Context, in *wizard.Input) error {
	client, err := w.session.open(ctx, w.state.target())
	if err != nil {
		return err
	}
	files, err := w.app.listLogs(client, w.state.Path)
	if err != nil {
		return err
	}

	items := fileItems(files)
	item, err := in.ShowQuickPick(ctx, wizard.QuickPickParams{
		Title:        w.app.cfg.Title,
		Step:         fetchSteps,
		TotalSteps:   fetchSteps,
		Placeholder:  fmt.Sprintf("Pick a log file in %s", w.state.Path),
		Items:        items,
		Active:       w.state.File,
		ShouldResume: w.app.resume,
	})
	if err != nil {
		return err
	}
	w.state.File = &item
	return nil
}

func fileItems(files []sftpclient.FileInfo) []wizard.Item {
	items := make([]wizard.Item, len(files))
	for i, f := range files {
		items[i] = wizard.Item{
			Label:       f.Name,
			Description: formatSize(f.Size),
			Detail:      f.ModTime.Local().Format(time.DateTime),
		}
	}
	return items
}

func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

// runFetch asks for the server and file, then downloads it.
func (a *app) runFetch(ctx context.Context) error {
	w := &fetchWizard{app: a, session: &session{app: a}}
	defer w.session.close()
	w.seed()

	if a.cfg.NonInteractive {
		if err := requireValues(
			[2]string{keyHost, w.state.Host},
			[2]string{keyUser, w.state.User},
			[2]string{keyPassword, w.state.Password},
			[2]string{keyPath, w.state.Path},
			[2]string{keyFile, a.cfg.File},
		); err != nil {
			return err
		}
	} else {
		if err := wizard.Run(ctx, a.ui, w.start(), wizard.WithLogger(a.log)); err != nil {
			return err
		}
		if !w.state.complete() {
			_, _ = fmt.Fprintln(a.out, "  Cancelled.")
			return nil
		}
	}

	t := w.state.target()
	client, err := w.session.open(ctx, t)
	if err != nil {
		return err
	}
	_, err = a.download(ctx, client, t)
	return err
}
