// Package shell is the interactive, menu-driven client. The menu shown on
// each iteration is the route the session currently resolves to.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/rinkside/rinkside/internal/access"
	"github.com/rinkside/rinkside/internal/cli/client"
	"github.com/rinkside/rinkside/internal/router"
	"github.com/rinkside/rinkside/internal/session"
)

const (
	menuLogout = "Logout"
	menuQuit   = "Quit"
	menuBack   = "Back"
)

// Shell runs the interactive loop against one session and one backend
type Shell struct {
	session *session.Session
	client  *client.Client
	prompt  Prompter
	out     io.Writer
	openURL func(string) error
	log     zerolog.Logger
}

// Option configures a Shell
type Option func(*Shell)

// WithOutput sets where screens print. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(s *Shell) { s.out = w }
}

// WithURLOpener sets how audio URLs are handed to the OS
func WithURLOpener(fn func(string) error) Option {
	return func(s *Shell) { s.openURL = fn }
}

// WithLogger sets the logger
func WithLogger(log zerolog.Logger) Option {
	return func(s *Shell) { s.log = log }
}

// New creates a shell. The client must read its token from sess.
func New(sess *session.Session, c *client.Client, p Prompter, opts ...Option) *Shell {
	s := &Shell{
		session: sess,
		client:  c,
		prompt:  p,
		out:     os.Stdout,
		openURL: func(string) error { return errors.New("no URL opener configured") },
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run shows menus until the user quits or aborts at the top level
func (s *Shell) Run() error {
	cancel := s.session.Subscribe(s.onSessionChange)
	defer cancel()

	fmt.Fprintf(s.out, "Connected to %s\n\n", s.client.BaseURL())

	for {
		st := s.session.Snapshot()
		route := router.Resolve(st)

		if route == router.Resolving {
			fmt.Fprintln(s.out, "Resolving account… this role is not supported by this client.")
		}

		labels, handlers := s.menu(st)
		idx, err := s.prompt.Select(menuTitle(st, route), labels)
		if errors.Is(err, ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}

		handler := handlers[idx]
		if handler == nil {
			return nil
		}
		if err := handler(); err != nil && !errors.Is(err, ErrAborted) {
			s.alert(err)
		}
	}
}

func menuTitle(st session.State, route router.Route) string {
	if route == router.Unauthenticated {
		return "rinkside"
	}
	return fmt.Sprintf("rinkside (%s)", st.User.Role)
}

// menu returns the labels for the current route and what each does. A nil
// handler quits.
func (s *Shell) menu(st session.State) ([]string, []func() error) {
	var labels []string
	var handlers []func() error

	for _, dest := range router.Destinations(st) {
		labels = append(labels, string(dest))
		handlers = append(handlers, s.screen(dest))
	}

	if st.Authenticated {
		labels = append(labels, menuLogout)
		handlers = append(handlers, s.logout)
	}

	labels = append(labels, menuQuit)
	handlers = append(handlers, nil)
	return labels, handlers
}

func (s *Shell) screen(dest router.Destination) func() error {
	switch dest {
	case router.Welcome:
		return s.welcome
	case router.Login:
		return s.login
	case router.Register:
		return s.register
	case router.Home:
		return s.home
	case router.Skaters:
		return s.skaters
	case router.Training:
		return s.training
	case router.Programs:
		return s.programs
	case router.Education:
		return s.education
	case router.Profile:
		return s.profile
	default:
		return func() error { return fmt.Errorf("unknown screen %q", dest) }
	}
}

func (s *Shell) onSessionChange(st session.State) {
	route := router.Resolve(st)
	s.log.Debug().Str("route", route.String()).Msg("Session changed")

	switch route {
	case router.Unauthenticated:
		fmt.Fprintln(s.out, "Signed out.")
	case router.Resolving:
		fmt.Fprintf(s.out, "Signed in with unrecognised role %q.\n", st.User.Role)
	default:
		fmt.Fprintf(s.out, "✓ Signed in as %s\n", st.User.Role)
	}
}

func (s *Shell) logout() error {
	s.session.Logout()
	return nil
}

// alertError carries the title shown in the alert line
type alertError struct {
	title string
	err   error
}

func (e *alertError) Error() string { return e.title + ": " + e.err.Error() }
func (e *alertError) Unwrap() error { return e.err }

func fail(title string, err error) error {
	if errors.Is(err, ErrAborted) {
		return err
	}
	return &alertError{title: title, err: err}
}

func (s *Shell) alert(err error) {
	title := "Error"
	var a *alertError
	if errors.As(err, &a) {
		title = a.title
		err = a.err
	}
	fmt.Fprintf(s.out, "✗ %s: %s\n", title, describe(err))
}

// describe turns an error into the message shown to the user
func describe(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// action is one entry in a screen's submenu
type action struct {
	label string
	need  access.Capability
	run   func() error
}

// actionMenu loops over a screen's actions until the user goes back.
// Actions the role cannot perform are not listed.
func (s *Shell) actionMenu(title string, actions []action) error {
	for {
		st := s.session.Snapshot()
		var role session.Role
		if st.User != nil {
			role = st.User.Role
		}

		var visible []action
		labels := make([]string, 0, len(actions)+1)
		for _, a := range actions {
			if access.Can(role, a.need) {
				visible = append(visible, a)
				labels = append(labels, a.label)
			}
		}
		labels = append(labels, menuBack)

		idx, err := s.prompt.Select(title, labels)
		if errors.Is(err, ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		if idx == len(visible) {
			return nil
		}

		a := visible[idx]
		if err := access.Require(st, a.need); err != nil {
			s.alert(fail(a.label, err))
			continue
		}
		if err := a.run(); err != nil && !errors.Is(err, ErrAborted) {
			s.alert(err)
		}
	}
}

// pick asks the user to choose one of items
func (s *Shell) pick(label string, items []string) (int, error) {
	if len(items) == 0 {
		return 0, fmt.Errorf("nothing to choose from")
	}
	return s.prompt.Select(label, items)
}

// pickMany lets the user toggle items until they choose Done
func (s *Shell) pickMany(label string, items []string, selected map[int]bool) ([]int, error) {
	for {
		labels := make([]string, 0, len(items)+1)
		labels = append(labels, "Done")
		for i, item := range items {
			mark := "[ ]"
			if selected[i] {
				mark = "[x]"
			}
			labels = append(labels, mark+" "+item)
		}

		idx, err := s.prompt.Select(label, labels)
		if err != nil {
			return nil, err
		}
		if idx == 0 {
			var out []int
			for i := range items {
				if selected[i] {
					out = append(out, i)
				}
			}
			return out, nil
		}
		selected[idx-1] = !selected[idx-1]
	}
}

func (s *Shell) inputInt(label string, initial int) (int, error) {
	def := ""
	if initial != 0 {
		def = strconv.Itoa(initial)
	}
	raw, err := s.prompt.Input(label, def)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number", strings.ToLower(label))
	}
	return n, nil
}

func orNotAssigned(id string) string {
	if id == "" {
		return "Not assigned"
	}
	return id
}

func humanSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}
