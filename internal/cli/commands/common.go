package commands

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rinkside/rinkside/internal/access"
	"github.com/rinkside/rinkside/internal/cli/backendselect"
	"github.com/rinkside/rinkside/internal/cli/client"
	"github.com/rinkside/rinkside/internal/cli/config"
	"github.com/rinkside/rinkside/internal/cli/shell"
	appconfig "github.com/rinkside/rinkside/internal/config"
	"github.com/rinkside/rinkside/internal/logger"
	"github.com/rinkside/rinkside/internal/session"
)

// globals are bound to the root command's persistent flags
var globals struct {
	apiURL   string
	name     string
	surname  string
	password string
}

// BindGlobalFlags registers the backend and credential flags on root
func BindGlobalFlags(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.StringVar(&globals.apiURL, "api-url", "", "Backend URL or alias (or set RINKSIDE_API_URL)")
	flags.StringVar(&globals.name, "name", "", "Account name (or set RINKSIDE_NAME)")
	flags.StringVar(&globals.surname, "surname", "", "Account surname (or set RINKSIDE_SURNAME)")
	flags.StringVar(&globals.password, "password", "", "Password (or set RINKSIDE_PASSWORD, will prompt if not provided)")
}

// Options control how a command reaches the backend and where it prints
type Options struct {
	APIURL     string
	Out        io.Writer
	HTTPClient *http.Client
	Name       string
	Surname    string
	Password   string
	Prompter   shell.Prompter
	OpenURL    func(string) error
}

// Option configures a command run
type Option func(*Options)

// WithAPIURL points the command at a backend, bypassing rinkside.yaml
func WithAPIURL(url string) Option {
	return func(o *Options) { o.APIURL = url }
}

// WithOutput sets where results are printed
func WithOutput(w io.Writer) Option {
	return func(o *Options) { o.Out = w }
}

// WithHTTPClient sets the HTTP client used for API calls
func WithHTTPClient(c *http.Client) Option {
	return func(o *Options) { o.HTTPClient = c }
}

// WithCredentials sets the login credentials
func WithCredentials(name, surname, password string) Option {
	return func(o *Options) {
		o.Name = name
		o.Surname = surname
		o.Password = password
	}
}

// WithPrompter sets the prompter used by the interactive shell
func WithPrompter(p shell.Prompter) Option {
	return func(o *Options) { o.Prompter = p }
}

// WithURLOpener sets how URLs are handed to the OS
func WithURLOpener(fn func(string) error) Option {
	return func(o *Options) { o.OpenURL = fn }
}

func newOptions(opts []Option) *Options {
	o := &Options{
		APIURL:   globals.apiURL,
		Out:      os.Stdout,
		Name:     globals.name,
		Surname:  globals.surname,
		Password: globals.password,
		Prompter: shell.PromptUI{},
		OpenURL:  openURL,
	}
	for _, opt := range opts {
		opt(o)
	}

	// Environment fallbacks (useful for CI/CD)
	if o.Name == "" {
		o.Name = os.Getenv("RINKSIDE_NAME")
	}
	if o.Surname == "" {
		o.Surname = os.Getenv("RINKSIDE_SURNAME")
	}
	if o.Password == "" {
		o.Password = os.Getenv("RINKSIDE_PASSWORD")
	}
	return o
}

// conn is one process's session and client
type conn struct {
	opts    *Options
	session *session.Session
	client  *client.Client
}

// connect resolves the backend and builds a logged-out conn
func connect(o *Options) (*conn, error) {
	cfg, err := appconfig.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	override := o.APIURL
	if override == "" {
		override = cfg.Client.APIURL
	}

	project, err := loadProjectConfig()
	if err != nil {
		return nil, err
	}

	baseURL, err := backendselect.ResolveBackend(project, override)
	if err != nil {
		return nil, err
	}

	sess := session.New()
	apiClient := client.New(baseURL, sess)
	if o.HTTPClient != nil {
		apiClient.SetHTTPClient(o.HTTPClient)
	}
	apiClient.SetTimeout(cfg.Client.Timeout)
	apiClient.SetLogger(logger.GetLogger())

	return &conn{opts: o, session: sess, client: apiClient}, nil
}

// loadProjectConfig returns nil when there is no rinkside.yaml
func loadProjectConfig() (*config.Config, error) {
	path, err := config.FindConfigFile()
	if err != nil {
		logger.Logger.Debug().Err(err).Msg("No project config")
		return nil, nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// login authenticates with the configured credentials and stores the result
// in the conn's session
func (r *conn) login() (*client.LoginResponse, error) {
	o := r.opts
	if strings.TrimSpace(o.Name) == "" || strings.TrimSpace(o.Surname) == "" {
		return nil, fmt.Errorf("name and surname are required (use --name/--surname flags or RINKSIDE_NAME/RINKSIDE_SURNAME env vars)")
	}

	password := o.Password
	if password == "" {
		var err error
		if password, err = readPassword(); err != nil {
			return nil, err
		}
	}

	resp, err := r.client.Login(o.Name, o.Surname, password)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	r.session.Login(resp.User.SessionUser(), resp.Token)
	return resp, nil
}

// readPassword prompts on the terminal without echo
func readPassword() (string, error) {
	// Check if stdin is a terminal (not piped)
	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", fmt.Errorf("password is required in non-interactive mode (use --password flag or RINKSIDE_PASSWORD env var)")
	}

	fmt.Fprint(os.Stderr, "Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(bytePassword), nil
}

// withSession logs in, checks capability, and runs fn. The capability is
// checked before any resource request is sent.
func withSession(opts []Option, need access.Capability, fn func(r *conn) error) error {
	r, err := connect(newOptions(opts))
	if err != nil {
		return err
	}

	if _, err := r.login(); err != nil {
		return err
	}

	if err := access.Require(r.session.Snapshot(), need); err != nil {
		return err
	}

	return fn(r)
}

// public runs fn against the backend without logging in
func public(opts []Option, fn func(r *conn) error) error {
	r, err := connect(newOptions(opts))
	if err != nil {
		return err
	}
	return fn(r)
}
