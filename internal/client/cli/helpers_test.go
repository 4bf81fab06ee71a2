package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/schooldesk/internal/client/models"
	"github.com/dmitrijs2005/schooldesk/internal/client/router"
	"github.com/dmitrijs2005/schooldesk/internal/logging"
)

type fakeSession struct {
	principal *models.Principal
	role      string

	loginEmail string
	loginPass  string
	loginErr   error

	regReq models.RegisterRequest
	regErr error

	logoutCalls int

	resetEmail string
	resetMsg   string
	resetErr   error
}

func (f *fakeSession) Login(_ context.Context, email, password string) (*models.LoginResponse, error) {
	f.loginEmail, f.loginPass = email, password
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.principal = &models.Principal{ID: 7, Email: email, Role: f.role, Token: "tok"}
	return &models.LoginResponse{Token: "tok", User: models.IdentityUser{ID: 7, Email: email, Role: f.role}}, nil
}

func (f *fakeSession) Register(_ context.Context, req models.RegisterRequest) (*models.Identity, error) {
	f.regReq = req
	if f.regErr != nil {
		return nil, f.regErr
	}
	role := req.Role
	if role == "" {
		role = "student"
	}
	return &models.Identity{ID: 9, Email: req.Email, Role: role}, nil
}

func (f *fakeSession) CurrentUser() *models.Principal { return f.principal }

func (f *fakeSession) Logout(context.Context) {
	f.logoutCalls++
	f.principal = nil
}

func (f *fakeSession) Authenticated(context.Context) bool { return f.principal != nil }

func (f *fakeSession) Credential(context.Context) (string, bool) {
	if f.principal == nil {
		return "", false
	}
	return f.principal.Token, true
}

func (f *fakeSession) Subscribe(ctx context.Context) <-chan *models.Principal {
	ch := make(chan *models.Principal, 1)
	ch <- f.principal
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch
}

func (f *fakeSession) ResetPassword(_ context.Context, email string) (string, error) {
	f.resetEmail = email
	return f.resetMsg, f.resetErr
}

type getCall struct {
	endpoint string
	params   map[string]any
}

type fakeGetter struct {
	calls []getCall
	reply string
	err   error
}

func (f *fakeGetter) Get(_ context.Context, endpoint string, params map[string]any, out any) error {
	f.calls = append(f.calls, getCall{endpoint: endpoint, params: params})
	if f.err != nil {
		return f.err
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = json.RawMessage(f.reply)
	}
	return nil
}

// newTestApp builds an App over fakes and the real route table.
func newTestApp(s *fakeSession, g *fakeGetter) *App {
	l := logging.NewNopLogger()
	return &App{
		session: s,
		router:  router.New(router.DefaultRoutes(router.NewAuthGate(s), router.NewRoleGate(s)), l),
		api:     g,
		logger:  l,
		reader:  bufio.NewReader(strings.NewReader("")),
		out:     io.Discard,
	}
}

// capturePrintln swaps printlnFn for a recorder and returns the lines seen.
// Read the lines only once every printer has returned.
func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var (
		mu    sync.Mutex
		lines []string
	)
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

// stubInputs answers text prompts in order and returns password for the
// password prompt.
func stubInputs(t *testing.T, texts []string, password []byte) {
	t.Helper()
	origST, origGP, origTerm := getSimpleText, getPassword, isTerminal
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(texts) {
			return "", io.EOF
		}
		s := texts[i]
		i++
		return s, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return append([]byte(nil), password...), nil }
	isTerminal = func(int) bool { return true }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
		isTerminal = origTerm
	})
}
