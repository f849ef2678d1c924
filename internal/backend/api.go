package backend

import (
	"context"
	"errors"

	"fiwa/internal/core"
)

// ErrNotImplemented marks the remote-backend scaffold: the mode exists
// so a future server can slot in, but no method is wired yet.
var ErrNotImplemented = errors.New("api backend is not implemented")

// apiBackend is the unimplemented remote passthrough.
type apiBackend struct {
	baseURL string
}

func newAPIBackend(baseURL string) *apiBackend {
	return &apiBackend{baseURL: baseURL}
}

func (b *apiBackend) Users() UserDirectory      { return (*apiUsers)(b) }
func (b *apiBackend) Sessions() SessionManager  { return (*apiSessions)(b) }
func (b *apiBackend) Projects() ProjectRegistry { return (*apiProjects)(b) }
func (b *apiBackend) Labels() LabelRegistry     { return (*apiLabels)(b) }
func (b *apiBackend) Items() ItemLedger         { return (*apiItems)(b) }

type apiUsers apiBackend

func (*apiUsers) Create(context.Context, core.NewUser) (int64, error) {
	return 0, ErrNotImplemented
}

func (*apiUsers) Authenticate(context.Context, string, string) (*core.Session, error) {
	return nil, ErrNotImplemented
}

func (*apiUsers) GetInfo(context.Context, int64) (*core.User, error) {
	return nil, ErrNotImplemented
}

func (*apiUsers) MaxProjects(context.Context, int64) (int, error) {
	return 0, ErrNotImplemented
}

func (*apiUsers) AllIDs(context.Context) ([]int64, error) {
	return nil, ErrNotImplemented
}

func (*apiUsers) Count(context.Context) (int64, error) {
	return 0, ErrNotImplemented
}

type apiSessions apiBackend

func (*apiSessions) Login(context.Context, int64) (*core.Session, error) {
	return nil, ErrNotImplemented
}

func (*apiSessions) Logout(context.Context, string) bool {
	return false
}

func (*apiSessions) Current(context.Context) (*core.SessionInfo, error) {
	return nil, ErrNotImplemented
}

type apiProjects apiBackend

func (*apiProjects) Create(context.Context, core.NewProject, int64) (int64, error) {
	return 0, ErrNotImplemented
}

func (*apiProjects) Update(context.Context, int64, core.ProjectPatch) error {
	return ErrNotImplemented
}

func (*apiProjects) AddMember(context.Context, int64, int64, string, bool) error {
	return ErrNotImplemented
}

func (*apiProjects) InfoForUser(context.Context, int64) ([]core.ProjectInfo, error) {
	return nil, ErrNotImplemented
}

type apiLabels apiBackend

func (*apiLabels) Create(context.Context, core.NewLabel, int64) (int64, error) {
	return 0, ErrNotImplemented
}

func (*apiLabels) Update(context.Context, int64, core.LabelPatch) error {
	return ErrNotImplemented
}

func (*apiLabels) Delete(context.Context, int64, bool) error {
	return ErrNotImplemented
}

func (*apiLabels) Get(context.Context, int64) (*core.Label, error) {
	return nil, ErrNotImplemented
}

func (*apiLabels) List(context.Context, int64) ([]core.Label, error) {
	return nil, ErrNotImplemented
}

type apiItems apiBackend

func (*apiItems) Create(context.Context, core.NewItem) (*core.Item, error) {
	return nil, ErrNotImplemented
}

func (*apiItems) ListForProject(context.Context, int64) ([]core.Item, error) {
	return nil, ErrNotImplemented
}
