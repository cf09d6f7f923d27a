package vote

import (
	"github.com/recpm-network/recpm"
	"github.com/recpm-network/recpm/errors"
	"github.com/recpm-network/recpm/x"
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r recpm.Registry, auth x.Authenticator, ctrl *Controller) {
	r.Handle(&RegisterProjectMsg{}, RegisterProjectHandler{ctrl: ctrl})
	r.Handle(&VoteMsg{}, VoteHandler{auth: auth, ctrl: ctrl})
}

// RegisterProjectHandler adds addresses to the project registry. There is no
// access control, any caller can list any address.
type RegisterProjectHandler struct {
	ctrl *Controller
}

var _ recpm.Handler = RegisterProjectHandler{}

func (h RegisterProjectHandler) Check(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*recpm.CheckResult, error) {
	var msg RegisterProjectMsg
	if err := recpm.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	return &recpm.CheckResult{}, nil
}

func (h RegisterProjectHandler) Deliver(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*recpm.DeliverResult, error) {
	var msg RegisterProjectMsg
	if err := recpm.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	if err := h.ctrl.RegisterProject(db, msg.Project); err != nil {
		return nil, err
	}
	return &recpm.DeliverResult{}, nil
}

// VoteHandler spends the signer's vote credit on a project.
type VoteHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ recpm.Handler = VoteHandler{}

func (h VoteHandler) Check(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*recpm.CheckResult, error) {
	msg, voter, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.CheckVote(db, voter, msg.Project, msg.Votes); err != nil {
		return nil, err
	}
	return &recpm.CheckResult{}, nil
}

func (h VoteHandler) Deliver(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*recpm.DeliverResult, error) {
	msg, voter, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.CastVote(db, voter, msg.Project, msg.Votes); err != nil {
		return nil, err
	}
	return &recpm.DeliverResult{}, nil
}

func (h VoteHandler) validate(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*VoteMsg, recpm.Address, error) {
	var msg VoteMsg
	if err := recpm.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return &msg, signer.Address(), nil
}
