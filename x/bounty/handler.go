package bounty

import (
	"github.com/recpm-network/recpm"
	"github.com/recpm-network/recpm/errors"
	"github.com/recpm-network/recpm/x"
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r recpm.Registry, auth x.Authenticator, ctrl *Controller) {
	r.Handle(&CreateMsg{}, CreateHandler{auth: auth, ctrl: ctrl})
	r.Handle(&FundMsg{}, FundHandler{auth: auth, ctrl: ctrl})
	r.Handle(&ClaimMsg{}, ClaimHandler{auth: auth, ctrl: ctrl})
	r.Handle(&AcceptMsg{}, AcceptHandler{auth: auth, ctrl: ctrl})
	r.Handle(&RefundMsg{}, RefundHandler{auth: auth, ctrl: ctrl})
}

// signer returns the main signer address or an unauthorized error.
func signer(ctx recpm.Context, auth x.Authenticator) (recpm.Address, error) {
	s := x.MainSigner(ctx, auth)
	if s == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return s.Address(), nil
}

// blockHeight returns the current height. Bounty deadlines are measured in
// block heights so every call needs it.
func blockHeight(ctx recpm.Context) (int64, error) {
	height, ok := recpm.GetHeight(ctx)
	if !ok {
		return 0, errors.Wrap(errors.ErrHuman, "block height not present in the context")
	}
	return height, nil
}

// CreateHandler opens a new bounty funded by the signer.
type CreateHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ recpm.Handler = CreateHandler{}

func (h CreateHandler) Check(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*recpm.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &recpm.CheckResult{}, nil
}

func (h CreateHandler) Deliver(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*recpm.DeliverResult, error) {
	msg, creator, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	height, err := blockHeight(ctx)
	if err != nil {
		return nil, err
	}
	id, err := h.ctrl.Create(db, creator, msg.Project, msg.Amount, msg.DeadlineHeight, height)
	if err != nil {
		return nil, err
	}
	return &recpm.DeliverResult{Data: entityKey(msg.Project, id)}, nil
}

func (h CreateHandler) validate(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*CreateMsg, recpm.Address, error) {
	var msg CreateMsg
	if err := recpm.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	creator, err := signer(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	height, err := blockHeight(ctx)
	if err != nil {
		return nil, nil, err
	}
	if msg.DeadlineHeight <= height {
		return nil, nil, errors.Wrapf(ErrInvalidDeadline, "deadline %d not above height %d", msg.DeadlineHeight, height)
	}
	return &msg, creator, nil
}

// FundHandler adds the signer's deposit to a bounty.
type FundHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ recpm.Handler = FundHandler{}

func (h FundHandler) Check(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*recpm.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &recpm.CheckResult{}, nil
}

func (h FundHandler) Deliver(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*recpm.DeliverResult, error) {
	msg, contributor, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Fund(db, contributor, msg.Project, msg.BountyID, msg.Amount); err != nil {
		return nil, err
	}
	return &recpm.DeliverResult{}, nil
}

func (h FundHandler) validate(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*FundMsg, recpm.Address, error) {
	var msg FundMsg
	if err := recpm.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	contributor, err := signer(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, contributor, nil
}

// ClaimHandler files the signer's claim on a bounty.
type ClaimHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ recpm.Handler = ClaimHandler{}

func (h ClaimHandler) Check(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*recpm.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &recpm.CheckResult{}, nil
}

func (h ClaimHandler) Deliver(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*recpm.DeliverResult, error) {
	msg, claimer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	id, err := h.ctrl.AddClaim(db, claimer, msg.Project, msg.BountyID)
	if err != nil {
		return nil, err
	}
	return &recpm.DeliverResult{Data: entityKey(msg.Project, id)}, nil
}

func (h ClaimHandler) validate(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*ClaimMsg, recpm.Address, error) {
	var msg ClaimMsg
	if err := recpm.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	claimer, err := signer(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, claimer, nil
}

// AcceptHandler pays a bounty out to a claimer. Only the creator of the
// claimed bounty may accept.
type AcceptHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ recpm.Handler = AcceptHandler{}

func (h AcceptHandler) Check(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*recpm.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &recpm.CheckResult{}, nil
}

func (h AcceptHandler) Deliver(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*recpm.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Accept(db, caller, msg.Project, msg.ClaimID); err != nil {
		return nil, err
	}
	return &recpm.DeliverResult{}, nil
}

func (h AcceptHandler) validate(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*AcceptMsg, recpm.Address, error) {
	var msg AcceptMsg
	if err := recpm.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	caller, err := signer(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, caller, nil
}

// RefundHandler pays the signer's own contribution back after the bounty
// expired.
type RefundHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ recpm.Handler = RefundHandler{}

func (h RefundHandler) Check(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*recpm.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &recpm.CheckResult{}, nil
}

func (h RefundHandler) Deliver(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*recpm.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	height, err := blockHeight(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Refund(db, caller, msg.Project, msg.BountyID, height); err != nil {
		return nil, err
	}
	return &recpm.DeliverResult{}, nil
}

func (h RefundHandler) validate(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*RefundMsg, recpm.Address, error) {
	var msg RefundMsg
	if err := recpm.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	caller, err := signer(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, caller, nil
}
