package token

import (
	"github.com/recpm-network/recpm"
	"github.com/recpm-network/recpm/errors"
	"github.com/recpm-network/recpm/gconf"
	"github.com/recpm-network/recpm/x"
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r recpm.Registry, auth x.Authenticator, ctrl *Controller) {
	r.Handle(&SendMsg{}, SendHandler{auth: auth, ctrl: ctrl})
	r.Handle(&ApproveMsg{}, ApproveHandler{auth: auth, ctrl: ctrl})
	r.Handle(&TransferFromMsg{}, TransferFromHandler{auth: auth, ctrl: ctrl})
	r.Handle(&BurnMsg{}, BurnHandler{auth: auth, ctrl: ctrl})
}

// loadConf returns the token configuration singleton.
func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, "token", &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}

// SendHandler moves tokens between accounts.
type SendHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ recpm.Handler = SendHandler{}

func (h SendHandler) Check(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*recpm.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &recpm.CheckResult{}, nil
}

func (h SendHandler) Deliver(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*recpm.DeliverResult, error) {
	msg, source, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.MoveTokens(db, source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &recpm.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*SendMsg, recpm.Address, error) {
	var msg SendMsg
	if err := recpm.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	source := msg.Source
	if len(source) == 0 {
		signer := x.MainSigner(ctx, h.auth)
		if signer == nil {
			return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
		}
		source = signer.Address()
	}
	if !h.auth.HasAddress(ctx, source) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "source not signed")
	}
	return &msg, source, nil
}

// ApproveHandler lets the signer grant an allowance to a spender.
type ApproveHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ recpm.Handler = ApproveHandler{}

func (h ApproveHandler) Check(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*recpm.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &recpm.CheckResult{}, nil
}

func (h ApproveHandler) Deliver(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*recpm.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.SetAllowance(db, owner, msg.Spender, msg.Amount); err != nil {
		return nil, err
	}
	return &recpm.DeliverResult{}, nil
}

func (h ApproveHandler) validate(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*ApproveMsg, recpm.Address, error) {
	var msg ApproveMsg
	if err := recpm.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return &msg, signer.Address(), nil
}

// TransferFromHandler moves tokens out of another account using the
// allowance granted to the signer.
type TransferFromHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ recpm.Handler = TransferFromHandler{}

func (h TransferFromHandler) Check(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*recpm.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &recpm.CheckResult{}, nil
}

func (h TransferFromHandler) Deliver(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*recpm.DeliverResult, error) {
	msg, spender, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.ConsumeAllowance(db, msg.Source, spender, msg.Amount); err != nil {
		return nil, err
	}
	if err := h.ctrl.MoveTokens(db, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &recpm.DeliverResult{}, nil
}

func (h TransferFromHandler) validate(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*TransferFromMsg, recpm.Address, error) {
	var msg TransferFromMsg
	if err := recpm.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return &msg, signer.Address(), nil
}

// BurnHandler destroys tokens from the admin account.
type BurnHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ recpm.Handler = BurnHandler{}

func (h BurnHandler) Check(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*recpm.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &recpm.CheckResult{}, nil
}

func (h BurnHandler) Deliver(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*recpm.DeliverResult, error) {
	msg, admin, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Burn(db, admin, msg.Amount); err != nil {
		return nil, err
	}
	return &recpm.DeliverResult{}, nil
}

func (h BurnHandler) validate(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*BurnMsg, recpm.Address, error) {
	var msg BurnMsg
	if err := recpm.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, conf.Admin) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "admin signature required")
	}
	return &msg, conf.Admin, nil
}
