package distribution

import (
	"fmt"

	"github.com/recpm-network/recpm"
	"github.com/recpm-network/recpm/errors"
	"github.com/recpm-network/recpm/gconf"
	"github.com/recpm-network/recpm/orm"
	"github.com/recpm-network/recpm/x"
	"github.com/recpm-network/recpm/x/token"
	"github.com/recpm-network/recpm/x/vote"
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r recpm.Registry, auth x.Authenticator, tokens *token.Controller, votes *vote.Controller) {
	votesEngine := NewEngine(votesRunKey, NewHolderPopulation(tokens))
	tokensEngine := NewEngine(tokensRunKey, NewProjectPopulation(votes, tokens))

	r.Handle(&DistributeVotesMsg{}, DistributeHandler{
		auth:   auth,
		engine: votesEngine,
		other:  tokensEngine,
		newMsg: func() distributeMsg { return &DistributeVotesMsg{} },
	})
	r.Handle(&DistributeTokensMsg{}, DistributeHandler{
		auth:   auth,
		engine: tokensEngine,
		other:  votesEngine,
		newMsg: func() distributeMsg { return &DistributeTokensMsg{} },
	})
	r.Handle(&SetPageSizeMsg{}, SetPageSizeHandler{
		auth:    auth,
		engines: []*Engine{votesEngine, tokensEngine},
	})
}

// loadConf returns the distribution configuration singleton.
func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, "distribution", &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}

// distributeMsg is implemented by both distribution trigger messages.
type distributeMsg interface {
	recpm.Msg
	GetPool() uint64
}

func (m *DistributeVotesMsg) GetPool() uint64 {
	return m.Pool
}

func (m *DistributeTokensMsg) GetPool() uint64 {
	return m.Pool
}

// DistributeHandler runs one page of a distribution instance per call.
type DistributeHandler struct {
	auth   x.Authenticator
	engine *Engine
	other  *Engine
	newMsg func() distributeMsg
}

var _ recpm.Handler = DistributeHandler{}

func (h DistributeHandler) Check(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*recpm.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	now, err := blockNow(ctx)
	if err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if err := h.engine.CheckDistribute(db, now, conf.Period); err != nil {
		return nil, err
	}
	return &recpm.CheckResult{}, nil
}

func (h DistributeHandler) Deliver(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*recpm.DeliverResult, error) {
	msg, conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := blockNow(ctx)
	if err != nil {
		return nil, err
	}
	run, left, err := h.engine.Distribute(db, now, msg.GetPool(), conf.Period, conf.PageSize)
	if err != nil {
		return nil, err
	}
	res := recpm.DeliverResult{
		// The page counter lets the operator loop until zero.
		Data: orm.EncodeSequence(left),
	}
	if run.InProgress {
		res.Log = fmt.Sprintf("distribution mid-flight, %d pages left", left)
	} else {
		res.Log = "distribution complete"
	}
	return &res, nil
}

func (h DistributeHandler) validate(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (distributeMsg, *Configuration, error) {
	msg := h.newMsg()
	if err := recpm.LoadMsg(tx, msg); err != nil {
		return nil, nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, conf.Admin) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "admin signature required")
	}
	// Two instances must never be mid-flight at once, they read each
	// other's frozen basis.
	otherRun, err := h.other.Run(db)
	if err != nil {
		return nil, nil, err
	}
	if otherRun.InProgress {
		return nil, nil, errors.Wrap(ErrInProgress, "other distribution mid-flight")
	}
	return msg, conf, nil
}

// SetPageSizeHandler changes the configured page size.
type SetPageSizeHandler struct {
	auth    x.Authenticator
	engines []*Engine
}

var _ recpm.Handler = SetPageSizeHandler{}

func (h SetPageSizeHandler) Check(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*recpm.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &recpm.CheckResult{}, nil
}

func (h SetPageSizeHandler) Deliver(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*recpm.DeliverResult, error) {
	msg, conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	conf.PageSize = msg.PageSize
	if err := gconf.Save(db, "distribution", conf); err != nil {
		return nil, err
	}
	return &recpm.DeliverResult{}, nil
}

func (h SetPageSizeHandler) validate(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*SetPageSizeMsg, *Configuration, error) {
	var msg SetPageSizeMsg
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
	for _, e := range h.engines {
		run, err := e.Run(db)
		if err != nil {
			return nil, nil, err
		}
		if run.InProgress {
			return nil, nil, errors.Wrap(ErrInProgress, "cannot resize mid-flight")
		}
	}
	return &msg, conf, nil
}

func blockNow(ctx recpm.Context) (recpm.UnixTime, error) {
	t, ok := recpm.BlockTime(ctx)
	if !ok {
		return 0, errors.Wrap(errors.ErrHuman, "block time missing in context")
	}
	return recpm.AsUnixTime(t), nil
}
