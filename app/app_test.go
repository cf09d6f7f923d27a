package app

import (
	"context"
	"testing"
	"time"

	"github.com/recpm-network/recpm"
	"github.com/recpm-network/recpm/errors"
	"github.com/recpm-network/recpm/recpmtest"
	"github.com/recpm-network/recpm/recpmtest/assert"
	"github.com/recpm-network/recpm/store"
	"github.com/recpm-network/recpm/x/utils"
)

// writeHandler writes a fixed key/value on every call and optionally fails
// afterwards.
type writeHandler struct {
	key   []byte
	value []byte
	err   error
}

func (h *writeHandler) Check(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*recpm.CheckResult, error) {
	if err := db.Set(h.key, h.value); err != nil {
		return nil, err
	}
	return &recpm.CheckResult{}, h.err
}

func (h *writeHandler) Deliver(ctx recpm.Context, db recpm.KVStore, tx recpm.Tx) (*recpm.DeliverResult, error) {
	if err := db.Set(h.key, h.value); err != nil {
		return nil, err
	}
	return &recpm.DeliverResult{}, h.err
}

func TestRouterDispatch(t *testing.T) {
	r := NewRouter()
	h := &writeHandler{key: []byte("k"), value: []byte("v")}
	r.Handle(&recpmtest.Msg{RoutePath: "test/good"}, h)

	db := store.MemStore()

	_, err := r.Deliver(nil, db, &recpmtest.Tx{Msg: &recpmtest.Msg{RoutePath: "test/good"}})
	assert.Nil(t, err)

	_, err = r.Deliver(nil, db, &recpmtest.Tx{Msg: &recpmtest.Msg{RoutePath: "test/missing"}})
	assert.IsErr(t, errors.ErrNotFound, err)

	_, err = r.Check(nil, db, &recpmtest.Tx{Msg: &recpmtest.Msg{RoutePath: "test/missing"}})
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestRouterDuplicatePathPanics(t *testing.T) {
	r := NewRouter()
	h := &writeHandler{key: []byte("k"), value: []byte("v")}
	r.Handle(&recpmtest.Msg{RoutePath: "test/dup"}, h)
	assert.Panics(t, func() {
		r.Handle(&recpmtest.Msg{RoutePath: "test/dup"}, h)
	})
}

func TestDeliverRollsBackOnError(t *testing.T) {
	db := store.MemStore()

	r := NewRouter()
	boom := errors.ErrState.New("sabotage")
	r.Handle(&recpmtest.Msg{RoutePath: "test/fail"}, &writeHandler{
		key:   []byte("a"),
		value: []byte("1"),
		err:   boom,
	})
	r.Handle(&recpmtest.Msg{RoutePath: "test/ok"}, &writeHandler{
		key:   []byte("b"),
		value: []byte("2"),
	})

	stack := ChainDecorators(
		utils.NewRecovery(),
		utils.NewSavepoint().OnDeliver(),
	).WithHandler(r)

	application := New(db, stack, NewCtxAuth("auth"), "test-chain", nil)

	now := time.Now()
	_, err := application.Deliver(1, now, nil, &recpmtest.Tx{Msg: &recpmtest.Msg{RoutePath: "test/fail"}})
	assert.IsErr(t, errors.ErrState, err)

	// the write from the failing handler must have been discarded
	val, err := db.Get([]byte("a"))
	assert.Nil(t, err)
	assert.Nil(t, val)

	_, err = application.Deliver(2, now, nil, &recpmtest.Tx{Msg: &recpmtest.Msg{RoutePath: "test/ok"}})
	assert.Nil(t, err)
	val, err = db.Get([]byte("b"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("2"), val)
}

func TestCtxAuth(t *testing.T) {
	auth := NewCtxAuth("auth")
	alice := recpmtest.NewCondition()
	bob := recpmtest.NewCondition()

	ctx := auth.SetConditions(context.Background(), alice)
	if !auth.HasAddress(ctx, alice.Address()) {
		t.Fatal("alice must authenticate")
	}
	if auth.HasAddress(ctx, bob.Address()) {
		t.Fatal("bob must not authenticate")
	}
	assert.Equal(t, []recpm.Condition{alice}, auth.GetConditions(ctx))
}
