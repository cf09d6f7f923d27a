package token

import (
	"context"
	"testing"

	"github.com/recpm-network/recpm"
	"github.com/recpm-network/recpm/app"
	"github.com/recpm-network/recpm/errors"
	"github.com/recpm-network/recpm/gconf"
	"github.com/recpm-network/recpm/recpmtest"
	"github.com/recpm-network/recpm/store"
)

func TestHandlers(t *testing.T) {
	admin := recpmtest.NewCondition()
	alice := recpmtest.NewCondition()
	bob := recpmtest.NewCondition()
	carl := recpmtest.NewCondition()

	rt := newTestRouter()

	cases := map[string]struct {
		// prepareAccounts sets the initial balance of each account.
		prepareAccounts []account
		// actions is a set of messages routed through the handlers.
		actions []action
		// wantAccounts is the desired state after all actions.
		wantAccounts []account
		wantSupply   uint64
		wantHolders  []recpm.Address
	}{
		"simple transfer": {
			prepareAccounts: []account{
				{address: alice.Address(), balance: 100},
			},
			actions: []action{
				{
					conditions: []recpm.Condition{alice},
					msg: &SendMsg{
						Destination: bob.Address(),
						Amount:      30,
					},
					blocksize: 100,
				},
			},
			wantAccounts: []account{
				{address: alice.Address(), balance: 70},
				{address: bob.Address(), balance: 30},
			},
			wantSupply:  100,
			wantHolders: []recpm.Address{alice.Address(), bob.Address()},
		},
		"transfer of more than the balance": {
			prepareAccounts: []account{
				{address: alice.Address(), balance: 10},
			},
			actions: []action{
				{
					conditions: []recpm.Condition{alice},
					msg: &SendMsg{
						Destination: bob.Address(),
						Amount:      11,
					},
					blocksize:      100,
					wantDeliverErr: ErrInsufficientFunds,
				},
			},
			wantAccounts: []account{
				{address: alice.Address(), balance: 10},
				{address: bob.Address(), balance: 0},
			},
			wantSupply: 10,
		},
		"transfer from a not signed source": {
			prepareAccounts: []account{
				{address: alice.Address(), balance: 10},
			},
			actions: []action{
				{
					conditions: []recpm.Condition{bob},
					msg: &SendMsg{
						Source:      alice.Address(),
						Destination: bob.Address(),
						Amount:      5,
					},
					blocksize:      100,
					wantCheckErr:   errors.ErrUnauthorized,
					wantDeliverErr: errors.ErrUnauthorized,
				},
			},
			wantAccounts: []account{
				{address: alice.Address(), balance: 10},
			},
			wantSupply: 10,
		},
		"allowance consumed by transfer from": {
			prepareAccounts: []account{
				{address: alice.Address(), balance: 100},
			},
			actions: []action{
				{
					conditions: []recpm.Condition{alice},
					msg: &ApproveMsg{
						Spender: bob.Address(),
						Amount:  40,
					},
					blocksize: 100,
				},
				{
					conditions: []recpm.Condition{bob},
					msg: &TransferFromMsg{
						Source:      alice.Address(),
						Destination: carl.Address(),
						Amount:      25,
					},
					blocksize: 101,
				},
				// only 15 left on the allowance
				{
					conditions: []recpm.Condition{bob},
					msg: &TransferFromMsg{
						Source:      alice.Address(),
						Destination: carl.Address(),
						Amount:      16,
					},
					blocksize:      102,
					wantDeliverErr: ErrInsufficientAllowance,
				},
				{
					conditions: []recpm.Condition{bob},
					msg: &TransferFromMsg{
						Source:      alice.Address(),
						Destination: carl.Address(),
						Amount:      15,
					},
					blocksize: 103,
				},
			},
			wantAccounts: []account{
				{address: alice.Address(), balance: 60},
				{address: carl.Address(), balance: 40},
			},
			wantSupply: 100,
		},
		"burn requires the admin": {
			prepareAccounts: []account{
				{address: admin.Address(), balance: 500},
				{address: alice.Address(), balance: 100},
			},
			actions: []action{
				{
					conditions: []recpm.Condition{alice},
					msg: &BurnMsg{
						Amount: 10,
					},
					blocksize:      100,
					wantCheckErr:   errors.ErrUnauthorized,
					wantDeliverErr: errors.ErrUnauthorized,
				},
				{
					conditions: []recpm.Condition{admin},
					msg: &BurnMsg{
						Amount: 200,
					},
					blocksize: 101,
				},
			},
			wantAccounts: []account{
				{address: admin.Address(), balance: 300},
				{address: alice.Address(), balance: 100},
			},
			wantSupply: 400,
		},
		"burn of more than the admin balance": {
			prepareAccounts: []account{
				{address: admin.Address(), balance: 5},
			},
			actions: []action{
				{
					conditions: []recpm.Condition{admin},
					msg: &BurnMsg{
						Amount: 6,
					},
					blocksize:      100,
					wantDeliverErr: ErrInsufficientFunds,
				},
			},
			wantAccounts: []account{
				{address: admin.Address(), balance: 5},
			},
			wantSupply: 5,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController(nil)

			mustSaveConf(t, db, admin.Address())
			for _, a := range tc.prepareAccounts {
				if err := ctrl.Mint(db, a.address, a.balance); err != nil {
					t.Fatalf("cannot issue %d to %s: %s", a.balance, a.address, err)
				}
			}

			runActions(t, rt, db, tc.actions)

			for i, a := range tc.wantAccounts {
				balance, err := ctrl.Balance(db, a.address)
				if err != nil {
					t.Fatalf("cannot get %s balance: %s", a.address, err)
				}
				if balance != a.balance {
					t.Errorf("unexpected balance for account #%d (%s): want %d, got %d", i, a.address, a.balance, balance)
				}
			}
			supply, err := ctrl.TotalSupply(db)
			if err != nil {
				t.Fatalf("cannot get total supply: %s", err)
			}
			if supply != tc.wantSupply {
				t.Errorf("unexpected total supply: want %d, got %d", tc.wantSupply, supply)
			}
			if tc.wantHolders != nil {
				count, err := ctrl.HolderCount(db)
				if err != nil {
					t.Fatalf("cannot count holders: %s", err)
				}
				if int(count) != len(tc.wantHolders) {
					t.Fatalf("unexpected holder count: want %d, got %d", len(tc.wantHolders), count)
				}
				for i, want := range tc.wantHolders {
					got, err := ctrl.HolderAt(db, int64(i))
					if err != nil {
						t.Fatalf("cannot get holder #%d: %s", i, err)
					}
					if !got.Equals(want) {
						t.Errorf("unexpected holder #%d: want %s, got %s", i, want, got)
					}
				}
			}
		})
	}
}

func newTestRouter() recpm.Handler {
	rt := app.NewRouter()
	auth := &recpmtest.CtxAuth{Key: "auth"}
	RegisterRoutes(rt, auth, NewController(nil))
	return rt
}

// account represents a single account state.
type account struct {
	address recpm.Address
	balance uint64
}

// action represents a single request call that is handled by a handler.
type action struct {
	conditions     []recpm.Condition
	msg            recpm.Msg
	blocksize      int64
	wantCheckErr   *errors.Error
	wantDeliverErr *errors.Error
}

func (a *action) tx() recpm.Tx {
	return &recpmtest.Tx{Msg: a.msg}
}

func (a *action) ctx() recpm.Context {
	ctx := recpm.WithHeight(context.Background(), a.blocksize)
	ctx = recpm.WithChainID(ctx, "testchain-123")
	auth := &recpmtest.CtxAuth{Key: "auth"}
	return auth.SetConditions(ctx, a.conditions...)
}

func runActions(t *testing.T, rt recpm.Handler, db recpm.CacheableKVStore, actions []action) {
	t.Helper()
	for i, a := range actions {
		cache := db.CacheWrap()
		if _, err := rt.Check(a.ctx(), cache, a.tx()); !a.wantCheckErr.Is(err) {
			t.Logf("want: %+v", a.wantCheckErr)
			t.Logf(" got: %+v", err)
			t.Fatalf("action %d check (%T)", i, a.msg)
		}
		cache.Discard()
		if a.wantCheckErr != nil {
			// Failed checks are causing the message to be ignored.
			continue
		}

		cache = db.CacheWrap()
		if _, err := rt.Deliver(a.ctx(), cache, a.tx()); !a.wantDeliverErr.Is(err) {
			t.Logf("want: %+v", a.wantDeliverErr)
			t.Logf(" got: %+v", err)
			t.Fatalf("action %d delivery (%T)", i, a.msg)
		} else if err != nil {
			cache.Discard()
			continue
		}
		if err := cache.Write(); err != nil {
			t.Fatalf("cannot write cache: %s", err)
		}
	}
}

func mustSaveConf(t *testing.T, db recpm.KVStore, admin recpm.Address) {
	t.Helper()
	conf := Configuration{
		Admin:    admin,
		Name:     "Receptor",
		Symbol:   "RECPM",
		Decimals: 6,
	}
	if err := gconf.Save(db, "token", &conf); err != nil {
		t.Fatalf("cannot save configuration: %s", err)
	}
}
