package bounty

import (
	"context"
	"testing"

	"github.com/recpm-network/recpm"
	"github.com/recpm-network/recpm/app"
	"github.com/recpm-network/recpm/errors"
	"github.com/recpm-network/recpm/recpmtest"
	"github.com/recpm-network/recpm/store"
	"github.com/recpm-network/recpm/x/token"
	"github.com/recpm-network/recpm/x/vote"
)

type fixture struct {
	t      *testing.T
	db     recpm.CacheableKVStore
	rt     *app.Router
	tokens *token.Controller
	ctrl   *Controller
	height int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := store.MemStore()
	tokens := token.NewController(nil)
	votes := vote.NewController(tokens, nil)
	ctrl := NewController(tokens, votes)

	rt := app.NewRouter()
	auth := &recpmtest.CtxAuth{Key: "auth"}
	token.RegisterRoutes(rt, auth, tokens)
	vote.RegisterRoutes(rt, auth, votes)
	RegisterRoutes(rt, auth, ctrl)

	return &fixture{
		t:      t,
		db:     db,
		rt:     rt,
		tokens: tokens,
		ctrl:   ctrl,
		height: 100,
	}
}

func (f *fixture) ctx(signers ...recpm.Condition) recpm.Context {
	ctx := recpm.WithHeight(context.Background(), f.height)
	ctx = recpm.WithChainID(ctx, "testchain-123")
	auth := &recpmtest.CtxAuth{Key: "auth"}
	return auth.SetConditions(ctx, signers...)
}

func (f *fixture) deliver(msg recpm.Msg, signers ...recpm.Condition) error {
	f.t.Helper()
	cache := f.db.CacheWrap()
	_, err := f.rt.Deliver(f.ctx(signers...), cache, &recpmtest.Tx{Msg: msg})
	if err != nil {
		cache.Discard()
		return err
	}
	if werr := cache.Write(); werr != nil {
		f.t.Fatalf("cannot write cache: %s", werr)
	}
	return nil
}

func (f *fixture) mustDeliver(msg recpm.Msg, signers ...recpm.Condition) {
	f.t.Helper()
	if err := f.deliver(msg, signers...); err != nil {
		f.t.Fatalf("cannot deliver %T: %+v", msg, err)
	}
}

func (f *fixture) registerProject(project recpm.Address) {
	f.t.Helper()
	f.mustDeliver(&vote.RegisterProjectMsg{Project: project}, recpmtest.NewCondition())
}

func (f *fixture) mint(addr recpm.Address, amount uint64) {
	f.t.Helper()
	if err := f.tokens.Mint(f.db, addr, amount); err != nil {
		f.t.Fatalf("cannot mint: %s", err)
	}
}

func (f *fixture) balance(addr recpm.Address) uint64 {
	f.t.Helper()
	b, err := f.tokens.Balance(f.db, addr)
	if err != nil {
		f.t.Fatalf("cannot get balance: %s", err)
	}
	return b
}

func (f *fixture) locked(addr recpm.Address) uint64 {
	f.t.Helper()
	l, err := f.tokens.LockedBalance(f.db, addr)
	if err != nil {
		f.t.Fatalf("cannot get locked balance: %s", err)
	}
	return l
}

func TestBountyAcceptPaysClaimer(t *testing.T) {
	f := newFixture(t)

	creator := recpmtest.NewCondition()
	funderX := recpmtest.NewCondition()
	funderY := recpmtest.NewCondition()
	claimer := recpmtest.NewCondition()
	project := recpmtest.NewAddress()

	f.registerProject(project)
	f.mint(creator.Address(), 100_000_000)
	f.mint(funderX.Address(), 20_000_000)
	f.mint(funderY.Address(), 30_000_000)

	f.mustDeliver(&CreateMsg{Project: project, Amount: 100_000_000, DeadlineHeight: 200}, creator)
	f.mustDeliver(&FundMsg{Project: project, BountyID: 1, Amount: 20_000_000}, funderX)
	f.mustDeliver(&FundMsg{Project: project, BountyID: 1, Amount: 30_000_000}, funderY)

	b, err := f.ctrl.GetBounty(f.db, project, 1)
	if err != nil {
		t.Fatalf("cannot get bounty: %s", err)
	}
	if b.Total != 150_000_000 {
		t.Fatalf("unexpected total: %d", b.Total)
	}
	if got := f.balance(EscrowAddress(project, 1)); got != 150_000_000 {
		t.Fatalf("unexpected escrow balance: %d", got)
	}
	// every contributor's locked aggregate matches its deposit
	if got := f.locked(creator.Address()); got != 100_000_000 {
		t.Fatalf("unexpected locked balance of creator: %d", got)
	}
	if got := f.locked(funderX.Address()); got != 20_000_000 {
		t.Fatalf("unexpected locked balance of x: %d", got)
	}

	f.mustDeliver(&ClaimMsg{Project: project, BountyID: 1}, claimer)

	// only the creator can accept
	err = f.deliver(&AcceptMsg{Project: project, ClaimID: 1}, funderX)
	if !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("stranger acceptance must be rejected, got %+v", err)
	}

	f.mustDeliver(&AcceptMsg{Project: project, ClaimID: 1}, creator)

	if got := f.balance(claimer.Address()); got != 150_000_000 {
		t.Errorf("unexpected claimer balance: %d", got)
	}
	if got := f.balance(EscrowAddress(project, 1)); got != 0 {
		t.Errorf("escrow not drained: %d", got)
	}
	for _, addr := range []recpm.Address{creator.Address(), funderX.Address(), funderY.Address()} {
		if got := f.locked(addr); got != 0 {
			t.Errorf("locked balance of %s not released: %d", addr, got)
		}
	}

	b, err = f.ctrl.GetBounty(f.db, project, 1)
	if err != nil {
		t.Fatalf("cannot get bounty: %s", err)
	}
	if b.Active || !b.Claimed || b.Refunded {
		t.Errorf("unexpected bounty state: %+v", b)
	}
	cl, err := f.ctrl.GetClaim(f.db, project, 1)
	if err != nil {
		t.Fatalf("cannot get claim: %s", err)
	}
	if !cl.Successful {
		t.Errorf("claim not marked successful")
	}

	// a settled bounty cannot be funded, claimed or accepted again
	if err := f.deliver(&FundMsg{Project: project, BountyID: 1, Amount: 1}, funderY); !ErrInvalidBounty.Is(err) {
		t.Errorf("funding a settled bounty must be rejected, got %+v", err)
	}
	if err := f.deliver(&ClaimMsg{Project: project, BountyID: 1}, claimer); !ErrInvalidBounty.Is(err) {
		t.Errorf("claiming a settled bounty must be rejected, got %+v", err)
	}
	if err := f.deliver(&AcceptMsg{Project: project, ClaimID: 1}, creator); !ErrInvalidBounty.Is(err) {
		t.Errorf("accepting a settled bounty must be rejected, got %+v", err)
	}
}

func TestBountyRefunds(t *testing.T) {
	f := newFixture(t)

	creator := recpmtest.NewCondition()
	funder := recpmtest.NewCondition()
	stranger := recpmtest.NewCondition()
	project := recpmtest.NewAddress()

	f.registerProject(project)
	f.mint(creator.Address(), 100)
	f.mint(funder.Address(), 50)

	f.mustDeliver(&CreateMsg{Project: project, Amount: 100, DeadlineHeight: 200}, creator)
	f.mustDeliver(&FundMsg{Project: project, BountyID: 1, Amount: 50}, funder)

	// before the deadline nothing is refundable
	err := f.deliver(&RefundMsg{Project: project, BountyID: 1}, funder)
	if !ErrNotExpired.Is(err) {
		t.Fatalf("early refund must be rejected, got %+v", err)
	}

	f.height = 200

	// an outsider cannot reclaim anything, and the failed call must not
	// settle the bounty either
	err = f.deliver(&RefundMsg{Project: project, BountyID: 1}, stranger)
	if !ErrNotContributor.Is(err) {
		t.Fatalf("stranger refund must be rejected, got %+v", err)
	}
	b, err := f.ctrl.GetBounty(f.db, project, 1)
	if err != nil {
		t.Fatalf("cannot get bounty: %s", err)
	}
	if !b.Active {
		t.Fatalf("failed refund settled the bounty")
	}

	// the first successful refund settles the bounty
	f.mustDeliver(&RefundMsg{Project: project, BountyID: 1}, funder)
	b, err = f.ctrl.GetBounty(f.db, project, 1)
	if err != nil {
		t.Fatalf("cannot get bounty: %s", err)
	}
	if b.Active || b.Claimed || !b.Refunded {
		t.Fatalf("unexpected bounty state: %+v", b)
	}
	if got := f.balance(funder.Address()); got != 50 {
		t.Errorf("unexpected funder balance: %d", got)
	}
	if got := f.locked(funder.Address()); got != 0 {
		t.Errorf("funder locked balance not released: %d", got)
	}

	// each contributor reclaims its own share exactly once
	err = f.deliver(&RefundMsg{Project: project, BountyID: 1}, funder)
	if !ErrAlreadyRefunded.Is(err) {
		t.Fatalf("second refund must be rejected, got %+v", err)
	}
	f.mustDeliver(&RefundMsg{Project: project, BountyID: 1}, creator)
	if got := f.balance(creator.Address()); got != 100 {
		t.Errorf("unexpected creator balance: %d", got)
	}
	if got := f.balance(EscrowAddress(project, 1)); got != 0 {
		t.Errorf("escrow not drained: %d", got)
	}

	// a refunded bounty cannot be claimed
	if err := f.deliver(&ClaimMsg{Project: project, BountyID: 1}, stranger); !ErrInvalidBounty.Is(err) {
		t.Errorf("claiming a refunded bounty must be rejected, got %+v", err)
	}
}

func TestBountyRefundAfterClaim(t *testing.T) {
	f := newFixture(t)

	creator := recpmtest.NewCondition()
	claimer := recpmtest.NewCondition()
	project := recpmtest.NewAddress()

	f.registerProject(project)
	f.mint(creator.Address(), 100)

	f.mustDeliver(&CreateMsg{Project: project, Amount: 100, DeadlineHeight: 200}, creator)
	f.mustDeliver(&ClaimMsg{Project: project, BountyID: 1}, claimer)
	f.mustDeliver(&AcceptMsg{Project: project, ClaimID: 1}, creator)

	f.height = 300
	err := f.deliver(&RefundMsg{Project: project, BountyID: 1}, creator)
	if !ErrAlreadyClaimed.Is(err) {
		t.Fatalf("refund of a claimed bounty must be rejected, got %+v", err)
	}
}

func TestBountyCreateValidation(t *testing.T) {
	f := newFixture(t)

	creator := recpmtest.NewCondition()
	project := recpmtest.NewAddress()
	f.mint(creator.Address(), 100)

	// the project must be registered first
	err := f.deliver(&CreateMsg{Project: project, Amount: 100, DeadlineHeight: 200}, creator)
	if !vote.ErrNotRegistered.Is(err) {
		t.Fatalf("unregistered project must be rejected, got %+v", err)
	}

	f.registerProject(project)

	// the deadline must be strictly in the future
	err = f.deliver(&CreateMsg{Project: project, Amount: 100, DeadlineHeight: f.height}, creator)
	if !ErrInvalidDeadline.Is(err) {
		t.Fatalf("past deadline must be rejected, got %+v", err)
	}

	// the deposit must be covered
	err = f.deliver(&CreateMsg{Project: project, Amount: 101, DeadlineHeight: 200}, creator)
	if !token.ErrInsufficientFunds.Is(err) {
		t.Fatalf("uncovered deposit must be rejected, got %+v", err)
	}

	// funding an unknown bounty fails
	err = f.deliver(&FundMsg{Project: project, BountyID: 5, Amount: 10}, creator)
	if !ErrInvalidBounty.Is(err) {
		t.Fatalf("unknown bounty must be rejected, got %+v", err)
	}
	// so does accepting an unknown claim
	err = f.deliver(&AcceptMsg{Project: project, ClaimID: 5}, creator)
	if !ErrInvalidClaim.Is(err) {
		t.Fatalf("unknown claim must be rejected, got %+v", err)
	}
}

func TestBountySequencesPerProject(t *testing.T) {
	f := newFixture(t)

	creator := recpmtest.NewCondition()
	projectA := recpmtest.NewAddress()
	projectB := recpmtest.NewAddress()

	f.registerProject(projectA)
	f.registerProject(projectB)
	f.mint(creator.Address(), 100)

	f.mustDeliver(&CreateMsg{Project: projectA, Amount: 10, DeadlineHeight: 200}, creator)
	f.mustDeliver(&CreateMsg{Project: projectA, Amount: 10, DeadlineHeight: 200}, creator)
	f.mustDeliver(&CreateMsg{Project: projectB, Amount: 10, DeadlineHeight: 200}, creator)

	na, err := f.ctrl.BountyCount(f.db, projectA)
	if err != nil {
		t.Fatalf("cannot count bounties: %s", err)
	}
	nb, err := f.ctrl.BountyCount(f.db, projectB)
	if err != nil {
		t.Fatalf("cannot count bounties: %s", err)
	}
	if na != 2 || nb != 1 {
		t.Fatalf("unexpected bounty counts: %d, %d", na, nb)
	}

	// ids are scoped to the project, both start at 1
	if _, err := f.ctrl.GetBounty(f.db, projectB, 1); err != nil {
		t.Fatalf("cannot get bounty: %s", err)
	}
	if _, err := f.ctrl.GetBounty(f.db, projectB, 2); !ErrInvalidBounty.Is(err) {
		t.Fatalf("unexpected bounty lookup result: %+v", err)
	}
}
