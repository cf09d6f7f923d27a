package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"time"

	"github.com/tendermint/tendermint/libs/log"

	"github.com/recpm-network/recpm"
	"github.com/recpm-network/recpm/app"
	"github.com/recpm-network/recpm/orm"
	"github.com/recpm-network/recpm/recpmtest"
	"github.com/recpm-network/recpm/std"
	"github.com/recpm-network/recpm/x/bounty"
	"github.com/recpm-network/recpm/x/distribution"
	"github.com/recpm-network/recpm/x/token"
	"github.com/recpm-network/recpm/x/vote"
)

func cmdDemo(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `Usage: recpm demo [-genesis <path>] [-page-size <n>]

Run a complete ledger scenario on an in memory application, a vote
distribution, voting, a token distribution and a bounty roundtrip.
The distributions are driven page by page the way an operator loop
would, printing the progress of every page.
`)
		fl.PrintDefaults()
	}
	genesisFl := fl.String("genesis", "", "Path to a genesis document. A built in demo genesis is used when not set.")
	pageSizeFl := fl.Int64("page-size", 2, "Distribution page size, low values show the pagination at work.")
	flagDie(fl, args)

	logger := log.NewTMLogger(log.NewSyncWriter(os.Stderr))
	application, ledger := std.NewApplication("recpm-demo-1", logger)

	admin := recpmtest.NewCondition()
	alice := recpmtest.NewCondition()
	bob := recpmtest.NewCondition()
	carl := recpmtest.NewCondition()
	projectA := recpmtest.NewAddress()
	projectB := recpmtest.NewAddress()

	genesis, err := demoGenesis(*genesisFl, admin.Address(), *pageSizeFl, []genesisAccount{
		{Address: alice.Address(), Balance: 8_600_000_000},
		{Address: bob.Address(), Balance: 900_000_000},
		{Address: carl.Address(), Balance: 500_000_000},
	})
	if err != nil {
		return fmt.Errorf("cannot build genesis: %s", err)
	}
	if err := application.InitGenesis(genesis, std.Initializers()...); err != nil {
		return fmt.Errorf("cannot initialize genesis: %s", err)
	}

	run := &demoRun{
		out:         output,
		app:         application,
		ledger:      ledger,
		height:      1,
		now:         time.Now(),
		balanceAddr: map[string]recpm.Address{"alice": alice.Address(), "bob": bob.Address(), "carl": carl.Address(), "project-a": projectA, "project-b": projectB},
	}

	run.say("registering two projects")
	run.deliver(&vote.RegisterProjectMsg{Project: projectA}, alice)
	run.deliver(&vote.RegisterProjectMsg{Project: projectB}, bob)

	run.say("distributing 1000 vote credits across all holders")
	run.distribute(&distribution.DistributeVotesMsg{Pool: 1000}, admin)
	run.credits(alice.Address(), bob.Address(), carl.Address())

	run.say("casting votes")
	run.deliver(&vote.VoteMsg{Project: projectA, Votes: 600}, alice)
	run.deliver(&vote.VoteMsg{Project: projectB, Votes: 200}, alice)
	run.deliver(&vote.VoteMsg{Project: projectA, Votes: 90}, bob)

	run.say("minting 50_000_000 tokens across the projects")
	run.distribute(&distribution.DistributeTokensMsg{Pool: 50_000_000}, admin)
	run.balances()

	run.say("running a bounty, created by bob, funded by carl, claimed by alice")
	run.deliver(&bounty.CreateMsg{Project: projectA, Amount: 100_000_000, DeadlineHeight: run.height + 1000}, bob)
	run.deliver(&bounty.FundMsg{Project: projectA, BountyID: 1, Amount: 20_000_000}, carl)
	run.deliver(&bounty.ClaimMsg{Project: projectA, BountyID: 1}, alice)
	run.deliver(&bounty.AcceptMsg{Project: projectA, ClaimID: 1}, bob)
	run.balances()

	run.say("demo complete")
	return nil
}

type demoRun struct {
	out         io.Writer
	app         *app.Application
	ledger      *std.Ledger
	height      int64
	now         time.Time
	balanceAddr map[string]recpm.Address
}

func (r *demoRun) say(msg string) {
	fmt.Fprintf(r.out, "\n# %s\n", msg)
}

func (r *demoRun) deliver(msg recpm.Msg, signer recpm.Condition) *recpm.DeliverResult {
	r.height++
	res, err := r.app.Deliver(r.height, r.now, []recpm.Condition{signer}, &std.Tx{Msg: msg})
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot deliver %T: %+v\n", msg, err)
		os.Exit(1)
	}
	return res
}

// distribute keeps delivering the distribution message until the run
// reports completion, the way an operator loop does.
func (r *demoRun) distribute(msg recpm.Msg, signer recpm.Condition) {
	for page := 1; ; page++ {
		res := r.deliver(msg, signer)
		left := orm.DecodeSequence(res.Data)
		fmt.Fprintf(r.out, "  page %d done, %s\n", page, res.Log)
		if left == 0 {
			return
		}
	}
}

func (r *demoRun) credits(addrs ...recpm.Address) {
	for name, addr := range r.balanceAddr {
		for _, a := range addrs {
			if !a.Equals(addr) {
				continue
			}
			credit, err := r.ledger.Tokens.VoteCredit(r.app.Store(), addr)
			if err != nil {
				fmt.Fprintf(os.Stderr, "cannot get credit: %s\n", err)
				os.Exit(1)
			}
			fmt.Fprintf(r.out, "  %-10s %d votes to use\n", name, credit)
		}
	}
}

func (r *demoRun) balances() {
	for name, addr := range r.balanceAddr {
		balance, err := r.ledger.Tokens.Balance(r.app.Store(), addr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot get balance: %s\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(r.out, "  %-10s %d\n", name, balance)
	}
}

type genesisAccount struct {
	Address recpm.Address `json:"address"`
	Balance uint64        `json:"balance"`
}

// demoGenesis loads the genesis document from the given path, or builds the
// default demo one with the given admin and accounts.
func demoGenesis(path string, admin recpm.Address, pageSize int64, accounts []genesisAccount) (recpm.Options, error) {
	if path != "" {
		raw, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("cannot read %q: %s", path, err)
		}
		var opts recpm.Options
		if err := json.Unmarshal(raw, &opts); err != nil {
			return nil, fmt.Errorf("cannot parse %q: %s", path, err)
		}
		return opts, nil
	}

	conf, err := json.Marshal(map[string]interface{}{
		"token": token.Configuration{
			Admin:    admin,
			Name:     "Receptor",
			Symbol:   "RECPM",
			Decimals: 6,
		},
		"distribution": distribution.Configuration{
			Admin:    admin,
			Period:   recpm.AsUnixDuration(7 * 24 * time.Hour),
			PageSize: pageSize,
		},
	})
	if err != nil {
		return nil, err
	}
	tokenOpts, err := json.Marshal(map[string]interface{}{"accounts": accounts})
	if err != nil {
		return nil, err
	}
	return recpm.Options{
		"conf":  conf,
		"token": tokenOpts,
	}, nil
}
