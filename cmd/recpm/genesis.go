package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/recpm-network/recpm"
	"github.com/recpm-network/recpm/x/distribution"
	"github.com/recpm-network/recpm/x/token"
)

func cmdGenesis(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `Usage: recpm genesis -admin <address> [-period <duration>] [-page-size <n>]

Print a genesis document skeleton for this ledger. Extend the "token"
accounts list and the "vote" projects list before use.
`)
		fl.PrintDefaults()
	}
	adminFl := fl.String("admin", "", "Hex or bech32 address of the ledger admin.")
	periodFl := fl.Duration("period", 7*24*time.Hour, "Distribution cooldown period.")
	pageSizeFl := fl.Int64("page-size", 100, "Distribution page size.")
	flagDie(fl, args)

	admin, err := recpm.ParseAddress(*adminFl)
	if err != nil {
		return fmt.Errorf("invalid admin address: %s", err)
	}

	doc := map[string]interface{}{
		"conf": map[string]interface{}{
			"token": token.Configuration{
				Admin:    admin,
				Name:     "Receptor",
				Symbol:   "RECPM",
				Decimals: 6,
			},
			"distribution": distribution.Configuration{
				Admin:    admin,
				Period:   recpm.AsUnixDuration(*periodFl),
				PageSize: *pageSizeFl,
			},
		},
		"token": map[string]interface{}{
			"accounts": []interface{}{},
		},
		"vote": map[string]interface{}{
			"projects": []interface{}{},
		},
	}
	enc := json.NewEncoder(output)
	enc.SetIndent("", "\t")
	return enc.Encode(doc)
}
