package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"

	"github.com/recpm-network/recpm/crypto"
)

func cmdKeygen(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `Usage: recpm keygen [-hrp <prefix>]

Generate a new ed25519 key and print its private key, public key and
ledger address.
`)
		fl.PrintDefaults()
	}
	hrpFl := fl.String("hrp", "recpm", "Human readable part of the bech32 address representation.")
	flagDie(fl, args)

	priv := crypto.GenPrivKeyEd25519()
	pub := priv.PublicKey()
	addr := pub.Address()
	bech, err := addr.Bech32(*hrpFl)
	if err != nil {
		return fmt.Errorf("cannot encode address: %s", err)
	}

	fmt.Fprintf(output, "private key: %s\n", hex.EncodeToString(priv.Ed25519))
	fmt.Fprintf(output, "public key:  %s\n", hex.EncodeToString(pub.Ed25519))
	fmt.Fprintf(output, "address:     %s\n", addr)
	fmt.Fprintf(output, "bech32:      %s\n", bech)
	return nil
}
