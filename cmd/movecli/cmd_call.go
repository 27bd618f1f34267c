// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gitlab.com/accumulatenetwork/moveclient/pkg/errors"
	"gitlab.com/accumulatenetwork/moveclient/pkg/move"
)

var cmdCall = &cobra.Command{
	Use:   "call [function] [type:value...]",
	Short: "Call an entry function",
	Long: `Call an entry function, for example:

  movecli call 0x1::coin::transfer address:0xb0b u64:10000 --type-arg 0x1::aptos_coin::AptosCoin

Argument types are bool, u8, u16, u32, u64, u128, address, string, and hex
(vector<u8>).`,
	Args: cobra.MinimumNArgs(1),
	Run:  callFunction,
}

var flagCall struct {
	TypeArgs []string
	Simulate bool
	NoWait   bool
}

func init() {
	cmdMain.AddCommand(cmdCall)
	cmdCall.Flags().StringArrayVarP(&flagCall.TypeArgs, "type-arg", "T", nil, "Type argument (repeatable)")
	cmdCall.Flags().BoolVar(&flagCall.Simulate, "simulate", false, "Simulate the call instead of submitting it")
	cmdCall.Flags().BoolVar(&flagCall.NoWait, "no-wait", false, "Return once the transaction is submitted")
}

func callFunction(cmd *cobra.Command, args []string) {
	c, cfg, done := openClient(cmd.Context())
	defer done()
	sender := signer(cfg)

	var values []any
	for _, s := range args[1:] {
		v, err := parseCallArg(s)
		check(err)
		values = append(values, v)
	}

	var typeArgs []any
	for _, s := range flagCall.TypeArgs {
		typeArgs = append(typeArgs, s)
	}

	b := c.Call(args[0]).WithTypeArgs(typeArgs...).WithArgs(values...)
	switch {
	case flagCall.Simulate:
		res, err := c.Simulate(cmd.Context(), sender, b)
		check(err)
		if flagMain.JSON {
			printJSON(cmd, res)
			return
		}
		state := "Success"
		if !res.Success {
			state = "Failure"
		}
		cmd.Printf("%s: %s\n", state, res.VMStatus)
		cmd.Printf("  Gas used: %s\n", humanize.Comma(int64(res.GasUsed)))

	case flagCall.NoWait:
		out, err := c.SubmitTransaction(cmd.Context(), sender, b)
		printOutcome(cmd, out, err)

	default:
		out, err := c.Execute(cmd.Context(), sender, b)
		printOutcome(cmd, out, err)
	}
}

func parseCallArg(s string) (any, error) {
	typ, val, ok := strings.Cut(s, ":")
	if !ok {
		return nil, errors.BadRequest.WithFormat("argument %q is not type:value", s)
	}

	switch typ {
	case "bool":
		v, err := strconv.ParseBool(val)
		return v, wrapArg(s, err)
	case "u8":
		v, err := strconv.ParseUint(val, 0, 8)
		return uint8(v), wrapArg(s, err)
	case "u16":
		v, err := strconv.ParseUint(val, 0, 16)
		return uint16(v), wrapArg(s, err)
	case "u32":
		v, err := strconv.ParseUint(val, 0, 32)
		return uint32(v), wrapArg(s, err)
	case "u64":
		v, err := strconv.ParseUint(val, 0, 64)
		return v, wrapArg(s, err)
	case "u128":
		v, err := move.ParseU128(val)
		return v, wrapArg(s, err)
	case "address":
		v, err := move.ParseAddress(val)
		return v, wrapArg(s, err)
	case "string":
		return val, nil
	case "hex":
		v, err := hex.DecodeString(strings.TrimPrefix(val, "0x"))
		return v, wrapArg(s, err)
	default:
		return nil, errors.BadRequest.WithFormat("argument %q has unknown type %q", s, typ)
	}
}

func wrapArg(s string, err error) error {
	if err == nil {
		return nil
	}
	return errors.BadRequest.WithFormat("invalid argument %q: %w", s, err)
}
