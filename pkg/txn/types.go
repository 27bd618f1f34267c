// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package txn

import (
	"time"

	"gitlab.com/accumulatenetwork/moveclient/pkg/move"
)

// RawTransaction is an unsigned transaction. Field order is the wire order.
type RawTransaction struct {
	Sender                  move.Address
	SequenceNumber          uint64
	Payload                 TransactionPayload
	MaxGasAmount            uint64
	GasUnitPrice            uint64
	ExpirationTimestampSecs uint64
	ChainID                 uint8
}

// Expiration returns the expiration timestamp as a time.
func (r *RawTransaction) Expiration() time.Time {
	return time.Unix(int64(r.ExpirationTimestampSecs), 0)
}

// TransactionPayload is the body of a transaction. Exactly one variant is
// set. Field order is the variant index and must not change.
type TransactionPayload struct {
	Script        *Script
	ModuleBundle  *ModuleBundle
	EntryFunction *EntryFunction
}

func (TransactionPayload) IsBcsEnum() {}

// Script is a one-off script transaction.
type Script struct {
	Code     []byte
	TypeArgs []move.TypeTag
	Args     []ScriptArgument
}

// ScriptArgument is a typed script argument. Exactly one variant is set.
type ScriptArgument struct {
	U8       *uint8
	U64      *uint64
	U128     *[16]byte
	Address  *move.Address
	U8Vector *[]byte
	Bool     *bool
}

func (ScriptArgument) IsBcsEnum() {}

// ModuleBundle is the legacy module publishing payload.
//
// Deprecated: Current nodes reject it. Publish with
// 0x1::code::publish_package_txn instead.
type ModuleBundle struct {
	Modules []Module
}

// Module is compiled module bytecode.
type Module struct {
	Code []byte
}

// EntryFunction calls a public entry function. Args holds the encoded value
// of each argument.
type EntryFunction struct {
	Module   move.ModuleID
	Function string
	TypeArgs []move.TypeTag
	Args     [][]byte
}

// FunctionID returns the fully qualified function id.
func (e *EntryFunction) FunctionID() *move.FunctionID {
	return &move.FunctionID{Module: e.Module, Name: e.Function}
}

// NewEntryFunction returns an entry function payload.
func NewEntryFunction(fn *move.FunctionID, typeArgs []move.TypeTag, args [][]byte) TransactionPayload {
	if typeArgs == nil {
		typeArgs = []move.TypeTag{}
	}
	if args == nil {
		args = [][]byte{}
	}
	return TransactionPayload{EntryFunction: &EntryFunction{
		Module:   fn.Module,
		Function: fn.Name,
		TypeArgs: typeArgs,
		Args:     args,
	}}
}

// SignedTransaction is a raw transaction plus its authenticator.
type SignedTransaction struct {
	Raw           RawTransaction
	Authenticator Authenticator
}

// Authenticator proves the sender authorized the transaction. Exactly one
// variant is set.
type Authenticator struct {
	Ed25519      *Ed25519Authenticator
	MultiEd25519 *MultiEd25519Authenticator
}

func (Authenticator) IsBcsEnum() {}

// Ed25519Authenticator is a single ed25519 signature.
type Ed25519Authenticator struct {
	PublicKey []byte
	Signature []byte
}

// MultiEd25519Authenticator is a k-of-n ed25519 signature. The client does
// not produce these but can decode them.
type MultiEd25519Authenticator struct {
	PublicKey []byte
	Signature []byte
}
