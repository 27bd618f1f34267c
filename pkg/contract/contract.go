// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package contract provides thin wrappers around the entry functions of
// well-known modules. Every wrapper drives the same client pipeline.
package contract

import (
	"context"
	"strings"

	"gitlab.com/accumulatenetwork/moveclient/pkg/build"
	"gitlab.com/accumulatenetwork/moveclient/pkg/client"
	"gitlab.com/accumulatenetwork/moveclient/pkg/errors"
	"gitlab.com/accumulatenetwork/moveclient/pkg/move"
	"gitlab.com/accumulatenetwork/moveclient/pkg/resource"
)

// Executor runs transactions. [client.Client] implements it.
type Executor interface {
	Call(fn any) build.TransactionBuilder
	Execute(ctx context.Context, sender client.Sender, b build.TransactionBuilder) (*client.Outcome, error)
	Reader() *resource.Reader
}

var _ Executor = (*client.Client)(nil)

// Operation selects a contract call.
type Operation int

const (
	OperationUnknown Operation = iota
	OperationRegister
	OperationTransfer
	OperationWriteMessage
	OperationGetMessage
	OperationSetPaymentAddress
	OperationPayment
	OperationPublish
)

var operationNames = map[Operation]string{
	OperationRegister:          "register",
	OperationTransfer:          "transfer",
	OperationWriteMessage:      "write-message",
	OperationGetMessage:        "get-message",
	OperationSetPaymentAddress: "set-payment-address",
	OperationPayment:           "payment",
	OperationPublish:           "publish",
}

func (op Operation) String() string {
	if s, ok := operationNames[op]; ok {
		return s
	}
	return "unknown"
}

// ParseOperation returns the operation with the given name.
func ParseOperation(s string) (Operation, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for op, name := range operationNames {
		if name == s {
			return op, true
		}
	}
	return OperationUnknown, false
}

// Request is a contract call. Which fields are used depends on the
// operation.
type Request struct {
	Operation Operation

	// Module is the address the message or payment channel module is
	// published at.
	Module move.Address

	CoinType move.TypeTag

	// Target is the recipient of a transfer, the owner of a message, the
	// payee of a payment channel, or the channel being paid.
	Target move.Address

	Amount  uint64
	Message string

	// Name is the payment channel name.
	Name string

	Package *Package
}

// Run executes the request for the sender.
func Run(ctx context.Context, x Executor, sender client.Sender, req *Request) (*client.Outcome, error) {
	switch req.Operation {
	case OperationRegister:
		return Register(ctx, x, sender, req.CoinType)
	case OperationTransfer:
		return Transfer(ctx, x, sender, req.CoinType, req.Target, req.Amount)
	case OperationWriteMessage:
		return WriteMessage(ctx, x, sender, req.Module, req.Message)
	case OperationGetMessage:
		return GetMessage(ctx, x, sender, req.Module, req.Target)
	case OperationSetPaymentAddress:
		return SetPaymentAddress(ctx, x, sender, req.Module, req.Name, req.Target)
	case OperationPayment:
		return Pay(ctx, x, sender, req.Module, req.CoinType, req.Target, req.Amount)
	case OperationPublish:
		if req.Package == nil {
			return nil, errors.BadRequest.With("missing package")
		}
		return Publish(ctx, x, sender, req.Package)
	default:
		return nil, errors.BadRequest.WithFormat("unknown operation %v", req.Operation)
	}
}
