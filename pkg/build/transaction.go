// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package build

import (
	"context"
	"time"

	"gitlab.com/accumulatenetwork/moveclient/pkg/errors"
	"gitlab.com/accumulatenetwork/moveclient/pkg/move"
	"gitlab.com/accumulatenetwork/moveclient/pkg/txn"
)

// TransactionBuilder builds a raw transaction. It is a value type: every
// method returns a modified copy, so a partially built transaction can be
// reused as a template. Errors are collected and reported by Build.
type TransactionBuilder struct {
	parser
	t txn.RawTransaction

	fn       *move.FunctionID
	typeArgs []move.TypeTag
	args     [][]byte
	payload  *txn.TransactionPayload

	haveCall     bool
	haveSender   bool
	haveSequence bool
	haveChainID  bool
	expiresIn    time.Duration
	expiresAt    time.Time
}

// From sets the sender. The sender may be an address, an address string, or
// anything with an Address method, such as an account.
func (b TransactionBuilder) From(sender any) TransactionBuilder {
	b.t.Sender = b.parseAddress(sender)
	b.haveSender = true
	return b
}

// Call sets the entry function, as a string (addr::module::function) or a
// function id.
func (b TransactionBuilder) Call(fn any) TransactionBuilder {
	b.fn = b.parseFunctionID(fn)
	b.payload = nil
	b.haveCall = true
	return b
}

// WithTypeArgs appends type arguments, as strings or type tags.
func (b TransactionBuilder) WithTypeArgs(tags ...any) TransactionBuilder {
	typeArgs := make([]move.TypeTag, len(b.typeArgs), len(b.typeArgs)+len(tags))
	copy(typeArgs, b.typeArgs)
	for _, tag := range tags {
		t, ok := b.parseTypeTag(tag)
		if ok {
			typeArgs = append(typeArgs, t)
		}
	}
	b.typeArgs = typeArgs
	return b
}

// WithArgs appends value arguments. Each is encoded by its Go type; see
// [Encode].
func (b TransactionBuilder) WithArgs(args ...any) TransactionBuilder {
	encoded := make([][]byte, len(b.args), len(b.args)+len(args))
	copy(encoded, b.args)
	for _, arg := range args {
		encoded = append(encoded, b.parseArg(arg))
	}
	b.args = encoded
	return b
}

// WithPayload sets a payload directly, replacing any entry function call.
func (b TransactionBuilder) WithPayload(payload txn.TransactionPayload) TransactionBuilder {
	b.payload = &payload
	b.fn = nil
	b.haveCall = true
	return b
}

func (b TransactionBuilder) WithMaxGas(amount uint64) TransactionBuilder {
	b.t.MaxGasAmount = amount
	return b
}

func (b TransactionBuilder) WithGasPrice(price uint64) TransactionBuilder {
	b.t.GasUnitPrice = price
	return b
}

// ExpiresIn sets the expiration window, measured from when Build is called.
func (b TransactionBuilder) ExpiresIn(d time.Duration) TransactionBuilder {
	b.expiresIn = d
	b.expiresAt = time.Time{}
	return b
}

// ExpiresAt sets an absolute expiration time.
func (b TransactionBuilder) ExpiresAt(t time.Time) TransactionBuilder {
	b.expiresAt = t
	b.expiresIn = 0
	return b
}

func (b TransactionBuilder) WithSequence(seq uint64) TransactionBuilder {
	b.t.SequenceNumber = seq
	b.haveSequence = true
	return b
}

func (b TransactionBuilder) WithChainID(id uint8) TransactionBuilder {
	b.t.ChainID = id
	b.haveChainID = true
	return b
}

// Sender returns the sender, or false if it has not been set.
func (b TransactionBuilder) Sender() (move.Address, bool) {
	return b.t.Sender, b.haveSender
}

// Load reads the sender's sequence number and the chain id from the node,
// unless they have already been set.
func (b TransactionBuilder) Load(ctx context.Context, chain Chain) TransactionBuilder {
	if !b.ok() {
		return b
	}

	if !b.haveSequence {
		if !b.haveSender {
			b.errorf(errors.BadRequest, "cannot load the sequence number: missing sender")
			return b
		}
		seq, err := chain.SequenceNumber(ctx, b.t.Sender)
		if err != nil {
			b.record(errors.SequenceQueryFailed.WithCauseAndFormat(err, "query sequence number of %v: %v", b.t.Sender, err))
			return b
		}
		b = b.WithSequence(seq)
	}

	if !b.haveChainID {
		id, err := chain.ChainID(ctx)
		if err != nil {
			b.record(errors.UnknownError.WithFormat("query chain id: %w", err))
			return b
		}
		b = b.WithChainID(id)
	}
	return b
}

// Build returns the raw transaction or the errors collected while building
// it.
func (b TransactionBuilder) Build() (*txn.RawTransaction, error) {
	if !b.haveSender {
		b.errorf(errors.BadRequest, "missing sender")
	}
	if !b.haveCall {
		b.errorf(errors.BadRequest, "missing entry function")
	}
	if !b.haveSequence {
		b.errorf(errors.BadRequest, "missing sequence number")
	}
	if !b.haveChainID {
		b.errorf(errors.BadRequest, "missing chain id")
	}
	if !b.ok() {
		return nil, b.err()
	}

	t := b.t
	if b.payload != nil {
		t.Payload = *b.payload
	} else {
		t.Payload = txn.NewEntryFunction(b.fn, b.typeArgs, b.args)
	}
	if t.MaxGasAmount == 0 {
		t.MaxGasAmount = DefaultMaxGasAmount
	}
	if t.GasUnitPrice == 0 {
		t.GasUnitPrice = DefaultGasUnitPrice
	}

	switch {
	case !b.expiresAt.IsZero():
		t.ExpirationTimestampSecs = uint64(b.expiresAt.Unix())
	case b.expiresIn > 0:
		t.ExpirationTimestampSecs = uint64(time.Now().Add(b.expiresIn).Unix())
	default:
		t.ExpirationTimestampSecs = uint64(time.Now().Add(DefaultExpiration).Unix())
	}
	return &t, nil
}
