// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package nodesim

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fardream/go-bcs/bcs"
	"gitlab.com/accumulatenetwork/moveclient/pkg/move"
	"gitlab.com/accumulatenetwork/moveclient/pkg/node"
	"gitlab.com/accumulatenetwork/moveclient/pkg/resource"
	"gitlab.com/accumulatenetwork/moveclient/pkg/txn"
)

// Resource types written by the simulated modules. Module-relative names
// are qualified with the address the module was called at.
const (
	PackageRegistryPath = "0x1::code::PackageRegistry"
	CollInfoName        = "appcolla::CollInfo"
	PaymentConfigName   = "paymentChannel::PaymentConfig"
)

// PackageRegistry is the simulated 0x1::code::PackageRegistry.
type PackageRegistry struct {
	Packages []PackageInfo `json:"packages"`
}

type PackageInfo struct {
	Name          string   `json:"name"`
	UpgradeNumber move.U64 `json:"upgrade_number"`
	ModuleCount   int      `json:"module_count"`
}

// PaymentConfig is the payee registered for a payment channel.
type PaymentConfig struct {
	Name  string       `json:"name"`
	Payee move.Address `json:"payee"`
}

var moduleMagic = []byte{0xa1, 0x1c, 0xeb, 0x0b}

type ledger map[move.Address]*accountState

func (l ledger) account(addr move.Address) *accountState {
	a, ok := l[addr]
	if !ok {
		a = &accountState{resources: map[string]json.RawMessage{}}
		l[addr] = a
	}
	return a
}

func (l ledger) clone() ledger {
	m := make(ledger, len(l))
	for addr, a := range l {
		b := &accountState{seq: a.seq, resources: make(map[string]json.RawMessage, len(a.resources))}
		for k, v := range a.resources {
			b.resources[k] = v
		}
		m[addr] = b
	}
	return m
}

func (l ledger) get(addr move.Address, path string, v any) bool {
	a, ok := l[addr]
	if !ok {
		return false
	}
	b, ok := a.resources[path]
	if !ok {
		return false
	}
	if err := json.Unmarshal(b, v); err != nil {
		panic(fmt.Errorf("corrupt resource %s: %w", path, err))
	}
	return true
}

func (l ledger) put(addr move.Address, path string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	l.account(addr).resources[path] = b
}

func (l ledger) coinStore(addr move.Address, coinType move.TypeTag) (resource.CoinStore, bool) {
	var store resource.CoinStore
	ok := l.get(addr, resource.CoinStorePath(coinType), &store)
	return store, ok
}

func (l ledger) putCoinStore(addr move.Address, coinType move.TypeTag, store resource.CoinStore) {
	l.put(addr, resource.CoinStorePath(coinType), store)
}

// execute runs a validated transaction. The sequence number is consumed
// whether or not execution succeeds. Writes are kept only if it succeeds.
func execute(l ledger, signed *txn.SignedTransaction) node.Transaction {
	raw := &signed.Raw
	tx := node.Transaction{
		Type:                    node.TypeUserTransaction,
		Sender:                  raw.Sender.StringLong(),
		SequenceNumber:          move.U64(raw.SequenceNumber),
		MaxGasAmount:            move.U64(raw.MaxGasAmount),
		GasUnitPrice:            move.U64(raw.GasUnitPrice),
		ExpirationTimestampSecs: move.U64(raw.ExpirationTimestampSecs),
		GasUsed:                 GasUsed,
		Timestamp:               move.U64(time.Now().UnixMicro()),
	}

	l.account(raw.Sender).seq++
	scratch := l.clone()
	status := run(scratch, raw)
	if status != "" {
		tx.VMStatus = status
		return tx
	}

	for addr, a := range scratch {
		l[addr] = a
	}
	tx.Success = true
	tx.VMStatus = "Executed successfully"
	return tx
}

// run executes the payload and returns the VM status of a failure, or an
// empty string.
func run(l ledger, raw *txn.RawTransaction) string {
	ef := raw.Payload.EntryFunction
	if ef == nil {
		return "FEATURE_UNDER_GATING"
	}

	c := &call{l: l, sender: raw.Sender, ef: ef}
	if ef.Module.Address == move.AddressOne {
		switch ef.Module.Name + "::" + ef.Function {
		case "managed_coin::register", "coin::register":
			return c.register()
		case "coin::transfer":
			return c.transfer()
		case "aptos_account::transfer":
			return c.aptosTransfer()
		case "code::publish_package_txn":
			return c.publish()
		}
		return "FUNCTION_RESOLUTION_FAILURE"
	}

	switch ef.Module.Name + "::" + ef.Function {
	case "appcolla::write":
		return c.writeMessage()
	case "appcolla::get":
		return c.getMessage()
	case "paymentChannel::set_payment_address":
		return c.setPaymentAddress()
	case "paymentChannel::payment":
		return c.payment()
	}
	return "FUNCTION_RESOLUTION_FAILURE"
}

type call struct {
	l      ledger
	sender move.Address
	ef     *txn.EntryFunction
}

func abort(module, reason string, code uint64, msg string) string {
	return fmt.Sprintf("Move abort in %s: %s(0x%x): %s", module, reason, code, msg)
}

func (c *call) module() string { return c.ef.Module.String() }

func (c *call) resourcePath(name string) string {
	return c.ef.Module.Address.String() + "::" + name
}

func (c *call) signature(typeArgs, args int) bool {
	return len(c.ef.TypeArgs) == typeArgs && len(c.ef.Args) == args
}

// arg decodes argument i, which must be fully consumed.
func (c *call) arg(i int, v any) bool {
	n, err := bcs.Unmarshal(c.ef.Args[i], v)
	return err == nil && n == len(c.ef.Args[i])
}

func (c *call) register() string {
	if !c.signature(1, 0) {
		return "NUMBER_OF_TYPE_ARGUMENTS_MISMATCH"
	}
	coinType := c.ef.TypeArgs[0]
	if _, ok := c.l.coinStore(c.sender, coinType); ok {
		return ""
	}
	c.l.putCoinStore(c.sender, coinType, resource.CoinStore{})
	return ""
}

func (c *call) transferArgs() (move.Address, uint64, string) {
	var to move.Address
	var amount uint64
	if !c.arg(0, &to) || !c.arg(1, &amount) {
		return to, 0, "FAILED_TO_DESERIALIZE_ARGUMENT"
	}
	return to, amount, ""
}

func (c *call) transfer() string {
	if !c.signature(1, 2) {
		return "NUMBER_OF_ARGUMENTS_MISMATCH"
	}
	to, amount, status := c.transferArgs()
	if status != "" {
		return status
	}
	return c.l.moveCoins(c.ef.TypeArgs[0], c.sender, to, amount, false)
}

func (c *call) aptosTransfer() string {
	if !c.signature(0, 2) {
		return "NUMBER_OF_ARGUMENTS_MISMATCH"
	}
	to, amount, status := c.transferArgs()
	if status != "" {
		return status
	}
	return c.l.moveCoins(move.AptosCoin, c.sender, to, amount, true)
}

func (l ledger) moveCoins(coinType move.TypeTag, from, to move.Address, amount uint64, create bool) string {
	src, ok := l.coinStore(from, coinType)
	if !ok {
		return abort("0x1::coin", "ECOIN_STORE_NOT_PUBLISHED", 0x60005, "Account hasn't registered `CoinStore` for `CoinType`")
	}
	if uint64(src.Coin.Value) < amount {
		return abort("0x1::coin", "EINSUFFICIENT_BALANCE", 0x10006, "Not enough coins to complete transaction")
	}
	src.Coin.Value -= move.U64(amount)
	l.putCoinStore(from, coinType, src)

	dst, ok := l.coinStore(to, coinType)
	if !ok && !create {
		return abort("0x1::coin", "ECOIN_STORE_NOT_PUBLISHED", 0x60005, "Account hasn't registered `CoinStore` for `CoinType`")
	}
	dst.Coin.Value += move.U64(amount)
	l.putCoinStore(to, coinType, dst)
	return ""
}

func (c *call) publish() string {
	if !c.signature(0, 2) {
		return "NUMBER_OF_ARGUMENTS_MISMATCH"
	}
	var metadata []byte
	var code [][]byte
	if !c.arg(0, &metadata) || !c.arg(1, &code) {
		return "FAILED_TO_DESERIALIZE_ARGUMENT"
	}
	if len(code) == 0 {
		return abort("0x1::code", "EEMPTY_PACKAGE", 0x10007, "Package contains no modules")
	}
	for _, m := range code {
		if len(m) < len(moduleMagic) || string(m[:len(moduleMagic)]) != string(moduleMagic) {
			return "CODE_DESERIALIZATION_ERROR"
		}
	}

	// The package name is the first field of the metadata
	var name string
	if _, err := bcs.Unmarshal(metadata, &name); err != nil || !move.IsIdentifier(name) {
		return "FAILED_TO_DESERIALIZE_ARGUMENT"
	}

	var reg PackageRegistry
	c.l.get(c.sender, PackageRegistryPath, &reg)
	for i, p := range reg.Packages {
		if p.Name == name {
			reg.Packages[i].UpgradeNumber++
			reg.Packages[i].ModuleCount = len(code)
			c.l.put(c.sender, PackageRegistryPath, reg)
			return ""
		}
	}
	reg.Packages = append(reg.Packages, PackageInfo{Name: name, ModuleCount: len(code)})
	c.l.put(c.sender, PackageRegistryPath, reg)
	return ""
}

func (c *call) writeMessage() string {
	if !c.signature(0, 1) {
		return "NUMBER_OF_ARGUMENTS_MISMATCH"
	}
	var msg string
	if !c.arg(0, &msg) {
		return "FAILED_TO_DESERIALIZE_ARGUMENT"
	}
	c.l.put(c.sender, c.resourcePath(CollInfoName), map[string]string{"msg": msg})
	return ""
}

func (c *call) getMessage() string {
	if !c.signature(0, 1) {
		return "NUMBER_OF_ARGUMENTS_MISMATCH"
	}
	var owner move.Address
	if !c.arg(0, &owner) {
		return "FAILED_TO_DESERIALIZE_ARGUMENT"
	}
	var info map[string]string
	if !c.l.get(owner, c.resourcePath(CollInfoName), &info) {
		return abort(c.module(), "EMESSAGE_NOT_FOUND", 0x60001, "No message is stored at the address")
	}
	return ""
}

func (c *call) setPaymentAddress() string {
	if !c.signature(0, 2) {
		return "NUMBER_OF_ARGUMENTS_MISMATCH"
	}
	var cfg PaymentConfig
	if !c.arg(0, &cfg.Name) || !c.arg(1, &cfg.Payee) {
		return "FAILED_TO_DESERIALIZE_ARGUMENT"
	}
	c.l.put(c.sender, c.resourcePath(PaymentConfigName), cfg)
	return ""
}

func (c *call) payment() string {
	if !c.signature(1, 2) {
		return "NUMBER_OF_ARGUMENTS_MISMATCH"
	}
	channel, amount, status := c.transferArgs()
	if status != "" {
		return status
	}
	var cfg PaymentConfig
	if !c.l.get(channel, c.resourcePath(PaymentConfigName), &cfg) {
		return abort(c.module(), "ECHANNEL_NOT_FOUND", 0x60001, "No payment address is set for the channel")
	}
	return c.l.moveCoins(c.ef.TypeArgs[0], c.sender, cfg.Payee, amount, false)
}
