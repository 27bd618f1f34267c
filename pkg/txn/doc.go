// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package txn defines transactions and their canonical binary encoding.
//
// Transactions are encoded with BCS. Integers are fixed width little endian.
// Sequences (vectors, strings, byte strings) are prefixed with their length
// as a ULEB128 varint. Enums are prefixed with the variant index as a
// ULEB128 varint. Structs are the concatenation of their fields in
// declaration order with no framing. Addresses are 32 raw bytes.
//
// RawTransaction:
//
//	sender                     32 bytes
//	sequence_number            u64
//	payload                    TransactionPayload
//	max_gas_amount             u64
//	gas_unit_price             u64
//	expiration_timestamp_secs  u64
//	chain_id                   u8
//
// TransactionPayload (enum):
//
//	0 Script         code: bytes, ty_args: vector<TypeTag>, args: vector<ScriptArgument>
//	1 ModuleBundle   vector<bytes> (rejected by current nodes)
//	2 EntryFunction  module: ModuleId, function: string, ty_args: vector<TypeTag>, args: vector<bytes>
//
// ModuleId is address (32 bytes) followed by name (string). Each entry
// function argument is itself the BCS encoding of the argument value,
// wrapped as a byte string.
//
// TypeTag (enum): 0 bool, 1 u8, 2 u64, 3 u128, 4 address, 5 signer,
// 6 vector (TypeTag), 7 struct (address, module: string, name: string,
// type_args: vector<TypeTag>), 8 u16, 9 u32, 10 u256.
//
// SignedTransaction is RawTransaction followed by TransactionAuthenticator:
//
//	0 Ed25519       public_key: bytes (32), signature: bytes (64)
//	1 MultiEd25519  public_key: bytes, signature: bytes
//
// The signing message is SHA3-256("APTOS::RawTransaction") followed by the
// encoded RawTransaction. The transaction hash is
// SHA3-256(SHA3-256("APTOS::Transaction") || 0x00 || encoded SignedTransaction).
package txn
