package tx

import (
	"math/big"

	"golang.org/x/crypto/blake2b"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/Klingon-tech/mvx-wallet/pkg/types"
)

// Protobuf field numbers of the node's transaction message.
const (
	fieldNonce             protowire.Number = 1
	fieldValue             protowire.Number = 2
	fieldReceiver          protowire.Number = 3
	fieldReceiverUsername  protowire.Number = 4
	fieldSender            protowire.Number = 5
	fieldSenderUsername    protowire.Number = 6
	fieldGasPrice          protowire.Number = 7
	fieldGasLimit          protowire.Number = 8
	fieldData              protowire.Number = 9
	fieldChainID           protowire.Number = 10
	fieldVersion           protowire.Number = 11
	fieldSignature         protowire.Number = 12
	fieldOptions           protowire.Number = 13
	fieldGuardian          protowire.Number = 14
	fieldGuardianSignature protowire.Number = 15
)

// Hash computes the transaction hash: blake2b-256 of the protobuf encoding,
// signature included. The hash of an unsigned transaction is not the hash the
// network will report.
func (tx *Transaction) Hash() types.Hash {
	return types.Hash(blake2b.Sum256(tx.ProtoBytes()))
}

// ProtoBytes returns the protobuf wire encoding of the transaction. Zero
// values are omitted, as proto3 does.
func (tx *Transaction) ProtoBytes() []byte {
	var b []byte
	b = appendVarint(b, fieldNonce, tx.Nonce)
	b = appendBytes(b, fieldValue, encodeBigInt(tx.Value))
	b = appendBytes(b, fieldReceiver, tx.Receiver[:])
	b = appendBytes(b, fieldReceiverUsername, []byte(tx.ReceiverUsername))
	b = appendBytes(b, fieldSender, tx.Sender[:])
	b = appendBytes(b, fieldSenderUsername, []byte(tx.SenderUsername))
	b = appendVarint(b, fieldGasPrice, tx.GasPrice)
	b = appendVarint(b, fieldGasLimit, tx.GasLimit)
	b = appendBytes(b, fieldData, tx.Data)
	b = appendBytes(b, fieldChainID, []byte(tx.ChainID))
	b = appendVarint(b, fieldVersion, uint64(tx.Version))
	b = appendBytes(b, fieldSignature, tx.Signature)
	b = appendVarint(b, fieldOptions, uint64(tx.Options))
	if tx.IsGuarded() {
		b = appendBytes(b, fieldGuardian, tx.Guardian[:])
	}
	b = appendBytes(b, fieldGuardianSignature, tx.GuardianSignature)
	return b
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

// encodeBigInt writes a sign byte (0 positive, 1 negative) followed by the
// big-endian magnitude. Zero encodes as 0x00 0x00.
func encodeBigInt(v *big.Int) []byte {
	if v == nil || v.Sign() == 0 {
		return []byte{0, 0}
	}
	sign := byte(0)
	if v.Sign() < 0 {
		sign = 1
	}
	return append([]byte{sign}, v.Bytes()...)
}
