// Package tx defines MultiversX transactions, their canonical signing form,
// hashing, fees and validation.
package tx

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/Klingon-tech/mvx-wallet/pkg/crypto"
	"github.com/Klingon-tech/mvx-wallet/pkg/types"
)

// Transaction option bits (valid from version 2).
const (
	OptionHashSign uint32 = 1 << 0
	OptionGuarded  uint32 = 1 << 1
)

// Transaction is a MultiversX transaction. A zero Guardian means the
// transaction is not guarded.
type Transaction struct {
	Nonce             uint64
	Value             *big.Int
	Receiver          types.Address
	Sender            types.Address
	ReceiverUsername  string
	SenderUsername    string
	GasPrice          uint64
	GasLimit          uint64
	Data              []byte
	ChainID           string
	Version           uint32
	Options           uint32
	Guardian          types.Address
	Signature         []byte
	GuardianSignature []byte
}

// signingJSON fixes the field order of the canonical signing bytes.
type signingJSON struct {
	Nonce            uint64 `json:"nonce"`
	Value            string `json:"value"`
	Receiver         string `json:"receiver"`
	Sender           string `json:"sender"`
	SenderUsername   string `json:"senderUsername,omitempty"`
	ReceiverUsername string `json:"receiverUsername,omitempty"`
	GasPrice         uint64 `json:"gasPrice"`
	GasLimit         uint64 `json:"gasLimit"`
	Data             string `json:"data,omitempty"`
	ChainID          string `json:"chainID"`
	Version          uint32 `json:"version"`
	Options          uint32 `json:"options,omitempty"`
	Guardian         string `json:"guardian,omitempty"`
}

// SigningBytes returns the canonical byte representation used for signing:
// compact JSON without HTML escaping, value as a decimal string, data and
// usernames base64 encoded, empty optional fields omitted.
func (tx *Transaction) SigningBytes() []byte {
	v := signingJSON{
		Nonce:    tx.Nonce,
		Value:    tx.valueString(),
		Receiver: tx.Receiver.String(),
		Sender:   tx.Sender.String(),
		GasPrice: tx.GasPrice,
		GasLimit: tx.GasLimit,
		ChainID:  tx.ChainID,
		Version:  tx.Version,
		Options:  tx.Options,
	}
	if tx.SenderUsername != "" {
		v.SenderUsername = base64.StdEncoding.EncodeToString([]byte(tx.SenderUsername))
	}
	if tx.ReceiverUsername != "" {
		v.ReceiverUsername = base64.StdEncoding.EncodeToString([]byte(tx.ReceiverUsername))
	}
	if len(tx.Data) > 0 {
		v.Data = base64.StdEncoding.EncodeToString(tx.Data)
	}
	if tx.IsGuarded() {
		v.Guardian = tx.Guardian.String()
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// A struct of strings and integers always encodes.
	_ = enc.Encode(v)
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
}

// BytesForSigning returns what the sender actually signs: the signing bytes,
// or their keccak256 hash when the hash-sign option is set.
func (tx *Transaction) BytesForSigning() []byte {
	b := tx.SigningBytes()
	if tx.Version >= 2 && tx.Options&OptionHashSign != 0 {
		return crypto.Keccak256(b)
	}
	return b
}

// Sign signs the transaction and attaches the signature. The signer must own
// the sender address.
func (tx *Transaction) Sign(signer crypto.Signer) error {
	if !bytes.Equal(signer.PublicKey(), tx.Sender[:]) {
		return fmt.Errorf("sign tx: signer does not own sender %s", tx.Sender)
	}
	sig, err := signer.Sign(tx.BytesForSigning())
	if err != nil {
		return fmt.Errorf("sign tx: %w", err)
	}
	tx.Signature = sig
	return nil
}

// IsGuarded reports whether a guardian is set.
func (tx *Transaction) IsGuarded() bool {
	return !tx.Guardian.IsZero()
}

// IsSigned reports whether a signature is attached.
func (tx *Transaction) IsSigned() bool {
	return len(tx.Signature) > 0
}

func (tx *Transaction) valueString() string {
	if tx.Value == nil {
		return "0"
	}
	return tx.Value.String()
}

// txJSON is the signed-transaction file layout. Data is written as its plain
// string and the signature as hex.
type txJSON struct {
	Nonce             uint64 `json:"nonce"`
	Value             string `json:"value"`
	Receiver          string `json:"receiver"`
	Sender            string `json:"sender"`
	SenderUsername    string `json:"senderUsername,omitempty"`
	ReceiverUsername  string `json:"receiverUsername,omitempty"`
	GasPrice          uint64 `json:"gasPrice"`
	GasLimit          uint64 `json:"gasLimit"`
	Data              string `json:"data"`
	ChainID           string `json:"chainID"`
	Version           uint32 `json:"version"`
	Options           uint32 `json:"options,omitempty"`
	Guardian          string `json:"guardian,omitempty"`
	Signature         string `json:"signature,omitempty"`
	GuardianSignature string `json:"guardianSignature,omitempty"`
}

// MarshalJSON encodes the transaction in the signed-transaction file layout.
func (tx Transaction) MarshalJSON() ([]byte, error) {
	j := txJSON{
		Nonce:            tx.Nonce,
		Value:            tx.valueString(),
		Receiver:         tx.Receiver.String(),
		Sender:           tx.Sender.String(),
		SenderUsername:   tx.SenderUsername,
		ReceiverUsername: tx.ReceiverUsername,
		GasPrice:         tx.GasPrice,
		GasLimit:         tx.GasLimit,
		Data:             string(tx.Data),
		ChainID:          tx.ChainID,
		Version:          tx.Version,
		Options:          tx.Options,
	}
	if tx.IsGuarded() {
		j.Guardian = tx.Guardian.String()
	}
	if len(tx.Signature) > 0 {
		j.Signature = hex.EncodeToString(tx.Signature)
	}
	if len(tx.GuardianSignature) > 0 {
		j.GuardianSignature = hex.EncodeToString(tx.GuardianSignature)
	}
	return json.Marshal(j)
}

// UnmarshalJSON decodes the signed-transaction file layout.
func (tx *Transaction) UnmarshalJSON(data []byte) error {
	var j txJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}

	value, err := ParseValue(j.Value)
	if err != nil {
		return err
	}
	out := Transaction{
		Nonce:            j.Nonce,
		Value:            value,
		ReceiverUsername: j.ReceiverUsername,
		SenderUsername:   j.SenderUsername,
		GasPrice:         j.GasPrice,
		GasLimit:         j.GasLimit,
		ChainID:          j.ChainID,
		Version:          j.Version,
		Options:          j.Options,
	}
	if j.Data != "" {
		out.Data = []byte(j.Data)
	}
	if out.Receiver, err = parseOptionalAddress(j.Receiver); err != nil {
		return fmt.Errorf("receiver: %w", err)
	}
	if out.Sender, err = parseOptionalAddress(j.Sender); err != nil {
		return fmt.Errorf("sender: %w", err)
	}
	if out.Guardian, err = parseOptionalAddress(j.Guardian); err != nil {
		return fmt.Errorf("guardian: %w", err)
	}
	if out.Signature, err = decodeOptionalHex(j.Signature); err != nil {
		return fmt.Errorf("signature: %w", err)
	}
	if out.GuardianSignature, err = decodeOptionalHex(j.GuardianSignature); err != nil {
		return fmt.Errorf("guardian signature: %w", err)
	}

	*tx = out
	return nil
}

func parseOptionalAddress(s string) (types.Address, error) {
	if s == "" {
		return types.Address{}, nil
	}
	return types.ParseAddress(s)
}

func decodeOptionalHex(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	return hex.DecodeString(s)
}
