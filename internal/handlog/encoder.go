package handlog

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// Encode writes the hand history to w in PHH TOML form.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return errors.New("handlog: hand history is nil")
	}
	hand.stamp()

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	if err := enc.Encode(hand); err != nil {
		return fmt.Errorf("handlog: encoding hand %s: %w", hand.HandID, err)
	}
	return nil
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(hand *HandHistory) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, hand); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a hand history written by Encode.
func Decode(r io.Reader) (*HandHistory, error) {
	var hand HandHistory
	if _, err := toml.NewDecoder(r).Decode(&hand); err != nil {
		return nil, fmt.Errorf("handlog: decoding: %w", err)
	}
	return &hand, nil
}
