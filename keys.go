// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chaumpedersen

import (
	"crypto/ecdsa"
	"encoding/xml"
	"io"
	"os"

	"github.com/go-errors/errors"

	"github.com/privacybydesign/chaumpedersen/big"
	"github.com/privacybydesign/chaumpedersen/internal/common"
	"github.com/privacybydesign/chaumpedersen/signed"
)

const (
	//XMLHeader can be a used as the XML header when writing keys in XML format.
	XMLHeader = "<?xml version=\"1.0\" encoding=\"UTF-8\" standalone=\"no\"?>\n"
)

type (
	// PrivateKey holds the prover's secret x in [0, Q). It is never transmitted.
	PrivateKey struct {
		XMLName xml.Name `xml:"ChaumPedersenPrivateKey" json:"-" cbor:"-"`
		Group   *Group   `xml:"Group"`
		X       *big.Int `xml:"Elements>x"`

		public *PublicKey
	}

	// PublicKey is the pair (Y1, Y2) = (G^x, H^x) mod P belonging to a PrivateKey.
	PublicKey struct {
		XMLName xml.Name `xml:"ChaumPedersenPublicKey" json:"-" cbor:"-"`
		Group   *Group   `xml:"Group" json:"group" cbor:"group"`
		Y1      *big.Int `xml:"Elements>y1" json:"y1" cbor:"y1"`
		Y2      *big.Int `xml:"Elements>y2" json:"y2" cbor:"y2"`
	}
)

// NewPrivateKey returns the private key with secret x in the given group, deriving its public
// key.
func NewPrivateKey(group *Group, x *big.Int) (*PrivateKey, error) {
	if err := group.ready(); err != nil {
		return nil, err
	}
	if err := checkBelow("secret", x, group.Q); err != nil {
		return nil, err
	}
	y1, y2, err := group.Commit(x)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{
		Group:  group,
		X:      new(big.Int).Set(x),
		public: &PublicKey{Group: group, Y1: y1, Y2: y2},
	}, nil
}

// GenerateKey draws a fresh secret uniformly from [0, Q) and returns the resulting private key.
func GenerateKey(group *Group, rnd RandomSource) (*PrivateKey, error) {
	if err := group.ready(); err != nil {
		return nil, err
	}
	x, err := rnd.UniformBelow(group.Q)
	if err != nil {
		return nil, err
	}
	return NewPrivateKey(group, x)
}

// Public returns the public key belonging to sk.
func (sk *PrivateKey) Public() *PublicKey {
	return sk.public
}

// NewPublicKey returns the public key (y1, y2) in the given group after validating it.
func NewPublicKey(group *Group, y1, y2 *big.Int) (*PublicKey, error) {
	if y1 == nil || y2 == nil {
		return nil, wrapf(ErrInvalidRange, "missing public key element")
	}
	pk := &PublicKey{Group: group, Y1: new(big.Int).Set(y1), Y2: new(big.Int).Set(y2)}
	if err := pk.Validate(); err != nil {
		return nil, err
	}
	return pk, nil
}

// Validate checks that both elements of the public key lie in the order Q subgroup.
func (pk *PublicKey) Validate() error {
	if err := pk.Group.ready(); err != nil {
		return err
	}
	if !pk.Group.inSubgroup(pk.Y1) {
		return wrapf(ErrInvalidRange, "y1 is not a group element")
	}
	if !pk.Group.inSubgroup(pk.Y2) {
		return wrapf(ErrInvalidRange, "y2 is not a group element")
	}
	return nil
}

// Equal reports whether pk and other are the same key over the same group parameters.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	if pk == nil || other == nil {
		return pk == other
	}
	return pk.Y1.Cmp(other.Y1) == 0 && pk.Y2.Cmp(other.Y2) == 0 && pk.Group.Equal(other.Group)
}

// rebuildGroup replaces a decoded group, which lacks its precomputed tables, by a validated one.
func rebuildGroup(decoded *Group) (*Group, error) {
	if decoded == nil {
		return nil, wrapf(ErrInvalidGroup, "missing group")
	}
	return NewGroup(decoded.P, decoded.Q, decoded.G, decoded.H)
}

// NewPublicKeyFromXML parses and validates a public key in XML format.
func NewPublicKeyFromXML(xmlInput string) (*PublicKey, error) {
	pk := &PublicKey{}
	if err := xml.Unmarshal([]byte(xmlInput), pk); err != nil {
		return nil, err
	}
	group, err := rebuildGroup(pk.Group)
	if err != nil {
		return nil, err
	}
	return NewPublicKey(group, pk.Y1, pk.Y2)
}

// NewPublicKeyFromFile reads a public key from an XML file.
func NewPublicKeyFromFile(filename string) (*PublicKey, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return NewPublicKeyFromXML(string(b))
}

// NewPrivateKeyFromXML parses a private key in XML format, validating its group and secret.
func NewPrivateKeyFromXML(xmlInput string) (*PrivateKey, error) {
	sk := &PrivateKey{}
	if err := xml.Unmarshal([]byte(xmlInput), sk); err != nil {
		return nil, err
	}
	group, err := rebuildGroup(sk.Group)
	if err != nil {
		return nil, err
	}
	return NewPrivateKey(group, sk.X)
}

// NewPrivateKeyFromFile reads a private key from an XML file.
func NewPrivateKeyFromFile(filename string) (*PrivateKey, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return NewPrivateKeyFromXML(string(b))
}

// WriteTo writes the XML-serialized public key to the given writer.
func (pk *PublicKey) WriteTo(writer io.Writer) (int64, error) {
	return writeXML(writer, pk)
}

// WriteToFile writes the public key to an XML file. If any existing file with
// the same filename should be overwritten, set forceOverwrite to true.
func (pk *PublicKey) WriteToFile(filename string, forceOverwrite bool) (int64, error) {
	return writeXMLFile(filename, forceOverwrite, 0644, pk)
}

// WriteTo writes the XML-serialized private key to the given writer.
func (sk *PrivateKey) WriteTo(writer io.Writer) (int64, error) {
	return writeXML(writer, sk)
}

// WriteToFile writes the private key to an XML file readable only by its owner. If any existing
// file with the same filename should be overwritten, set forceOverwrite to true.
func (sk *PrivateKey) WriteToFile(filename string, forceOverwrite bool) (int64, error) {
	return writeXMLFile(filename, forceOverwrite, 0600, sk)
}

func writeXML(writer io.Writer, v interface{}) (int64, error) {
	// Write the standard XML header
	numHeaderBytes, err := writer.Write([]byte(XMLHeader))
	if err != nil {
		return 0, err
	}

	// And the actual XML body (with indentation)
	b, err := xml.MarshalIndent(v, "", "   ")
	if err != nil {
		return int64(numHeaderBytes), err
	}
	numBodyBytes, err := writer.Write(b)
	return int64(numHeaderBytes + numBodyBytes), err
}

func writeXMLFile(filename string, forceOverwrite bool, perm os.FileMode, v interface{}) (int64, error) {
	var f *os.File
	var err error
	if forceOverwrite {
		f, err = os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_TRUNC, perm)
	} else {
		// This should return an error if the file already exists
		f, err = os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_EXCL, perm)
	}
	if err != nil {
		return 0, err
	}
	defer common.Close(f)

	return writeXML(f, v)
}

// SignPublicKey signs the public key with an ECDSA key, so that whoever distributes it can be
// authenticated by verifiers holding the corresponding ECDSA public key.
func SignPublicKey(sk *ecdsa.PrivateKey, pk *PublicKey) (signed.Message, error) {
	if err := pk.Validate(); err != nil {
		return nil, err
	}
	msg, err := signed.MarshalSign(sk, pk)
	if err != nil {
		return nil, errors.WrapPrefix(err, "failed to sign public key", 0)
	}
	return msg, nil
}

// VerifyPublicKey checks the signature on a message created by SignPublicKey and returns the
// validated public key it contains.
func VerifyPublicKey(pk *ecdsa.PublicKey, msg signed.Message) (*PublicKey, error) {
	var decoded PublicKey
	if err := signed.UnmarshalVerify(pk, msg, &decoded); err != nil {
		return nil, errors.WrapPrefix(err, "failed to verify signed public key", 0)
	}
	group, err := rebuildGroup(decoded.Group)
	if err != nil {
		return nil, err
	}
	return NewPublicKey(group, decoded.Y1, decoded.Y2)
}
