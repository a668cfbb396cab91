package hecke

import (
	"bytes"
	"fmt"
	"io"
	"math/big"

	"github.com/zeebo/blake3"

	"github.com/functionfields/drinfeld/galois"
	"github.com/functionfields/drinfeld/ring"
	"github.com/functionfields/drinfeld/utils/buffer"
)

// WeilNumberRecord describes one rank-2 isogeny class: the Weil polynomial
// X^2 + A*X + B*P^n together with the number N of isomorphism classes
// sharing it. A multiplicity of 0 is legitimate (degenerate class group)
// and such records are still listed.
type WeilNumberRecord struct {
	A ring.Poly
	B galois.Element
	N *big.Int
}

// IsogenyClassList is the complete weighted enumeration of rank-2 isogeny
// classes for a field size q, exponent n and characteristic polynomial P.
// PPow is the characteristic-power marker P^n heading the list. The list is
// independent of weight and type and is the artifact reused across queries;
// it must be treated as immutable once built.
type IsogenyClassList struct {
	Q       uint64
	N       int
	P       ring.Poly
	PPow    ring.Poly
	Records []WeilNumberRecord
}

// CacheKey returns a 32-byte blake3 digest identifying the list by its
// defining key (q, n, P), suitable as a memoization or file-cache key.
func (l *IsogenyClassList) CacheKey() [32]byte {
	h := blake3.New()
	buf := new(bytes.Buffer)
	buffer.WriteUint64(buf, l.Q)
	buffer.WriteInt(buf, l.N)
	writePoly(buf, l.P)
	h.Write(buf.Bytes())
	var key [32]byte
	copy(key[:], h.Sum(nil))
	return key
}

func writePoly(w io.Writer, p ring.Poly) (n int64, err error) {
	cs := make([]uint64, len(p.Coeffs))
	for i, c := range p.Coeffs {
		cs[i] = uint64(c)
	}
	return buffer.WriteUint64Slice(w, cs)
}

func readPoly(r io.Reader, p *ring.Poly) (n int64, err error) {
	var cs []uint64
	if n, err = buffer.ReadUint64Slice(r, &cs); err != nil {
		return
	}
	if len(cs) == 0 {
		*p = ring.Poly{}
		return
	}
	coeffs := make([]galois.Element, len(cs))
	for i, c := range cs {
		coeffs[i] = galois.Element(c)
	}
	*p = ring.Poly{Coeffs: coeffs}
	return
}

// BinarySize returns the size in bytes of the serialized list.
func (l *IsogenyClassList) BinarySize() (size int) {
	size = 8 + 8 // Q, N
	size += buffer.BinarySizeUint64Slice(len(l.P.Coeffs))
	size += buffer.BinarySizeUint64Slice(len(l.PPow.Coeffs))
	size += 8 // record count
	for _, rec := range l.Records {
		size += buffer.BinarySizeUint64Slice(len(rec.A.Coeffs))
		size += 8                      // B
		size += 8 + len(rec.N.Bytes()) // length prefix, magnitude
	}
	return
}

// WriteTo serializes the list to w. The format is a sequence of big-endian
// words; multiplicities, which are non-negative, are written as
// length-prefixed magnitude bytes.
func (l *IsogenyClassList) WriteTo(w io.Writer) (n int64, err error) {
	var inc int64
	if inc, err = buffer.WriteUint64(w, l.Q); err != nil {
		return n + inc, err
	}
	n += inc
	if inc, err = buffer.WriteInt(w, l.N); err != nil {
		return n + inc, err
	}
	n += inc
	if inc, err = writePoly(w, l.P); err != nil {
		return n + inc, err
	}
	n += inc
	if inc, err = writePoly(w, l.PPow); err != nil {
		return n + inc, err
	}
	n += inc
	if inc, err = buffer.WriteInt(w, len(l.Records)); err != nil {
		return n + inc, err
	}
	n += inc
	for _, rec := range l.Records {
		if inc, err = writePoly(w, rec.A); err != nil {
			return n + inc, err
		}
		n += inc
		if inc, err = buffer.WriteUint64(w, uint64(rec.B)); err != nil {
			return n + inc, err
		}
		n += inc
		if inc, err = buffer.WriteBytes(w, rec.N.Bytes()); err != nil {
			return n + inc, err
		}
		n += inc
	}
	return n, nil
}

// ReadFrom deserializes a list from r, replacing the receiver's content.
func (l *IsogenyClassList) ReadFrom(r io.Reader) (n int64, err error) {
	var inc int64
	if inc, err = buffer.ReadUint64(r, &l.Q); err != nil {
		return n + inc, err
	}
	n += inc
	if inc, err = buffer.ReadInt(r, &l.N); err != nil {
		return n + inc, err
	}
	n += inc
	if inc, err = readPoly(r, &l.P); err != nil {
		return n + inc, err
	}
	n += inc
	if inc, err = readPoly(r, &l.PPow); err != nil {
		return n + inc, err
	}
	n += inc
	var count int
	if inc, err = buffer.ReadInt(r, &count); err != nil {
		return n + inc, err
	}
	n += inc
	if count < 0 {
		return n, fmt.Errorf("hecke: invalid record count %d", count)
	}
	// the count is untrusted input; grow with the records actually read
	l.Records = make([]WeilNumberRecord, 0, min(count, 1024))
	for i := 0; i < count; i++ {
		var rec WeilNumberRecord
		if inc, err = readPoly(r, &rec.A); err != nil {
			return n + inc, err
		}
		n += inc
		var b uint64
		if inc, err = buffer.ReadUint64(r, &b); err != nil {
			return n + inc, err
		}
		n += inc
		rec.B = galois.Element(b)
		var mag []byte
		if inc, err = buffer.ReadBytes(r, &mag); err != nil {
			return n + inc, err
		}
		n += inc
		rec.N = new(big.Int).SetBytes(mag)
		l.Records = append(l.Records, rec)
	}
	return n, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (l *IsogenyClassList) MarshalBinary() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, l.BinarySize()))
	if _, err := l.WriteTo(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (l *IsogenyClassList) UnmarshalBinary(data []byte) error {
	_, err := l.ReadFrom(bytes.NewReader(data))
	return err
}

// TotalMass returns the sum of the multiplicities of all records, the
// quantity checked against mass formulas in tests.
func (l *IsogenyClassList) TotalMass() *big.Int {
	mass := new(big.Int)
	for _, rec := range l.Records {
		mass.Add(mass, rec.N)
	}
	return mass
}

func (l *IsogenyClassList) String() string {
	return fmt.Sprintf("IsogenyClassList{q=%d, n=%d, records=%d}", l.Q, l.N, len(l.Records))
}
