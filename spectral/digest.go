package spectral

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Digest is a hex blake3 hash of the parameters, points and tables, so two
// evaluations can be compared for bitwise equality.
func (r *EvaluationResult) Digest() string {
	hasher := blake3.New()
	buf := new(bytes.Buffer)

	buf.WriteByte(byte(r.Family))
	binary.Write(buf, binary.LittleEndian, r.Params.Alpha)
	binary.Write(buf, binary.LittleEndian, r.Params.Beta)
	binary.Write(buf, binary.LittleEndian, int64(r.MaxDegree))
	binary.Write(buf, binary.LittleEndian, int64(r.DerivativeOrder))
	binary.Write(buf, binary.LittleEndian, r.Points)
	binary.Write(buf, binary.LittleEndian, r.Values.RawMatrix().Data)
	if r.Derivatives != nil {
		binary.Write(buf, binary.LittleEndian, r.Derivatives.RawMatrix().Data)
	}

	hasher.Write(buf.Bytes())
	return hex.EncodeToString(hasher.Sum(nil))
}
