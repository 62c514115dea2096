package analyzer

import (
	"github.com/minio/highwayhash"
)

// fingerprintKey must stay constant: a fingerprint taken at analysis time is
// compared with one taken when release calls are inserted, possibly by another
// process. HighwayHash needs exactly 32 key bytes.
var fingerprintKey = []byte("csweep-source-fingerprint-key-32")

// Fingerprint hashes raw source content so the augment step can tell whether the
// file changed after its mapping was produced. It is not a security boundary.
func Fingerprint(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}
