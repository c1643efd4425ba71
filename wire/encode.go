package wire

import (
	"errors"
	"fmt"

	"github.com/blang/semver/v4"
	"github.com/fxamacker/cbor/v2"

	"github.com/consensys/chroma"
	"github.com/consensys/chroma/logger"
)

var (
	// ErrKindMismatch is returned when an envelope carries a different
	// message kind than the caller expects.
	ErrKindMismatch = errors.New("wire: message kind mismatch")

	// ErrVersionMismatch is returned when the peer speaks an incompatible
	// protocol major version.
	ErrVersionMismatch = errors.New("wire: incompatible protocol version")
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{
		MaxArrayElements: 1 << 20,
		MaxMapPairs:      1 << 20,
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

type envelope struct {
	Version string          `cbor:"v"`
	Kind    Kind            `cbor:"k"`
	Body    cbor.RawMessage `cbor:"b"`
}

// Marshal encodes v and frames it with the protocol version and kind.
func Marshal(kind Kind, v any) ([]byte, error) {
	body, err := encMode.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("wire: encode %s: %w", kind, err)
	}
	return encMode.Marshal(envelope{
		Version: chroma.Version.String(),
		Kind:    kind,
		Body:    body,
	})
}

// Unmarshal decodes an envelope into v after checking the protocol version
// and the expected message kind.
func Unmarshal(data []byte, kind Kind, v any) error {
	var env envelope
	if err := decMode.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("wire: decode envelope: %w", err)
	}
	if err := checkVersion(env.Version); err != nil {
		return err
	}
	if env.Kind != kind {
		return fmt.Errorf("%w: got %s, want %s", ErrKindMismatch, env.Kind, kind)
	}
	if err := decMode.Unmarshal(env.Body, v); err != nil {
		return fmt.Errorf("wire: decode %s: %w", kind, err)
	}
	return nil
}

// checkVersion errors on a peer major version mismatch; any other
// difference is logged and tolerated.
func checkVersion(peer string) error {
	binaryVersion := chroma.Version
	peerVersion, err := semver.Parse(peer)
	if err != nil {
		return fmt.Errorf("wire: parsing peer version: %w", err)
	}

	if binaryVersion.Major != peerVersion.Major {
		return fmt.Errorf("%w: peer %s, binary %s", ErrVersionMismatch, peerVersion, binaryVersion)
	}
	if binaryVersion.Compare(peerVersion) != 0 {
		log := logger.Logger()
		log.Warn().Str("binary", binaryVersion.String()).Str("peer", peerVersion.String()).Msg("protocol version mismatch. there are no guarantees on compatibility")
	}
	return nil
}
