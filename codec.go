package lockchain

import (
	"reflect"

	"github.com/iov-one/lockchain/errors"
	amino "github.com/tendermint/go-amino"
)

// cdc serializes all models and messages. None of the persisted types
// contain interface fields, so no concrete type registration is needed.
var cdc = amino.NewCodec()

// MarshalBinary returns the binary representation of given structure. Use
// it to implement Marshaller.
func MarshalBinary(obj interface{}) ([]byte, error) {
	raw, err := cdc.MarshalBinaryBare(obj)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "marshal %T: %s", obj, err)
	}
	return raw, nil
}

// UnmarshalBinary loads given binary representation into the destination,
// which must be a pointer. Use it to implement Persistent.
func UnmarshalBinary(raw []byte, dest interface{}) error {
	// A structure with all fields set to zero values is serialized into
	// an empty byte array. The codec refuses to decode it.
	if len(raw) == 0 {
		v := reflect.ValueOf(dest)
		if v.Kind() != reflect.Ptr || v.IsNil() {
			return errors.Wrapf(errors.ErrHuman, "destination must be a non nil pointer, got %T", dest)
		}
		v.Elem().Set(reflect.Zero(v.Elem().Type()))
		return nil
	}
	if err := cdc.UnmarshalBinaryBare(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrInput, "unmarshal %T: %s", dest, err)
	}
	return nil
}
