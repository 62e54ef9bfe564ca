package lockchain

import (
	"encoding/json"
	"time"

	"github.com/iov-one/lockchain/errors"
)

// UnixTime represents a point in time as POSIX time.
// Instead of using Go's time.Time that includes nanoseconds a primitive
// int64 type with seconds precision is used. This is the precision of all
// timestamps stored by the lockup records.
type UnixTime int64

// Time returns a time.Time structure that represents the same moment in time.
func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

// IsZero returns true if this time represents a zero value.
func (t UnixTime) IsZero() bool {
	return t == 0
}

// Add modifies this UNIX time by given duration. This is compatible with
// time.Time.Add method. Any duration value smaller than a second is ignored
// as it cannot be represented by the UnixTime type.
func (t UnixTime) Add(d time.Duration) UnixTime {
	return t + UnixTime(d/time.Second)
}

// AddDuration returns this time moved by given duration.
func (t UnixTime) AddDuration(d UnixDuration) UnixTime {
	return t + UnixTime(d)
}

// AsUnixTime converts given Time structure into its UNIX time representation.
// All time information more granular than a second is dropped as it cannot
// be represented by the UnixTime type.
func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

// UnmarshalJSON supports unmarshaling both as time.Time and from a number.
// Usually a number is used as a representation of this time in JSON but it is
// convinient to use a string format in configurations (ie genesis file).
func (t *UnixTime) UnmarshalJSON(raw []byte) error {
	var unix int64
	if err := json.Unmarshal(raw, &unix); err == nil {
		if unix < 0 {
			return errors.Wrap(errors.ErrInput, "time before epoch")
		}
		*t = UnixTime(unix)
		return nil
	}

	var stdtime time.Time
	if err := json.Unmarshal(raw, &stdtime); err == nil {
		unix := UnixTime(stdtime.Unix())
		if unix < 0 {
			return errors.Wrap(errors.ErrInput, "time before epoch")
		}
		*t = unix
		return nil
	}

	return errors.Wrap(errors.ErrInput, "invalid time format")
}

// Validate returns an error if this time value is invalid.
func (t UnixTime) Validate() error {
	if t < 0 {
		return errors.Wrap(errors.ErrState, "negative value")
	}
	return nil
}

// String returns the usual string representation of this time as the time.Time
// structure would.
func (t UnixTime) String() string {
	return t.Time().String()
}

// UnixDuration represents a time duration with granularity of a second.
// Lock periods and the deposit period are declared using this type.
type UnixDuration int32

// AsUnixDuration converts given time.Duration into UnixDuration. Be aware of
// the precision loss: anything shorter than a second is dropped.
func AsUnixDuration(d time.Duration) UnixDuration {
	return UnixDuration(d / time.Second)
}

// Duration returns the time.Duration representation of this value.
func (d UnixDuration) Duration() time.Duration {
	return time.Duration(d) * time.Second
}

// UnmarshalJSON loads JSON serialized representation into this value. JSON
// serialized value can be represented as both number of seconds and a human
// readable string with time unit as used by the time package.
func (d *UnixDuration) UnmarshalJSON(raw []byte) error {
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return errors.Wrap(errors.ErrInput, "invalid duration string")
		}
		dur, err := time.ParseDuration(s)
		if err != nil {
			return errors.Wrapf(errors.ErrInput, "invalid duration %q", s)
		}
		*d = AsUnixDuration(dur)
		return nil
	}

	var secs int32
	if err := json.Unmarshal(raw, &secs); err != nil {
		return errors.Wrap(errors.ErrInput, "invalid duration")
	}
	*d = UnixDuration(secs)
	return nil
}

// MarshalJSON returns the number of seconds.
func (d UnixDuration) MarshalJSON() ([]byte, error) {
	return json.Marshal(int32(d))
}

func (d UnixDuration) String() string {
	return d.Duration().String()
}
