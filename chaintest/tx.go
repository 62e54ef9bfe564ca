package chaintest

import "github.com/iov-one/lockchain"

// Tx represents a transaction carrying a single message.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg lockchain.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ lockchain.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (lockchain.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg represents a message that can be routed to any handler.
type Msg struct {
	// RoutePath returned by the path method, consumed by the router.
	RoutePath string
	// Serialized represents the serialized form of this message.
	Serialized []byte
	// Err if set is returned by any method call.
	Err error
}

var _ lockchain.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

func (m *Msg) Unmarshal(b []byte) error {
	m.Serialized = b
	return m.Err
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}
