package sigma

import "golang.org/x/crypto/cryptobyte"

// Message is a value that can be placed on the wire.
type Message interface {
	// Size returns the length of the encoding in bytes.
	Size() int
	// Encode appends the canonical encoding to b.
	Encode(b *cryptobyte.Builder)
}

// Encode returns the concatenated encodings of msgs. A nil entry encodes as
// nothing.
func Encode(msgs ...Message) []byte {
	n := 0
	for _, m := range msgs {
		if m != nil {
			n += m.Size()
		}
	}
	b := cryptobyte.NewFixedBuilder(make([]byte, 0, n))
	for _, m := range msgs {
		if m != nil {
			m.Encode(b)
		}
	}
	return b.BytesOrPanic()
}

// Size returns the summed encoded size of msgs.
func Size(msgs ...Message) int {
	n := 0
	for _, m := range msgs {
		if m != nil {
			n += m.Size()
		}
	}
	return n
}
