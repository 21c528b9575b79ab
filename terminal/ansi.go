package terminal

// Control bytes seen on the wire
const (
	ESC byte = 0x1b
	BEL byte = 0x07
)

// stringTerminator is ST in its 7-bit form. Replies ending with it are
// rejected rather than parsed.
var stringTerminator = []byte{ESC, '\\'}

// replyIntroducer opens an OSC 52 reply. Only input holding one can be an
// ST-terminated reply; a bare ESC \ is keyboard input (Alt+\).
var replyIntroducer = []byte{ESC, ']', '5', '2', ';'}
