package smartcast

// Sentinel app names returned by CurrentAppName. Distinct values so
// callers can tell "nothing is running" from "something unrecognized
// is running".
const (
	NoAppRunning = "_no_app_running"
	UnknownApp   = "_unknown_app"
)

// DefaultPort is the SmartCast API port on current firmware. Older
// displays listen on 9000 instead.
const (
	DefaultPort = 7345
	LegacyPort  = 9000
)

// Key is a remote key identified by codeset and code, the pair the
// /key_command/ endpoint expects
type Key struct {
	Codeset int
	Code    int
}

// Remote keys for SmartCast devices
var (
	// Playback
	KeySeekForward = Key{2, 0}
	KeySeekBack    = Key{2, 1}
	KeyPause       = Key{2, 2}
	KeyPlay        = Key{2, 3}

	// Navigation
	KeyDown  = Key{3, 0}
	KeyLeft  = Key{3, 1}
	KeyOK    = Key{3, 2}
	KeyRight = Key{3, 7}
	KeyUp    = Key{3, 8}

	// Menu
	KeyBack      = Key{4, 0}
	KeySmartCast = Key{4, 3}
	KeyCCToggle  = Key{4, 4}
	KeyInfo      = Key{4, 6}
	KeyMenu      = Key{4, 8}
	KeyHome      = Key{4, 15}

	// Volume
	KeyVolumeDown = Key{5, 0}
	KeyVolumeUp   = Key{5, 1}
	KeyMuteOff    = Key{5, 2}
	KeyMuteOn     = Key{5, 3}
	KeyMuteToggle = Key{5, 4}

	// Input
	KeyInputNext = Key{7, 1}

	// Channel
	KeyChannelDown = Key{8, 0}
	KeyChannelUp   = Key{8, 1}
	KeyChannelPrev = Key{8, 2}

	// Exit
	KeyExit = Key{9, 0}

	// Power
	KeyPowerOff    = Key{11, 0}
	KeyPowerOn     = Key{11, 1}
	KeyPowerToggle = Key{11, 2}
)

// KeyByName maps CLI-friendly key names to key codes
var KeyByName = map[string]Key{
	"seek-fwd":     KeySeekForward,
	"seek-back":    KeySeekBack,
	"pause":        KeyPause,
	"play":         KeyPlay,
	"down":         KeyDown,
	"left":         KeyLeft,
	"ok":           KeyOK,
	"right":        KeyRight,
	"up":           KeyUp,
	"back":         KeyBack,
	"smartcast":    KeySmartCast,
	"cc":           KeyCCToggle,
	"info":         KeyInfo,
	"menu":         KeyMenu,
	"home":         KeyHome,
	"volume-down":  KeyVolumeDown,
	"volume-up":    KeyVolumeUp,
	"mute-off":     KeyMuteOff,
	"mute-on":      KeyMuteOn,
	"mute":         KeyMuteToggle,
	"input-next":   KeyInputNext,
	"channel-down": KeyChannelDown,
	"channel-up":   KeyChannelUp,
	"channel-prev": KeyChannelPrev,
	"exit":         KeyExit,
	"power-off":    KeyPowerOff,
	"power-on":     KeyPowerOn,
	"power":        KeyPowerToggle,
}
