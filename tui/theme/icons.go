package theme

import (
	"os"

	"github.com/miralabs/mira/config"
)

// Nerd Font Icons (Private Constants)
const (
	nerdIconHeart     = "" // fa-heart (U+F004)
	nerdIconPhoto     = "" // fa-image (U+F03E)
	nerdIconCamera    = "" // fa-camera (U+F030)
	nerdIconChat      = "󰭹" // md-chat (U+F0B79)
	nerdIconAudio     = "" // fa-microphone (U+F130)
	nerdIconVideo     = "" // fa-video_camera (U+F03D)
	nerdIconLock      = "" // fa-lock (U+F023)
	nerdIconBlur      = "󰂵" // md-blur (U+F00B5)
	nerdIconSuccess   = "󰄬" // md-check (U+F012C)
	nerdIconError     = "" // cod-error (U+EA87)
	nerdIconWarning   = "" // fa-warning (U+F071)
	nerdIconInfo      = "󰋼" // md-information (U+F02FC)
	nerdIconPending   = "󰦖" // md-progress_clock (U+F0996)
	nerdIconConfirmed = "󰄳" // md-checkbox_marked_circle (U+F0133)
	nerdIconFailed    = "" // oct-x (U+F467)
	nerdIconSelect    = "󰱒" // md-checkbox_outline (U+F0C52)
	nerdIconUnselect  = "󰄱" // md-checkbox_blank_outline (U+F0131)
	nerdIconUpload    = "" // fa-cloud_upload (U+F0EE)
	nerdIconArrow     = "󰁔" // md-arrow_right (U+F0054)
	nerdIconArrowLeft = "󰁍" // md-arrow_left (U+F004D)
	nerdIconBullet    = "" // oct-dot_fill (U+F444)
)

// ASCII Fallback Icons (Private Constants)
const (
	asciiIconHeart     = "♥"
	asciiIconPhoto     = "▣"
	asciiIconCamera    = "◉"
	asciiIconChat      = "★"
	asciiIconAudio     = "♪"
	asciiIconVideo     = "▶"
	asciiIconLock      = "[L]"
	asciiIconBlur      = "▒"
	asciiIconSuccess   = "✓"
	asciiIconError     = "✗"
	asciiIconWarning   = "⚠"
	asciiIconInfo      = "ℹ"
	asciiIconPending   = "…"
	asciiIconConfirmed = "●"
	asciiIconFailed    = "✗"
	asciiIconSelect    = "[x]"
	asciiIconUnselect  = "[ ]"
	asciiIconUpload    = "[+]"
	asciiIconArrow     = "→"
	asciiIconArrowLeft = "←"
	asciiIconBullet    = "•"
)

// Public Icon Variables
var (
	IconHeart     string
	IconPhoto     string
	IconCamera    string
	IconChat      string
	IconAudio     string
	IconVideo     string
	IconLock      string
	IconBlur      string
	IconSuccess   string
	IconError     string
	IconWarning   string
	IconInfo      string
	IconPending   string
	IconConfirmed string
	IconFailed    string
	IconSelect    string
	IconUnselect  string
	IconUpload    string
	IconArrow     string
	IconArrowLeft string
	IconBullet    string
)

// init function determines which icon set to use
func init() {
	useASCII := false

	// 1. Check environment variable first
	if os.Getenv("MIRA_ICONS") == "ascii" {
		useASCII = true
	} else {
		// 2. Check config file
		cfg, err := config.LoadDefault()
		if err == nil && cfg.TUI != nil && cfg.TUI.Icons == "ascii" {
			useASCII = true
		}
	}

	if useASCII {
		IconHeart = asciiIconHeart
		IconPhoto = asciiIconPhoto
		IconCamera = asciiIconCamera
		IconChat = asciiIconChat
		IconAudio = asciiIconAudio
		IconVideo = asciiIconVideo
		IconLock = asciiIconLock
		IconBlur = asciiIconBlur
		IconSuccess = asciiIconSuccess
		IconError = asciiIconError
		IconWarning = asciiIconWarning
		IconInfo = asciiIconInfo
		IconPending = asciiIconPending
		IconConfirmed = asciiIconConfirmed
		IconFailed = asciiIconFailed
		IconSelect = asciiIconSelect
		IconUnselect = asciiIconUnselect
		IconUpload = asciiIconUpload
		IconArrow = asciiIconArrow
		IconArrowLeft = asciiIconArrowLeft
		IconBullet = asciiIconBullet
	} else {
		IconHeart = nerdIconHeart
		IconPhoto = nerdIconPhoto
		IconCamera = nerdIconCamera
		IconChat = nerdIconChat
		IconAudio = nerdIconAudio
		IconVideo = nerdIconVideo
		IconLock = nerdIconLock
		IconBlur = nerdIconBlur
		IconSuccess = nerdIconSuccess
		IconError = nerdIconError
		IconWarning = nerdIconWarning
		IconInfo = nerdIconInfo
		IconPending = nerdIconPending
		IconConfirmed = nerdIconConfirmed
		IconFailed = nerdIconFailed
		IconSelect = nerdIconSelect
		IconUnselect = nerdIconUnselect
		IconUpload = nerdIconUpload
		IconArrow = nerdIconArrow
		IconArrowLeft = nerdIconArrowLeft
		IconBullet = nerdIconBullet
	}
}
