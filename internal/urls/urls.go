package urls

// Repository is the project home page.
const Repository = "https://github.com/muurk/orderdesk"

// Issues is where bugs and catalog corrections are reported.
const Issues = "https://github.com/muurk/orderdesk/issues"

// ClickToChat documents the deep-link format orders are sent through.
const ClickToChat = "https://faq.whatsapp.com/5913398998672934"

// ClipboardSetup explains the clipboard backends and their requirements
// (xclip, xsel or wl-clipboard on Linux, OSC 52 support in the terminal).
const ClipboardSetup = "https://github.com/muurk/orderdesk#clipboard"
