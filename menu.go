package main

import "strings"

// ActionKind identifies what a tray menu entry does when selected.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionOpen
	ActionNewContact
	ActionQuit
	ActionChat
)

// Action ids as seen by the tray and in logs.
const (
	actionIDOpen       = "open"
	actionIDNewContact = "new_contact"
	actionIDQuit       = "quit"
	chatActionPrefix   = "chat_"
)

// contactLabelMax is the number of characters of a contact id shown in the menu.
const contactLabelMax = 12

// Action is a tray menu action. Contact is only set for ActionChat.
type Action struct {
	Kind    ActionKind
	Contact string
}

// OpenAction returns the action that reveals the main window.
func OpenAction() Action { return Action{Kind: ActionOpen} }

// NewContactAction returns the action that reveals the window and asks the
// UI to start a new contact.
func NewContactAction() Action { return Action{Kind: ActionNewContact} }

// QuitAction returns the action that exits the application.
func QuitAction() Action { return Action{Kind: ActionQuit} }

// ChatAction returns the action for a recent-contact entry.
func ChatAction(contact string) Action {
	return Action{Kind: ActionChat, Contact: contact}
}

// ID returns the string key of the action.
func (a Action) ID() string {
	switch a.Kind {
	case ActionOpen:
		return actionIDOpen
	case ActionNewContact:
		return actionIDNewContact
	case ActionQuit:
		return actionIDQuit
	case ActionChat:
		return chatActionPrefix + a.Contact
	default:
		return ""
	}
}

func (a Action) String() string { return a.ID() }

// ParseAction maps a string key back to an Action. The chat prefix is
// stripped exactly once, so "chat_chat_x" yields contact "chat_x".
func ParseAction(id string) (Action, bool) {
	switch id {
	case actionIDOpen:
		return OpenAction(), true
	case actionIDNewContact:
		return NewContactAction(), true
	case actionIDQuit:
		return QuitAction(), true
	}
	if contact, ok := strings.CutPrefix(id, chatActionPrefix); ok {
		return ChatAction(contact), true
	}
	return Action{}, false
}

// MenuEntry is one row of the tray menu: either a separator or a
// selectable item.
type MenuEntry struct {
	Separator bool
	Label     string
	Tooltip   string
	Action    Action
}

// TrayMenu is a complete tray context menu, ready to be installed.
type TrayMenu struct {
	Entries []MenuEntry
}

// Items returns the selectable entries, skipping separators.
func (m TrayMenu) Items() []MenuEntry {
	items := make([]MenuEntry, 0, len(m.Entries))
	for _, e := range m.Entries {
		if !e.Separator {
			items = append(items, e)
		}
	}
	return items
}

func separator() MenuEntry { return MenuEntry{Separator: true} }

// BuildTrayMenu builds the tray menu for the given recent contacts.
// Contacts are listed in input order; duplicates are kept.
func BuildTrayMenu(contacts []string) TrayMenu {
	entries := make([]MenuEntry, 0, 5+len(contacts)+1)
	entries = append(entries,
		MenuEntry{Label: "Open Pester", Tooltip: "Show the Pester window", Action: OpenAction()},
		separator(),
		MenuEntry{Label: "New Contact…", Tooltip: "Start a conversation", Action: NewContactAction()},
	)

	if len(contacts) > 0 {
		entries = append(entries, separator())
		for _, c := range contacts {
			entries = append(entries, MenuEntry{
				Label:   menuLabel(c),
				Tooltip: c,
				Action:  ChatAction(c),
			})
		}
	}

	entries = append(entries,
		separator(),
		MenuEntry{Label: "Quit", Tooltip: "Quit Pester", Action: QuitAction()},
	)
	return TrayMenu{Entries: entries}
}

// menuLabel shortens a contact id to contactLabelMax characters, marking
// the cut with an ellipsis.
func menuLabel(id string) string {
	runes := []rune(id)
	if len(runes) <= contactLabelMax {
		return id
	}
	return string(runes[:contactLabelMax]) + "…"
}
