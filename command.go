package winshell

// command is one unit of work queued from caller goroutines and executed
// on the pump thread.
type command interface {
	isCommand()
}

type addAreaCmd struct {
	area *Area
}

type updateIconCmd struct {
	area Token
	icon IconID
}

type updateTooltipCmd struct {
	area    Token
	tooltip string
}

type removeAreaCmd struct {
	area Token
}

type updateMenuItemCmd struct {
	item Token
	mod  itemModify
}

type notifyCmd struct {
	area Token
	id   Token
	n    Notification
}

type writeClipboardCmd struct {
	data []byte
}

type sendCopyDataCmd struct {
	targetClass string
	ty          uint64
	data        []byte
}

type shutdownCmd struct{}

func (addAreaCmd) isCommand()        {}
func (updateIconCmd) isCommand()     {}
func (updateTooltipCmd) isCommand()  {}
func (removeAreaCmd) isCommand()     {}
func (updateMenuItemCmd) isCommand() {}
func (notifyCmd) isCommand()         {}
func (writeClipboardCmd) isCommand() {}
func (sendCopyDataCmd) isCommand()   {}
func (shutdownCmd) isCommand()       {}

// itemModify carries the optional fields of an UpdateMenuItem call. Nil
// means "leave unchanged".
type itemModify struct {
	label   *string
	checked *bool
	enabled *bool
}

// ItemModifier configures one aspect of UpdateMenuItem.
type ItemModifier func(*itemModify)

// WithLabel replaces the item's label.
func WithLabel(s string) ItemModifier {
	return func(m *itemModify) { m.label = &s }
}

// WithChecked sets or clears the item's check mark.
func WithChecked(v bool) ItemModifier {
	return func(m *itemModify) { m.checked = &v }
}

// WithEnabled enables or greys out the item.
func WithEnabled(v bool) ItemModifier {
	return func(m *itemModify) { m.enabled = &v }
}
