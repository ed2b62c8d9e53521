package winshell

// IconID indexes an icon buffer registered through Icons.AddBuffer.
type IconID int

type iconBuffer struct {
	data   []byte
	width  int
	height int
}

// Icons is the table of icon images available to tray areas. Register
// every image before Build; areas and UpdateIcon refer to them by IconID.
type Icons struct {
	buffers []iconBuffer
}

// AddBuffer registers an icon image and returns its ID. PNG, JPEG and GIF
// buffers are converted to an ICO container; buffers already in ICO
// format pass through untouched. width and height are the intended
// display size and are used when the image needs rendering hints.
func (i *Icons) AddBuffer(data []byte, width, height int) IconID {
	id := IconID(len(i.buffers))
	i.buffers = append(i.buffers, iconBuffer{
		data:   normalizeIcon(data),
		width:  width,
		height: height,
	})
	return id
}

func (i *Icons) get(id IconID) (iconBuffer, bool) {
	if id < 0 || int(id) >= len(i.buffers) {
		return iconBuffer{}, false
	}
	return i.buffers[id], true
}
