package fonts

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

type FontName string

const (
	Mono FontName = "mono"
)

func (f FontName) Get() font.Face {
	return getFont(f)
}

var (
	fonts = map[FontName]font.Face{
		Mono: basicfont.Face7x13,
	}
)

// Register installs face under name, replacing any previous face.
func Register(name FontName, face font.Face) {
	fonts[name] = face
}

// Debug is the face of the debug overlay.
func Debug() font.Face {
	return Mono.Get()
}

func getFont(name FontName) font.Face {
	f, ok := fonts[name]
	if !ok {
		return basicfont.Face7x13
	}
	return f
}
