package main

type Mode int

const (
	ModeStartup Mode = iota
	ModeNormal
	ModeFileInput
	ModeConfirm
	ModeBrowse
)

type SaveTarget int

const (
	SavePNG SaveTarget = iota
	SavePDF
	SaveDatabase
)

func (t SaveTarget) String() string {
	switch t {
	case SavePNG:
		return "PNG"
	case SavePDF:
		return "PDF"
	case SaveDatabase:
		return "database"
	default:
		return "unknown"
	}
}

type ConfirmAction int

const (
	ConfirmClear ConfirmAction = iota
	ConfirmQuit
	ConfirmReplaceImage
)

const (
	sampleImageURL = "https://images.unsplash.com/photo-1503387762-592deb58ef4e?q=80&w=2000&auto=format&fit=crop"
	debugLogFile   = "redline-debug.log"
	browseLimit    = 50
	toolbarRows    = 1
	statusRows     = 1
)
