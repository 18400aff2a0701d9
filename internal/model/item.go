package model

// Root containers. Item IDs handed out by the favorites store are
// positive, so these sort before any folder ID when ordering items by
// container value.
const (
	ContainerDesktop int64 = -100
	ContainerHotseat int64 = -101
)

// InvalidScreenID marks "no screen" (workspace empty or page unknown).
const InvalidScreenID int64 = -1

type ItemKind int

const (
	KindShortcut ItemKind = iota
	KindFolder
	KindWidget
)

func (k ItemKind) String() string {
	switch k {
	case KindShortcut:
		return "shortcut"
	case KindFolder:
		return "folder"
	case KindWidget:
		return "widget"
	default:
		return "unknown"
	}
}

// ItemInfo is one placed entry on the workspace: a shortcut, a folder,
// or a widget. Container is ContainerDesktop, ContainerHotseat, or the
// ID of a folder item. ScreenID is the workspace screen for desktop
// items and the slot rank for hotseat items. CellX/CellY only mean
// anything on the desktop grid. Provider and Label are set on widget
// items only.
type ItemInfo struct {
	ID        int64
	Container int64
	ScreenID  int64
	CellX     int
	CellY     int
	SpanX     int
	SpanY     int
	Kind      ItemKind
	Title     string
	Exec      string
	AppID     string
	Provider  string
	Label     string
}

// OnDesktop reports whether the item sits directly on a workspace screen.
func (it *ItemInfo) OnDesktop() bool { return it.Container == ContainerDesktop }

// InHotseat reports whether the item sits in the dock row.
func (it *ItemInfo) InHotseat() bool { return it.Container == ContainerHotseat }

// WidgetSpec describes an installable widget in the catalog, keyed by
// provider when bound to the consumer.
type WidgetSpec struct {
	Provider string
	Label    string
	SpanX    int
	SpanY    int
}

// AppInfo is a launchable application discovered by the app scanner.
type AppInfo struct {
	AppID string
	Title string
	Exec  string
}
