package eventbus

type InstanceEventType string

const (
	InstanceEventRendered InstanceEventType = "InstanceRendered"
	InstanceEventFailed   InstanceEventType = "InstanceFailed"
)

type InstanceEvent struct {
	Type       InstanceEventType
	InstanceID uint
	TemplateID uint
	RenderID   string
	ErrorKind  string
	Error      string
	CacheHit   bool
}

type InstanceEventHandler = Handler[InstanceEvent]
type InstanceEventBus = Bus[InstanceEventType, InstanceEvent]

func NewInstanceEventBus() *InstanceEventBus {
	return NewBus[InstanceEventType, InstanceEvent]()
}
