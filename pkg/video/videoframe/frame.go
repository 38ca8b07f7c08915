package videoframe

type Dimensions struct {
	W, H int
}

type NoCloser interface {
	DataRef() interface{}
	Dimensions() Dimensions
	Empty() bool
}

type Frame interface {
	NoCloser
	Close()
}
