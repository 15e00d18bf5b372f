package render

type Renderer interface {
	Init() error
	Deinit()
	Status(width int, line string)
	Line(message string)
}
