package component

// Builtins 内置组件调色板，顺序即声明顺序
func Builtins() []Definition {
	return []Definition{
		{Schema: containerSchema, Renderer: RendererFunc(renderContainer)},
		{Schema: headingSchema, Renderer: RendererFunc(renderHeading)},
		{Schema: imageSchema, Renderer: RendererFunc(renderImage)},
		{Schema: shapeSchema, Renderer: RendererFunc(renderShape)},
		{Schema: dividerSchema, Renderer: RendererFunc(renderDivider)},
		{Schema: qrcodeSchema, Renderer: RendererFunc(renderQRCode)},
	}
}

func between(min, max float64) *Range {
	return &Range{Min: min, Max: max}
}
