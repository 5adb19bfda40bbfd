package component

import "strconv"

const TypeShape = "shape"

var shapeSchema = Schema{
	Type:     TypeShape,
	Label:    "Shape",
	Category: CategoryShape,
	Properties: []PropertySpec{
		{Name: "shape", Type: TypeEnum, Default: "rectangle", Enum: []string{"rectangle", "circle", "triangle"}, Policy: PolicySubstitute},
		{Name: "width", Type: TypeInteger, Default: 100, Range: between(1, 2000), Policy: PolicyClamp},
		{Name: "height", Type: TypeInteger, Default: 100, Range: between(1, 2000), Policy: PolicyClamp},
		{Name: "fill", Type: TypeColor, Default: "#3b82f6", Policy: PolicySubstitute},
		{Name: "stroke", Type: TypeColor, Default: "", Policy: PolicySubstitute},
		{Name: "stroke_width", Type: TypeInteger, Default: 0, Range: between(0, 50), Policy: PolicyClamp},
		{Name: "rotation", Type: TypeInteger, Default: 0, Range: between(0, 360), Policy: PolicyClamp},
		{Name: "opacity", Type: TypeNumber, Default: 1.0, Range: between(0, 1), Policy: PolicyClamp},
	},
}

func renderShape(p Properties) (VisualOutput, error) {
	shape := p.String("shape")
	style := Attributes{
		"background-color": p.String("fill"),
		"opacity":          strconv.FormatFloat(p.Float("opacity"), 'f', -1, 64),
	}
	switch shape {
	case "circle":
		style["border-radius"] = "50%"
	case "triangle":
		style["clip-path"] = "polygon(50% 0%, 100% 100%, 0% 100%)"
	}
	if stroke, width := p.String("stroke"), p.Int("stroke_width"); stroke != "" && width > 0 {
		style["border"] = px(width) + " solid " + stroke
	}
	if rotation := p.Int("rotation"); rotation != 0 {
		style["transform"] = "rotate(" + strconv.Itoa(rotation) + "deg)"
	}
	return VisualOutput{
		Element: "shape",
		Layout: Attributes{
			"width":  px(p.Int("width")),
			"height": px(p.Int("height")),
		},
		Style: style,
		Attrs: Attributes{"shape": shape},
	}, nil
}
