package component

const TypeContainer = "container"

var containerSchema = Schema{
	Type:     TypeContainer,
	Label:    "Container",
	Category: CategoryLayout,
	Properties: []PropertySpec{
		{Name: "direction", Type: TypeEnum, Default: "column", Enum: []string{"row", "column"}, Policy: PolicySubstitute},
		{Name: "wrap", Type: TypeBool, Default: false, Policy: PolicySubstitute},
		{Name: "gap", Type: TypeInteger, Default: 8, Range: between(0, 100), Policy: PolicyClamp},
		{Name: "padding", Type: TypeInteger, Default: 16, Range: between(0, 200), Policy: PolicyClamp},
		{Name: "align", Type: TypeEnum, Default: "stretch", Enum: []string{"start", "center", "end", "stretch"}, Policy: PolicySubstitute},
		{Name: "justify", Type: TypeEnum, Default: "start", Enum: []string{"start", "center", "end", "space-between"}, Policy: PolicySubstitute},
		{Name: "background", Type: TypeColor, Default: "#ffffff", Policy: PolicySubstitute},
		{Name: "width", Type: TypeSize, Default: "auto", Policy: PolicySubstitute},
		{Name: "height", Type: TypeSize, Default: "auto", Policy: PolicySubstitute},
		{Name: "border_radius", Type: TypeInteger, Default: 0, Range: between(0, 100), Policy: PolicyClamp},
	},
}

func renderContainer(p Properties) (VisualOutput, error) {
	wrap := "nowrap"
	if p.Bool("wrap") {
		wrap = "wrap"
	}
	return VisualOutput{
		Element: "box",
		Layout: Attributes{
			"display":         "flex",
			"flex-direction":  p.String("direction"),
			"flex-wrap":       wrap,
			"gap":             px(p.Int("gap")),
			"padding":         px(p.Int("padding")),
			"align-items":     flexValue(p.String("align")),
			"justify-content": flexValue(p.String("justify")),
			"width":           p.String("width"),
			"height":          p.String("height"),
		},
		Style: Attributes{
			"background-color": p.String("background"),
			"border-radius":    px(p.Int("border_radius")),
		},
	}, nil
}

func flexValue(v string) string {
	switch v {
	case "start":
		return "flex-start"
	case "end":
		return "flex-end"
	}
	return v
}
