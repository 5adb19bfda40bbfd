package component

const TypeDivider = "divider"

var dividerSchema = Schema{
	Type:     TypeDivider,
	Label:    "Divider",
	Category: CategoryDecoration,
	Properties: []PropertySpec{
		{Name: "style", Type: TypeEnum, Default: "solid", Enum: []string{"solid", "dashed", "dotted"}, Policy: PolicySubstitute},
		{Name: "thickness", Type: TypeInteger, Default: 1, Range: between(1, 20), Policy: PolicyClamp},
		{Name: "color", Type: TypeColor, Default: "#e5e7eb", Policy: PolicySubstitute},
		{Name: "width", Type: TypeSize, Default: "100%", Policy: PolicySubstitute},
		{Name: "margin", Type: TypeInteger, Default: 16, Range: between(0, 100), Policy: PolicyClamp},
	},
}

// renderDivider 实线输出填充条，虚线/点线才使用边框属性
func renderDivider(p Properties) (VisualOutput, error) {
	thickness := px(p.Int("thickness"))
	color := p.String("color")
	margin := px(p.Int("margin")) + " 0"

	if style := p.String("style"); style != "solid" {
		return VisualOutput{
			Element: "rule",
			Layout: Attributes{
				"width":  p.String("width"),
				"height": "0px",
				"margin": margin,
			},
			Style: Attributes{
				"border-top-width": thickness,
				"border-top-style": style,
				"border-top-color": color,
			},
		}, nil
	}

	return VisualOutput{
		Element: "bar",
		Layout: Attributes{
			"width":  p.String("width"),
			"height": thickness,
			"margin": margin,
		},
		Style: Attributes{
			"background-color": color,
		},
	}, nil
}
